// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package normalize

import (
	"github.com/DutchRican/a11y-reports/database/models"
)

// ImpactRank returns the severity rank of an impact value.
// minor=0, moderate=1, serious=2, critical=3. Unknown values rank -1.
func ImpactRank(impact string) (int, bool) {
	switch models.Impact(impact) {
	case models.ImpactMinor:
		return 0, true
	case models.ImpactModerate:
		return 1, true
	case models.ImpactSerious:
		return 2, true
	case models.ImpactCritical:
		return 3, true
	}
	return -1, false
}

// ImpactsAtLeast lists every known impact with a rank greater or equal to the rank of min.
func ImpactsAtLeast(min string) ([]string, bool) {
	minRank, ok := ImpactRank(min)
	if !ok {
		return nil, false
	}
	res := make([]string, 0, len(models.ImpactLevels))
	for _, level := range models.ImpactLevels {
		rank, _ := ImpactRank(string(level))
		if rank >= minRank {
			res = append(res, string(level))
		}
	}
	return res, true
}

func CountImpacts(violations []models.Violation) models.ImpactCounts {
	counts := models.ImpactCounts{}
	for _, v := range violations {
		switch models.Impact(v.Impact) {
		case models.ImpactCritical:
			counts.Critical++
		case models.ImpactSerious:
			counts.Serious++
		case models.ImpactModerate:
			counts.Moderate++
		case models.ImpactMinor:
			counts.Minor++
		default:
			counts.Unknown++
		}
	}
	return counts
}
