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

package transformer

import (
	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
)

func ScanResultModelToDTO(scan models.ScanResult) dtos.ScanResultDTO {
	violations := []models.Violation(scan.Violations)
	if violations == nil {
		violations = []models.Violation{}
	}
	return dtos.ScanResultDTO{
		ID:              scan.ID,
		TestName:        scan.TestName,
		URL:             scan.URL,
		Created:         scan.Created,
		ImpactCounts:    scan.ImpactCounts.Data(),
		Violations:      violations,
		TotalViolations: scan.TotalViolations,
	}
}

func ScanResultModelToDetailsDTO(scan models.ScanResult) dtos.ScanResultDetailsDTO {
	return dtos.ScanResultDetailsDTO{
		ScanResultDTO: ScanResultModelToDTO(scan),
		ProjectID:     scan.ProjectID,
		UpdatedAt:     scan.UpdatedAt,
	}
}
