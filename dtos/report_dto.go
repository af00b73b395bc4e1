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

package dtos

type ViolationReportRow struct {
	Help   string `json:"help" gorm:"column:help"`
	Impact string `json:"impact" gorm:"column:impact"`
	Count  int64  `json:"count" gorm:"column:count"`
	URL    string `json:"url" gorm:"column:url"`
}

type URLPatternReportRow struct {
	URL   string `json:"url"`
	Count int64  `json:"count"`
}

// URLViolationCount is a single scan reduced to its url and the number of violations.
type URLViolationCount struct {
	URL            string `gorm:"column:url"`
	ViolationCount int64  `gorm:"column:violation_count"`
}
