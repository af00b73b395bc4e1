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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Impact string

const (
	ImpactMinor    Impact = "minor"
	ImpactModerate Impact = "moderate"
	ImpactSerious  Impact = "serious"
	ImpactCritical Impact = "critical"
)

// ImpactLevels is ordered from the lowest to the highest severity.
var ImpactLevels = []Impact{ImpactMinor, ImpactModerate, ImpactSerious, ImpactCritical}

// ImpactCounts tallies violations by impact. Unknown holds violations with an
// unrecognized impact value and is not part of Total.
type ImpactCounts struct {
	Critical int `json:"critical"`
	Serious  int `json:"serious"`
	Moderate int `json:"moderate"`
	Minor    int `json:"minor"`
	Unknown  int `json:"unknown"`
}

func (c ImpactCounts) Total() int {
	return c.Critical + c.Serious + c.Moderate + c.Minor
}

type CheckRelatedNode struct {
	HTML   string `json:"html"`
	Target []any  `json:"target"`
}

type CheckResult struct {
	ID           string             `json:"id"`
	Impact       string             `json:"impact"`
	Message      string             `json:"message"`
	Data         any                `json:"data,omitempty"`
	RelatedNodes []CheckRelatedNode `json:"relatedNodes"`
}

type ViolationNode struct {
	HTML           string        `json:"html"`
	Target         []any         `json:"target"`
	FailureSummary string        `json:"failureSummary"`
	Impact         string        `json:"impact"`
	Any            []CheckResult `json:"any"`
	All            []CheckResult `json:"all"`
	None           []CheckResult `json:"none"`
}

type Violation struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Help        string          `json:"help"`
	HelpURL     string          `json:"helpUrl"`
	Impact      string          `json:"impact"`
	Tags        []string        `json:"tags"`
	Nodes       []ViolationNode `json:"nodes"`
}

type ScanResult struct {
	ID       uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	TestName string    `json:"testName" gorm:"type:text;not null" validate:"required"`
	URL      string    `json:"url" gorm:"column:url;type:text;not null" validate:"required"`
	Created  time.Time `json:"created" gorm:"not null"`
	// ScanDay is the calendar day (YYYY-MM-DD) of Created in the configured day boundary zone.
	ScanDay string `json:"-" gorm:"type:date;not null"`

	Violations      datatypes.JSONSlice[Violation]   `json:"violations" gorm:"type:jsonb;not null"`
	ImpactCounts    datatypes.JSONType[ImpactCounts] `json:"impactCounts" gorm:"type:jsonb;not null"`
	TotalViolations int                              `json:"totalViolations" gorm:"not null"`

	ProjectID uuid.UUID `json:"projectId" gorm:"type:uuid;not null" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ScanResult) TableName() string {
	return "scan_results"
}

// AfterFind trims the day column, the driver reports dates as timestamps.
func (s *ScanResult) AfterFind(tx *gorm.DB) error {
	if len(s.ScanDay) > len(time.DateOnly) {
		s.ScanDay = s.ScanDay[:len(time.DateOnly)]
	}
	return nil
}
