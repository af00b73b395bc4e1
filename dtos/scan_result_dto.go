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

import (
	"fmt"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/google/uuid"
)

type ScanResultDTO struct {
	ID              uuid.UUID           `json:"id"`
	TestName        string              `json:"testName"`
	URL             string              `json:"url"`
	Created         time.Time           `json:"created"`
	ImpactCounts    models.ImpactCounts `json:"impactCounts"`
	Violations      []models.Violation  `json:"violations"`
	TotalViolations int                 `json:"totalViolations"`
}

// ScanResultDetailsDTO is returned when a single scan result is requested.
type ScanResultDetailsDTO struct {
	ScanResultDTO
	ProjectID uuid.UUID `json:"projectId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UploadRecordError struct {
	TestName string `json:"testName"`
	Source   string `json:"source,omitempty"`
	Error    string `json:"error"`
}

func UploadMessage(count int) string {
	return fmt.Sprintf("%d scan result(s) uploaded successfully", count)
}

type UploadResponse struct {
	Message string              `json:"message"`
	Count   int                 `json:"count"`
	Errors  []UploadRecordError `json:"errors"`
}
