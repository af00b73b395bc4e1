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

package shared

import (
	"context"
	"io"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/google/uuid"
)

type ProjectRepository interface {
	Read(projectID uuid.UUID) (models.Project, error)
	List(includeArchived bool) ([]models.Project, error)
	Create(tx DB, project *models.Project) error
	Save(tx DB, project *models.Project) error
	// Archive and Restore only touch projects in the opposite state and return gorm.ErrRecordNotFound otherwise.
	Archive(tx DB, projectID uuid.UUID, at time.Time) (models.Project, error)
	Restore(tx DB, projectID uuid.UUID) (models.Project, error)
	Delete(tx DB, projectID uuid.UUID) error
	Transaction(fn func(tx DB) error) error
}

type ScanResultFilter struct {
	From *time.Time
	To   *time.Time
}

type ScanResultRepository interface {
	Read(id uuid.UUID) (models.ScanResult, error)
	List(projectID uuid.UUID, filter ScanResultFilter) ([]models.ScanResult, error)
	ListPaged(projectID uuid.UUID, pageInfo PageInfo, filter ScanResultFilter) (Paged[models.ScanResult], error)
	Delete(tx DB, id uuid.UUID) error
	DeleteByProjectID(tx DB, projectID uuid.UUID) (int64, error)
	// UpsertBatch inserts or replaces scans keyed by project, test name and scan day.
	UpsertBatch(tx DB, scans []models.ScanResult) error
}

type ReportRepository interface {
	TopViolations(projectID uuid.UUID, impacts []string, limit int) ([]dtos.ViolationReportRow, error)
	URLViolationCounts(projectID uuid.UUID, from time.Time) ([]dtos.URLViolationCount, error)
}

type ProjectService interface {
	List(includeArchived bool) ([]models.Project, error)
	Read(id uuid.UUID) (models.Project, error)
	Create(req dtos.ProjectCreateRequest) (models.Project, error)
	Update(id uuid.UUID, req dtos.ProjectUpdateRequest) (models.Project, error)
	Archive(id uuid.UUID) (models.Project, error)
	Restore(id uuid.UUID) (models.Project, error)
	HardDelete(id uuid.UUID) (models.Project, error)
}

type ScanResultService interface {
	List(projectID uuid.UUID, filter ScanResultFilter) ([]models.ScanResult, error)
	ListPaged(projectID uuid.UUID, pageInfo PageInfo, filter ScanResultFilter) (Paged[models.ScanResult], error)
	ListByYear(projectID uuid.UUID, year int) ([]models.ScanResult, error)
	Read(id uuid.UUID) (models.ScanResult, error)
	Delete(id uuid.UUID) error
}

// IngestionSource is a single uploaded document.
type IngestionSource struct {
	Name string
	Data []byte
}

type IngestionResult struct {
	Count  int
	Errors []dtos.UploadRecordError
}

type IngestionService interface {
	// Ingest normalizes every record of every source and commits the valid ones in one batch.
	Ingest(ctx context.Context, projectID uuid.UUID, mode string, sources []IngestionSource) (IngestionResult, error)
	// IngestArchive extracts the json files of an archive and ingests them.
	IngestArchive(ctx context.Context, projectID uuid.UUID, name string, archive io.Reader) (IngestionResult, error)
}

type ReportService interface {
	TopViolations(ctx context.Context, projectID uuid.UUID, minImpact string, limit int) ([]dtos.ViolationReportRow, error)
	TopURLPatterns(ctx context.Context, projectID uuid.UUID, limit int, from time.Time) ([]dtos.URLPatternReportRow, error)
}

// UploadArchiver keeps the raw uploaded documents. A failing archiver never fails an ingestion.
type UploadArchiver interface {
	Store(ctx context.Context, projectID uuid.UUID, name string, data []byte) error
	Enabled() bool
}
