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

package mocks

import (
	"context"
	"io"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ProjectService is a mock of shared.ProjectService.
type ProjectService struct {
	mock.Mock
}

func NewProjectService(t testingT) *ProjectService {
	m := &ProjectService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProjectService) projectResult(ret mock.Arguments) (models.Project, error) {
	project, _ := ret.Get(0).(models.Project)
	return project, ret.Error(1)
}

func (m *ProjectService) List(includeArchived bool) ([]models.Project, error) {
	ret := m.Called(includeArchived)
	projects, _ := ret.Get(0).([]models.Project)
	return projects, ret.Error(1)
}

func (m *ProjectService) Read(id uuid.UUID) (models.Project, error) {
	return m.projectResult(m.Called(id))
}

func (m *ProjectService) Create(req dtos.ProjectCreateRequest) (models.Project, error) {
	return m.projectResult(m.Called(req))
}

func (m *ProjectService) Update(id uuid.UUID, req dtos.ProjectUpdateRequest) (models.Project, error) {
	return m.projectResult(m.Called(id, req))
}

func (m *ProjectService) Archive(id uuid.UUID) (models.Project, error) {
	return m.projectResult(m.Called(id))
}

func (m *ProjectService) Restore(id uuid.UUID) (models.Project, error) {
	return m.projectResult(m.Called(id))
}

func (m *ProjectService) HardDelete(id uuid.UUID) (models.Project, error) {
	return m.projectResult(m.Called(id))
}

// ScanResultService is a mock of shared.ScanResultService.
type ScanResultService struct {
	mock.Mock
}

func NewScanResultService(t testingT) *ScanResultService {
	m := &ScanResultService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ScanResultService) List(projectID uuid.UUID, filter shared.ScanResultFilter) ([]models.ScanResult, error) {
	ret := m.Called(projectID, filter)
	scans, _ := ret.Get(0).([]models.ScanResult)
	return scans, ret.Error(1)
}

func (m *ScanResultService) ListPaged(projectID uuid.UUID, pageInfo shared.PageInfo, filter shared.ScanResultFilter) (shared.Paged[models.ScanResult], error) {
	ret := m.Called(projectID, pageInfo, filter)
	paged, _ := ret.Get(0).(shared.Paged[models.ScanResult])
	return paged, ret.Error(1)
}

func (m *ScanResultService) ListByYear(projectID uuid.UUID, year int) ([]models.ScanResult, error) {
	ret := m.Called(projectID, year)
	scans, _ := ret.Get(0).([]models.ScanResult)
	return scans, ret.Error(1)
}

func (m *ScanResultService) Read(id uuid.UUID) (models.ScanResult, error) {
	ret := m.Called(id)
	scan, _ := ret.Get(0).(models.ScanResult)
	return scan, ret.Error(1)
}

func (m *ScanResultService) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

// IngestionService is a mock of shared.IngestionService.
type IngestionService struct {
	mock.Mock
}

func NewIngestionService(t testingT) *IngestionService {
	m := &IngestionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *IngestionService) Ingest(ctx context.Context, projectID uuid.UUID, mode string, sources []shared.IngestionSource) (shared.IngestionResult, error) {
	ret := m.Called(ctx, projectID, mode, sources)
	res, _ := ret.Get(0).(shared.IngestionResult)
	return res, ret.Error(1)
}

func (m *IngestionService) IngestArchive(ctx context.Context, projectID uuid.UUID, name string, archive io.Reader) (shared.IngestionResult, error) {
	ret := m.Called(ctx, projectID, name, archive)
	res, _ := ret.Get(0).(shared.IngestionResult)
	return res, ret.Error(1)
}

// ReportService is a mock of shared.ReportService.
type ReportService struct {
	mock.Mock
}

func NewReportService(t testingT) *ReportService {
	m := &ReportService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReportService) TopViolations(ctx context.Context, projectID uuid.UUID, minImpact string, limit int) ([]dtos.ViolationReportRow, error) {
	ret := m.Called(ctx, projectID, minImpact, limit)
	rows, _ := ret.Get(0).([]dtos.ViolationReportRow)
	return rows, ret.Error(1)
}

func (m *ReportService) TopURLPatterns(ctx context.Context, projectID uuid.UUID, limit int, from time.Time) ([]dtos.URLPatternReportRow, error) {
	ret := m.Called(ctx, projectID, limit, from)
	rows, _ := ret.Get(0).([]dtos.URLPatternReportRow)
	return rows, ret.Error(1)
}

// UploadArchiver is a mock of shared.UploadArchiver.
type UploadArchiver struct {
	mock.Mock
}

func NewUploadArchiver(t testingT) *UploadArchiver {
	m := &UploadArchiver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UploadArchiver) Store(ctx context.Context, projectID uuid.UUID, name string, data []byte) error {
	return m.Called(ctx, projectID, name, data).Error(0)
}

func (m *UploadArchiver) Enabled() bool {
	return m.Called().Bool(0)
}
