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
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// ProjectRepository is a mock of shared.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func NewProjectRepository(t testingT) *ProjectRepository {
	m := &ProjectRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProjectRepository) Read(projectID uuid.UUID) (models.Project, error) {
	ret := m.Called(projectID)
	return ret.Get(0).(models.Project), ret.Error(1)
}

func (m *ProjectRepository) List(includeArchived bool) ([]models.Project, error) {
	ret := m.Called(includeArchived)
	projects, _ := ret.Get(0).([]models.Project)
	return projects, ret.Error(1)
}

func (m *ProjectRepository) Create(tx shared.DB, project *models.Project) error {
	return m.Called(tx, project).Error(0)
}

func (m *ProjectRepository) Save(tx shared.DB, project *models.Project) error {
	return m.Called(tx, project).Error(0)
}

func (m *ProjectRepository) Archive(tx shared.DB, projectID uuid.UUID, at time.Time) (models.Project, error) {
	ret := m.Called(tx, projectID, at)
	return ret.Get(0).(models.Project), ret.Error(1)
}

func (m *ProjectRepository) Restore(tx shared.DB, projectID uuid.UUID) (models.Project, error) {
	ret := m.Called(tx, projectID)
	return ret.Get(0).(models.Project), ret.Error(1)
}

func (m *ProjectRepository) Delete(tx shared.DB, projectID uuid.UUID) error {
	return m.Called(tx, projectID).Error(0)
}

// Transaction accepts either an error or a func(func(shared.DB) error) error as return value.
func (m *ProjectRepository) Transaction(fn func(tx shared.DB) error) error {
	ret := m.Called(fn)
	if rf, ok := ret.Get(0).(func(func(shared.DB) error) error); ok {
		return rf(fn)
	}
	return ret.Error(0)
}

// ScanResultRepository is a mock of shared.ScanResultRepository.
type ScanResultRepository struct {
	mock.Mock
}

func NewScanResultRepository(t testingT) *ScanResultRepository {
	m := &ScanResultRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ScanResultRepository) Read(id uuid.UUID) (models.ScanResult, error) {
	ret := m.Called(id)
	return ret.Get(0).(models.ScanResult), ret.Error(1)
}

func (m *ScanResultRepository) List(projectID uuid.UUID, filter shared.ScanResultFilter) ([]models.ScanResult, error) {
	ret := m.Called(projectID, filter)
	scans, _ := ret.Get(0).([]models.ScanResult)
	return scans, ret.Error(1)
}

func (m *ScanResultRepository) ListPaged(projectID uuid.UUID, pageInfo shared.PageInfo, filter shared.ScanResultFilter) (shared.Paged[models.ScanResult], error) {
	ret := m.Called(projectID, pageInfo, filter)
	return ret.Get(0).(shared.Paged[models.ScanResult]), ret.Error(1)
}

func (m *ScanResultRepository) Delete(tx shared.DB, id uuid.UUID) error {
	return m.Called(tx, id).Error(0)
}

func (m *ScanResultRepository) DeleteByProjectID(tx shared.DB, projectID uuid.UUID) (int64, error) {
	ret := m.Called(tx, projectID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *ScanResultRepository) UpsertBatch(tx shared.DB, scans []models.ScanResult) error {
	return m.Called(tx, scans).Error(0)
}

// ReportRepository is a mock of shared.ReportRepository.
type ReportRepository struct {
	mock.Mock
}

func NewReportRepository(t testingT) *ReportRepository {
	m := &ReportRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ReportRepository) TopViolations(projectID uuid.UUID, impacts []string, limit int) ([]dtos.ViolationReportRow, error) {
	ret := m.Called(projectID, impacts, limit)
	rows, _ := ret.Get(0).([]dtos.ViolationReportRow)
	return rows, ret.Error(1)
}

func (m *ReportRepository) URLViolationCounts(projectID uuid.UUID, from time.Time) ([]dtos.URLViolationCount, error) {
	ret := m.Called(projectID, from)
	rows, _ := ret.Get(0).([]dtos.URLViolationCount)
	return rows, ret.Error(1)
}
