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

package services

import (
	"fmt"
	"testing"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/mocks"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProjectServiceCreate(t *testing.T) {
	t.Run("should reject an empty name", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Create(dtos.ProjectCreateRequest{Name: "   "})

		assert.Equal(t, 400, httpStatus(t, err))
		assert.ErrorContains(t, err, "Project name is required")
	})

	t.Run("should map a unique violation to a bad request", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("could not create: %w", &pgconn.PgError{Code: "23505"}))
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Create(dtos.ProjectCreateRequest{Name: "Site A"})

		assert.Equal(t, 400, httpStatus(t, err))
		assert.ErrorContains(t, err, "Project with this name already exists")
	})

	t.Run("should fail with an internal error on other failures", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("connection refused"))
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Create(dtos.ProjectCreateRequest{Name: "Site A"})

		assert.Equal(t, 500, httpStatus(t, err))
	})

	t.Run("should create an active project with a slug", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
			return p.Name == "Site A" && p.Slug == "site-a" && p.IsActive
		})).Return(nil)
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		project, err := s.Create(dtos.ProjectCreateRequest{Name: "Site A"})

		require.NoError(t, err)
		assert.Equal(t, "Site A", project.Name)
	})
}

func TestProjectServiceRead(t *testing.T) {
	t.Run("should return not found for unknown projects", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Read", mock.Anything).Return(models.Project{}, gorm.ErrRecordNotFound)
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Read(uuid.New())

		assert.Equal(t, 404, httpStatus(t, err))
	})

	t.Run("should serve repeated reads from the cache until the project changes", func(t *testing.T) {
		id := uuid.New()
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Read", id).Return(models.Project{Model: models.Model{ID: id}, Name: "Site A", IsActive: true}, nil).Twice()
		projectRepository.On("Archive", mock.Anything, id, mock.Anything).Return(models.Project{Model: models.Model{ID: id}, Name: "Site A"}, nil).Once()
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Read(id)
		require.NoError(t, err)
		_, err = s.Read(id)
		require.NoError(t, err)

		_, err = s.Archive(id)
		require.NoError(t, err)

		_, err = s.Read(id)
		require.NoError(t, err)
	})
}

func TestProjectServiceUpdate(t *testing.T) {
	t.Run("should reject a missing name before looking up the project", func(t *testing.T) {
		s := NewProjectService(mocks.NewProjectRepository(t), mocks.NewScanResultRepository(t))

		_, err := s.Update(uuid.New(), dtos.ProjectUpdateRequest{})

		assert.Equal(t, 400, httpStatus(t, err))
	})

	t.Run("should return not found for unknown projects", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Read", mock.Anything).Return(models.Project{}, gorm.ErrRecordNotFound)
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Update(uuid.New(), dtos.ProjectUpdateRequest{Name: "Site B"})

		assert.Equal(t, 404, httpStatus(t, err))
	})

	t.Run("should reject renaming to an existing name", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Read", mock.Anything).Return(models.Project{Name: "Site A"}, nil)
		projectRepository.On("Save", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Update(uuid.New(), dtos.ProjectUpdateRequest{Name: "Site B"})

		assert.Equal(t, 400, httpStatus(t, err))
	})

	t.Run("should save the updated project", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Read", mock.Anything).Return(models.Project{Name: "Site A", Description: "old"}, nil)
		projectRepository.On("Save", mock.Anything, mock.MatchedBy(func(p *models.Project) bool {
			return p.Name == "Site B" && p.Description == "old"
		})).Return(nil)
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		project, err := s.Update(uuid.New(), dtos.ProjectUpdateRequest{Name: "Site B"})

		require.NoError(t, err)
		assert.Equal(t, "site-b", project.Slug)
	})
}

func TestProjectServiceArchiveAndRestore(t *testing.T) {
	t.Run("should return not found if the project is not active", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Archive", mock.Anything, mock.Anything, mock.Anything).Return(models.Project{}, gorm.ErrRecordNotFound)
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Archive(uuid.New())

		assert.Equal(t, 404, httpStatus(t, err))
	})

	t.Run("should return not found if the project is not archived", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Restore", mock.Anything, mock.Anything).Return(models.Project{}, gorm.ErrRecordNotFound)
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.Restore(uuid.New())

		assert.Equal(t, 404, httpStatus(t, err))
	})
}

func TestProjectServiceHardDelete(t *testing.T) {
	t.Run("should delete scan results and project inside one transaction", func(t *testing.T) {
		id := uuid.New()
		projectRepository := mocks.NewProjectRepository(t)
		scanResultRepository := mocks.NewScanResultRepository(t)

		projectRepository.On("Read", id).Return(models.Project{Model: models.Model{ID: id}, Name: "Site A"}, nil)
		projectRepository.On("Transaction", mock.Anything).Return(func(fn func(shared.DB) error) error {
			return fn(nil)
		})
		scanResultRepository.On("DeleteByProjectID", mock.Anything, id).Return(int64(3), nil)
		projectRepository.On("Delete", mock.Anything, id).Return(nil)

		s := NewProjectService(projectRepository, scanResultRepository)
		project, err := s.HardDelete(id)

		require.NoError(t, err)
		assert.Equal(t, "Site A", project.Name)
	})

	t.Run("should not delete the project if the scan results could not be deleted", func(t *testing.T) {
		id := uuid.New()
		projectRepository := mocks.NewProjectRepository(t)
		scanResultRepository := mocks.NewScanResultRepository(t)

		projectRepository.On("Read", id).Return(models.Project{Model: models.Model{ID: id}}, nil)
		projectRepository.On("Transaction", mock.Anything).Return(func(fn func(shared.DB) error) error {
			return fn(nil)
		})
		scanResultRepository.On("DeleteByProjectID", mock.Anything, id).Return(int64(0), fmt.Errorf("deadlock detected"))

		s := NewProjectService(projectRepository, scanResultRepository)
		_, err := s.HardDelete(id)

		assert.Equal(t, 500, httpStatus(t, err))
		projectRepository.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("should return not found for unknown projects", func(t *testing.T) {
		projectRepository := mocks.NewProjectRepository(t)
		projectRepository.On("Read", mock.Anything).Return(models.Project{}, gorm.ErrRecordNotFound)
		s := NewProjectService(projectRepository, mocks.NewScanResultRepository(t))

		_, err := s.HardDelete(uuid.New())

		assert.Equal(t, 404, httpStatus(t, err))
	})
}
