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
	"log/slog"
	"strings"
	"time"

	"github.com/DutchRican/a11y-reports/database"
	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/DutchRican/a11y-reports/transformer"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const projectCacheTTL = 5 * time.Minute

type projectService struct {
	projectRepository    shared.ProjectRepository
	scanResultRepository shared.ScanResultRepository

	// every scoped request reads its project, mutations remove the entry
	cache *expirable.LRU[uuid.UUID, models.Project]
}

var _ shared.ProjectService = (*projectService)(nil)

func NewProjectService(projectRepository shared.ProjectRepository, scanResultRepository shared.ScanResultRepository) *projectService {
	return &projectService{
		projectRepository:    projectRepository,
		scanResultRepository: scanResultRepository,
		cache:                expirable.NewLRU[uuid.UUID, models.Project](512, nil, projectCacheTTL),
	}
}

func projectNotFoundOr500(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(404, "Project not found").WithInternal(err)
	}
	return echo.NewHTTPError(500, msg).WithInternal(err)
}

func (s *projectService) List(includeArchived bool) ([]models.Project, error) {
	projects, err := s.projectRepository.List(includeArchived)
	if err != nil {
		return nil, echo.NewHTTPError(500, "could not list projects").WithInternal(err)
	}
	return projects, nil
}

func (s *projectService) Read(id uuid.UUID) (models.Project, error) {
	if project, ok := s.cache.Get(id); ok {
		return project, nil
	}

	project, err := s.projectRepository.Read(id)
	if err != nil {
		return models.Project{}, projectNotFoundOr500(err, "could not read project")
	}

	s.cache.Add(id, project)
	return project, nil
}

func (s *projectService) Create(req dtos.ProjectCreateRequest) (models.Project, error) {
	project := transformer.ProjectCreateRequestToModel(req)
	if project.Name == "" {
		return models.Project{}, echo.NewHTTPError(400, "Project name is required")
	}

	if err := s.projectRepository.Create(nil, &project); err != nil {
		if database.IsDuplicateKeyError(err) {
			return models.Project{}, echo.NewHTTPError(400, "Project with this name already exists").WithInternal(err)
		}
		return models.Project{}, echo.NewHTTPError(500, "could not create project").WithInternal(err)
	}

	slog.Info("project created", "projectID", project.ID, "name", project.Name)
	return project, nil
}

func (s *projectService) Update(id uuid.UUID, req dtos.ProjectUpdateRequest) (models.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return models.Project{}, echo.NewHTTPError(400, "Project name is required")
	}

	project, err := s.projectRepository.Read(id)
	if err != nil {
		return models.Project{}, projectNotFoundOr500(err, "could not read project")
	}

	if !transformer.ApplyProjectUpdateRequestToModel(req, &project) {
		slog.Debug("project update without changes", "projectID", id)
	}

	// saving bumps updated_at even without changes
	if err := s.projectRepository.Save(nil, &project); err != nil {
		if database.IsDuplicateKeyError(err) {
			return models.Project{}, echo.NewHTTPError(400, "Project with this name already exists").WithInternal(err)
		}
		return models.Project{}, echo.NewHTTPError(500, "could not update project").WithInternal(err)
	}

	s.cache.Remove(id)
	return project, nil
}

func (s *projectService) Archive(id uuid.UUID) (models.Project, error) {
	project, err := s.projectRepository.Archive(nil, id, time.Now())
	if err != nil {
		return models.Project{}, projectNotFoundOr500(err, "could not archive project")
	}

	s.cache.Remove(id)
	slog.Info("project archived", "projectID", id)
	return project, nil
}

func (s *projectService) Restore(id uuid.UUID) (models.Project, error) {
	project, err := s.projectRepository.Restore(nil, id)
	if err != nil {
		return models.Project{}, projectNotFoundOr500(err, "could not restore project")
	}

	s.cache.Remove(id)
	slog.Info("project restored", "projectID", id)
	return project, nil
}

// HardDelete removes the project and all of its scan results in one transaction.
func (s *projectService) HardDelete(id uuid.UUID) (models.Project, error) {
	project, err := s.projectRepository.Read(id)
	if err != nil {
		return models.Project{}, projectNotFoundOr500(err, "could not read project")
	}

	var deletedScans int64
	err = s.projectRepository.Transaction(func(tx shared.DB) error {
		deleted, err := s.scanResultRepository.DeleteByProjectID(tx, id)
		if err != nil {
			return errors.Wrap(err, "could not delete scan results")
		}
		deletedScans = deleted
		return s.projectRepository.Delete(tx, id)
	})
	if err != nil {
		return models.Project{}, projectNotFoundOr500(err, "could not delete project")
	}

	s.cache.Remove(id)
	slog.Info("project deleted", "projectID", id, "deletedScanResults", deletedScans)
	return project, nil
}
