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
	"strings"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/utils"
	"github.com/gosimple/slug"
)

func ProjectCreateRequestToModel(req dtos.ProjectCreateRequest) models.Project {
	name := strings.TrimSpace(req.Name)
	return models.Project{
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
		PageURL:     strings.TrimSpace(req.PageURL),
		IsActive:    true,
	}
}

// ApplyProjectUpdateRequestToModel returns true if anything changed.
func ApplyProjectUpdateRequestToModel(req dtos.ProjectUpdateRequest, project *models.Project) bool {
	updated := false

	name := strings.TrimSpace(req.Name)
	if name != project.Name {
		updated = true
		project.Name = name
		project.Slug = slug.Make(name)
	}

	// fields which were not sent keep their value
	description := strings.TrimSpace(utils.OrDefault(req.Description, project.Description))
	if description != project.Description {
		updated = true
		project.Description = description
	}

	pageURL := strings.TrimSpace(utils.OrDefault(req.PageURL, project.PageURL))
	if pageURL != project.PageURL {
		updated = true
		project.PageURL = pageURL
	}

	return updated
}

func ProjectModelToDTO(project models.Project) dtos.ProjectDTO {
	return dtos.ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Slug:        project.Slug,
		Description: project.Description,
		PageURL:     project.PageURL,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		IsActive:    project.IsActive,
		DeletedAt:   project.DeletedAt,
	}
}
