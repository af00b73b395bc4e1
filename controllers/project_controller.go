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

package controllers

import (
	"strings"

	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/DutchRican/a11y-reports/transformer"
	"github.com/DutchRican/a11y-reports/utils"
	"github.com/labstack/echo/v4"
)

type ProjectController struct {
	projectService shared.ProjectService
}

func NewProjectController(projectService shared.ProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// @Summary List projects
// @Param includeArchived query bool false "Include archived projects"
// @Success 200 {array} dtos.ProjectDTO
// @Router /projects [get]
func (controller *ProjectController) List(ctx shared.Context) error {
	projects, err := controller.projectService.List(shared.GetBoolQuery(ctx, "includeArchived"))
	if err != nil {
		return err
	}
	return ctx.JSON(200, utils.Map(projects, transformer.ProjectModelToDTO))
}

// @Summary Read project
// @Param id path string true "Project ID"
// @Success 200 {object} dtos.ProjectDTO
// @Router /projects/{id} [get]
func (controller *ProjectController) Read(ctx shared.Context) error {
	id, err := shared.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	project, err := controller.projectService.Read(id)
	if err != nil {
		return err
	}
	return ctx.JSON(200, transformer.ProjectModelToDTO(project))
}

// @Summary Create project
// @Param body formData dtos.ProjectCreateRequest true "Request body"
// @Success 201 {object} dtos.ProjectDTO
// @Router /projects [post]
func (controller *ProjectController) Create(ctx shared.Context) error {
	var req dtos.ProjectCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	project, err := controller.projectService.Create(req)
	if err != nil {
		return err
	}
	return ctx.JSON(201, transformer.ProjectModelToDTO(project))
}

// bindProjectUpdate keeps the difference between an omitted field and an empty one.
func bindProjectUpdate(ctx shared.Context) (dtos.ProjectUpdateRequest, error) {
	var req dtos.ProjectUpdateRequest
	if strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := ctx.Bind(&req); err != nil {
			return req, echo.NewHTTPError(400, "unable to process request").WithInternal(err)
		}
		return req, nil
	}

	form, err := ctx.FormParams()
	if err != nil {
		return req, echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	req.Name = form.Get("name")
	if form.Has("description") {
		req.Description = utils.Ptr(form.Get("description"))
	}
	if form.Has("pageUrl") {
		req.PageURL = utils.Ptr(form.Get("pageUrl"))
	}
	return req, nil
}

// @Summary Update project
// @Param id path string true "Project ID"
// @Success 200 {object} dtos.ProjectDTO
// @Router /projects/{id} [put]
func (controller *ProjectController) Update(ctx shared.Context) error {
	id, err := shared.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	req, err := bindProjectUpdate(ctx)
	if err != nil {
		return err
	}

	project, err := controller.projectService.Update(id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(200, transformer.ProjectModelToDTO(project))
}

// @Summary Archive project
// @Param id path string true "Project ID"
// @Success 200 {object} dtos.ProjectDTO
// @Router /projects/{id} [delete]
func (controller *ProjectController) Archive(ctx shared.Context) error {
	id, err := shared.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	project, err := controller.projectService.Archive(id)
	if err != nil {
		return err
	}
	return ctx.JSON(200, transformer.ProjectModelToDTO(project))
}

// @Summary Restore archived project
// @Security AdminKey
// @Param id path string true "Project ID"
// @Success 200 {object} dtos.ProjectDTO
// @Router /projects/{id}/restore [get]
func (controller *ProjectController) Restore(ctx shared.Context) error {
	id, err := shared.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	project, err := controller.projectService.Restore(id)
	if err != nil {
		return err
	}
	return ctx.JSON(200, transformer.ProjectModelToDTO(project))
}

// @Summary Delete project and all of its scan results
// @Security AdminKey
// @Param id path string true "Project ID"
// @Success 200 {object} dtos.ProjectDeletedResponse
// @Router /projects/{id}/hard-delete [delete]
func (controller *ProjectController) HardDelete(ctx shared.Context) error {
	id, err := shared.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	project, err := controller.projectService.HardDelete(id)
	if err != nil {
		return err
	}
	return ctx.JSON(200, dtos.ProjectDeletedResponse{
		Message: "Project deleted successfully",
		Project: transformer.ProjectModelToDTO(project),
	})
}
