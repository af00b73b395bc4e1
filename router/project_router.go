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

package router

import (
	"github.com/DutchRican/a11y-reports/controllers"
	"github.com/DutchRican/a11y-reports/middlewares"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/labstack/echo/v4"
)

type ProjectRouter struct {
	*echo.Group
}

func NewProjectRouter(
	apiRouter APIRouter,
	projectController *controllers.ProjectController,
	cfg shared.Config,
) ProjectRouter {
	adminKey := middlewares.AdminKey(cfg.AdminKey)

	projectRouter := apiRouter.Group.Group("/projects")
	projectRouter.GET("/", projectController.List)
	projectRouter.POST("/", projectController.Create)
	projectRouter.GET("/:id/", projectController.Read)
	projectRouter.PUT("/:id/", projectController.Update)
	projectRouter.DELETE("/:id/", projectController.Archive)

	projectRouter.GET("/:id/restore/", projectController.Restore, adminKey)
	projectRouter.DELETE("/:id/hard-delete/", projectController.HardDelete, adminKey)

	return ProjectRouter{Group: projectRouter}
}
