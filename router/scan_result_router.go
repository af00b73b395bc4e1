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

type ScanResultRouter struct {
	*echo.Group
}

func NewScanResultRouter(
	apiRouter APIRouter,
	scanResultController *controllers.ScanResultController,
	uploadController *controllers.UploadController,
	projectService shared.ProjectService,
	cfg shared.Config,
) ScanResultRouter {
	projectScoped := middlewares.ProjectQuery(projectService)
	uploadLimit := middlewares.UploadRateLimit(cfg.UploadRateLimit)

	scanResultRouter := apiRouter.Group.Group("/scan-results")
	scanResultRouter.GET("/", scanResultController.List, projectScoped)
	scanResultRouter.GET("/page/:page/", scanResultController.Page, projectScoped)
	scanResultRouter.GET("/year/:year/", scanResultController.Year, projectScoped)

	scanResultRouter.POST("/upload/", uploadController.Upload, uploadLimit, projectScoped)
	scanResultRouter.POST("/upload-multiple/", uploadController.UploadMultiple, uploadLimit, projectScoped)
	scanResultRouter.POST("/upload-json/", uploadController.UploadJSON, uploadLimit, projectScoped)
	scanResultRouter.POST("/upload-tar/", uploadController.UploadArchive, uploadLimit, projectScoped)

	scanResultRouter.GET("/:id/", scanResultController.Read)
	scanResultRouter.DELETE("/:id/", scanResultController.Delete, middlewares.AdminKey(cfg.AdminKey))

	return ScanResultRouter{Group: scanResultRouter}
}
