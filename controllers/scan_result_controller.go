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
	"strconv"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/DutchRican/a11y-reports/transformer"
	"github.com/DutchRican/a11y-reports/utils"
	"github.com/labstack/echo/v4"
)

type ScanResultController struct {
	scanResultService shared.ScanResultService
	location          *time.Location
}

func NewScanResultController(scanResultService shared.ScanResultService, cfg shared.Config) *ScanResultController {
	return &ScanResultController{
		scanResultService: scanResultService,
		location:          cfg.Location(),
	}
}

// @Summary List scan results of a project
// @Param projectId query string true "Project ID"
// @Param from query string false "Created at or after"
// @Param to query string false "Created before"
// @Success 200 {array} dtos.ScanResultDTO
// @Router /scan-results [get]
func (controller *ScanResultController) List(ctx shared.Context) error {
	filter, err := shared.GetScanResultFilter(ctx, controller.location)
	if err != nil {
		return err
	}

	scans, err := controller.scanResultService.List(shared.GetProject(ctx).ID, filter)
	if err != nil {
		return err
	}
	return ctx.JSON(200, utils.Map(scans, transformer.ScanResultModelToDTO))
}

// @Summary List scan results page wise
// @Param page path int true "Page, starting at 1"
// @Param limit query int false "Page size"
// @Router /scan-results/page/{page} [get]
func (controller *ScanResultController) Page(ctx shared.Context) error {
	filter, err := shared.GetScanResultFilter(ctx, controller.location)
	if err != nil {
		return err
	}

	paged, err := controller.scanResultService.ListPaged(shared.GetProject(ctx).ID, shared.GetPageInfo(ctx), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(200, paged.Map(func(scan models.ScanResult) any {
		return transformer.ScanResultModelToDTO(scan)
	}))
}

// @Summary List the scan results of a calendar year
// @Param year path int true "Year"
// @Success 200 {array} dtos.ScanResultDTO
// @Router /scan-results/year/{year} [get]
func (controller *ScanResultController) Year(ctx shared.Context) error {
	year, err := strconv.Atoi(shared.SanitizeParam(ctx.Param("year")))
	if err != nil {
		return echo.NewHTTPError(400, "Invalid year").WithInternal(err)
	}

	scans, err := controller.scanResultService.ListByYear(shared.GetProject(ctx).ID, year)
	if err != nil {
		return err
	}
	return ctx.JSON(200, utils.Map(scans, transformer.ScanResultModelToDTO))
}

// @Summary Read scan result
// @Param id path string true "Scan result ID"
// @Success 200 {object} dtos.ScanResultDetailsDTO
// @Router /scan-results/{id} [get]
func (controller *ScanResultController) Read(ctx shared.Context) error {
	id, err := shared.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	scan, err := controller.scanResultService.Read(id)
	if err != nil {
		return err
	}
	return ctx.JSON(200, transformer.ScanResultModelToDetailsDTO(scan))
}

// @Summary Delete scan result
// @Security AdminKey
// @Param id path string true "Scan result ID"
// @Success 200 {object} dtos.MessageResponse
// @Router /scan-results/{id} [delete]
func (controller *ScanResultController) Delete(ctx shared.Context) error {
	id, err := shared.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := controller.scanResultService.Delete(id); err != nil {
		return err
	}
	return ctx.JSON(200, dtos.MessageResponse{Message: "Scan result deleted successfully"})
}
