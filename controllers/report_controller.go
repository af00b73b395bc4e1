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
	"time"

	"github.com/DutchRican/a11y-reports/services"
	"github.com/DutchRican/a11y-reports/shared"
)

type ReportController struct {
	reportService shared.ReportService
	location      *time.Location
}

func NewReportController(reportService shared.ReportService, cfg shared.Config) *ReportController {
	return &ReportController{
		reportService: reportService,
		location:      cfg.Location(),
	}
}

// @Summary Most frequent violations across the latest scan of every url
// @Param projectId query string true "Project ID"
// @Param impact query string false "Minimum impact, defaults to serious"
// @Param limit query int false "Defaults to 5"
// @Success 200 {array} dtos.ViolationReportRow
// @Router /reports/results-with-issues [get]
func (controller *ReportController) ResultsWithIssues(ctx shared.Context) error {
	limit := shared.GetLimit(ctx, services.DefaultReportLimit, services.MaxReportLimit)

	rows, err := controller.reportService.TopViolations(ctx.Request().Context(), shared.GetProject(ctx).ID, ctx.QueryParam("impact"), limit)
	if err != nil {
		return err
	}
	return ctx.JSON(200, rows)
}

// @Summary Url patterns with the most violations
// @Param projectId query string true "Project ID"
// @Param limit query int false "Defaults to 5"
// @Param from query string false "Defaults to 30 days ago"
// @Success 200 {array} dtos.URLPatternReportRow
// @Router /reports/urls-with-issues [get]
func (controller *ReportController) URLsWithIssues(ctx shared.Context) error {
	limit := shared.GetLimit(ctx, services.DefaultReportLimit, services.MaxReportLimit)
	from, err := shared.GetFromQuery(ctx, controller.location, time.Now().Add(-services.DefaultReportWindow))
	if err != nil {
		return err
	}

	rows, err := controller.reportService.TopURLPatterns(ctx.Request().Context(), shared.GetProject(ctx).ID, limit, from)
	if err != nil {
		return err
	}
	return ctx.JSON(200, rows)
}
