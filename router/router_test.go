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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DutchRican/a11y-reports/cmd/a11y-reports/api"
	"github.com/DutchRican/a11y-reports/controllers"
	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/middlewares"
	"github.com/DutchRican/a11y-reports/mocks"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type testApp struct {
	e                 *echo.Echo
	projectService    *mocks.ProjectService
	scanResultService *mocks.ScanResultService
	ingestionService  *mocks.IngestionService
	reportService     *mocks.ReportService
}

func newTestApp(t *testing.T) testApp {
	cfg := shared.Config{Environment: "test", AdminKey: "s3cret", UploadMaxBytes: 1 << 20}
	app := testApp{
		e:                 middlewares.Server(cfg),
		projectService:    mocks.NewProjectService(t),
		scanResultService: mocks.NewScanResultService(t),
		ingestionService:  mocks.NewIngestionService(t),
		reportService:     mocks.NewReportService(t),
	}

	srv := api.Server{Echo: app.e}
	apiRouter := NewAPIRouter(srv, nil, nil, cfg)
	NewProjectRouter(apiRouter, controllers.NewProjectController(app.projectService), cfg)
	NewScanResultRouter(apiRouter, controllers.NewScanResultController(app.scanResultService, cfg), controllers.NewUploadController(app.ingestionService), app.projectService, cfg)
	NewReportRouter(apiRouter, controllers.NewReportController(app.reportService, cfg), app.projectService)
	return app
}

func (app testApp) do(method, target, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	return rec
}

func TestDeleteScanResultRequiresAdminKey(t *testing.T) {
	app := newTestApp(t)
	id := uuid.New()
	target := "/api/scan-results/" + id.String()

	rec := app.do(http.MethodDelete, target, "", nil)
	assert.Equal(t, 401, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())

	rec = app.do(http.MethodDelete, target, "", http.Header{"Authorization": {"wrong"}})
	assert.Equal(t, 403, rec.Code)
	assert.JSONEq(t, `{"message":"Forbidden, bad admin key"}`, rec.Body.String())

	app.scanResultService.On("Delete", id).Return(nil)
	rec = app.do(http.MethodDelete, target, "", http.Header{"Authorization": {"s3cret"}})
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"message":"Scan result deleted successfully"}`, rec.Body.String())
}

func TestCreateProjectTwice(t *testing.T) {
	app := newTestApp(t)
	req := dtos.ProjectCreateRequest{Name: "Site A"}
	app.projectService.On("Create", req).Return(models.Project{Name: "Site A", IsActive: true}, nil).Once()
	app.projectService.On("Create", req).Return(models.Project{}, echo.NewHTTPError(400, "Project with this name already exists")).Once()
	header := http.Header{"Content-Type": {echo.MIMEApplicationJSON}}

	rec := app.do(http.MethodPost, "/api/projects", `{"name":"Site A"}`, header)
	assert.Equal(t, 201, rec.Code)

	rec = app.do(http.MethodPost, "/api/projects", `{"name":"Site A"}`, header)
	assert.Equal(t, 400, rec.Code)
	assert.JSONEq(t, `{"message":"Project with this name already exists"}`, rec.Body.String())
}

func TestReportOnProjectWithoutMatchingViolations(t *testing.T) {
	app := newTestApp(t)
	project := models.Project{Name: "Site A", IsActive: true}
	project.ID = uuid.New()
	app.projectService.On("Read", project.ID).Return(project, nil)
	app.reportService.On("TopViolations", mock.Anything, project.ID, "critical", 5).Return([]dtos.ViolationReportRow{}, nil)

	rec := app.do(http.MethodGet, "/api/reports/results-with-issues?projectId="+project.ID.String()+"&impact=critical&limit=5", "", nil)

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestProjectScopedRoutesRequireProjectID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/scan-results/", "", nil)
	assert.Equal(t, 400, rec.Code)
	assert.JSONEq(t, `{"message":"Project ID is required"}`, rec.Body.String())

	rec = app.do(http.MethodPost, "/api/scan-results/upload-tar?projectId=nope", "", nil)
	assert.Equal(t, 400, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid Project ID format"}`, rec.Body.String())
}

func TestPagedRouteIsNotAnID(t *testing.T) {
	app := newTestApp(t)
	project := models.Project{Name: "Site A", IsActive: true}
	project.ID = uuid.New()
	app.projectService.On("Read", project.ID).Return(project, nil)
	app.scanResultService.On("ListPaged", project.ID, shared.PageInfo{Page: 3, PageSize: 10}, shared.ScanResultFilter{}).
		Return(shared.NewPaged(shared.PageInfo{Page: 3, PageSize: 10}, 0, []models.ScanResult{}), nil)

	rec := app.do(http.MethodGet, "/api/scan-results/page/3?projectId="+project.ID.String(), "", nil)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"page":3`)
}
