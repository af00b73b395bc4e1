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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/mocks"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportControllerResultsWithIssues(t *testing.T) {
	t.Run("should pass impact and limit", func(t *testing.T) {
		service := mocks.NewReportService(t)
		ctx, rec := newTestContext(httptest.NewRequest(http.MethodGet, "/reports/results-with-issues/?impact=critical&limit=5", nil))
		project := withProject(ctx)
		service.On("TopViolations", mock.Anything, project.ID, "critical", 5).Return([]dtos.ViolationReportRow{}, nil)

		require.NoError(t, NewReportController(service, testConfig).ResultsWithIssues(ctx))
		assert.Equal(t, 200, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("should default and cap the limit", func(t *testing.T) {
		service := mocks.NewReportService(t)
		ctx, _ := newTestContext(httptest.NewRequest(http.MethodGet, "/reports/results-with-issues/?limit=1000", nil))
		project := withProject(ctx)
		service.On("TopViolations", mock.Anything, project.ID, "", 100).Return([]dtos.ViolationReportRow{{Help: "Images must have alternate text", Impact: "critical", Count: 2, URL: "/home"}}, nil)

		require.NoError(t, NewReportController(service, testConfig).ResultsWithIssues(ctx))
	})

	t.Run("should pass the invalid impact error", func(t *testing.T) {
		service := mocks.NewReportService(t)
		ctx, _ := newTestContext(httptest.NewRequest(http.MethodGet, "/reports/results-with-issues/?impact=blocker", nil))
		withProject(ctx)
		service.On("TopViolations", mock.Anything, mock.Anything, "blocker", 5).Return(nil, echo.NewHTTPError(400, "Invalid impact level"))

		requireHTTPError(t, NewReportController(service, testConfig).ResultsWithIssues(ctx), 400)
	})
}

func TestReportControllerURLsWithIssues(t *testing.T) {
	t.Run("should default to the last 30 days", func(t *testing.T) {
		service := mocks.NewReportService(t)
		ctx, rec := newTestContext(httptest.NewRequest(http.MethodGet, "/reports/urls-with-issues/", nil))
		project := withProject(ctx)
		service.On("TopURLPatterns", mock.Anything, project.ID, 5, mock.MatchedBy(func(from time.Time) bool {
			return time.Since(from) > 29*24*time.Hour && time.Since(from) < 31*24*time.Hour
		})).Return([]dtos.URLPatternReportRow{{URL: "/users/:id/edit", Count: 5}}, nil)

		require.NoError(t, NewReportController(service, testConfig).URLsWithIssues(ctx))
		assert.JSONEq(t, `[{"url":"/users/:id/edit","count":5}]`, rec.Body.String())
	})

	t.Run("should reject invalid from dates", func(t *testing.T) {
		ctx, _ := newTestContext(httptest.NewRequest(http.MethodGet, "/reports/urls-with-issues/?from=soon", nil))
		withProject(ctx)

		requireHTTPError(t, NewReportController(mocks.NewReportService(t), testConfig).URLsWithIssues(ctx), 400)
	})
}
