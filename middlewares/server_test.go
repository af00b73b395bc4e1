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

package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DutchRican/a11y-reports/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *echo.Echo {
	e := Server(shared.Config{Environment: "test", UploadMaxBytes: 64, CorsAllowOrigins: []string{"http://localhost:5173"}})
	e.GET("/plain/", func(ctx echo.Context) error {
		return echo.NewHTTPError(400, "Project name is required")
	})
	e.GET("/structured/", func(ctx echo.Context) error {
		return echo.NewHTTPError(400, echo.Map{"message": "No valid scan results found in archive", "errors": []string{"a"}})
	})
	e.GET("/internal/", func(ctx echo.Context) error {
		return fmt.Errorf("connection reset")
	})
	e.GET("/panic/", func(ctx echo.Context) error {
		panic("boom")
	})
	e.POST("/upload/", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusCreated)
	})
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHTTPErrorHandler(t *testing.T) {
	e := testServer()

	t.Run("should wrap plain messages", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/plain/", "")

		assert.Equal(t, 400, rec.Code)
		assert.JSONEq(t, `{"message":"Project name is required"}`, rec.Body.String())
	})

	t.Run("should tolerate missing trailing slashes", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/plain", "")

		assert.Equal(t, 400, rec.Code)
	})

	t.Run("should send structured messages as they are", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/structured/", "")

		assert.Equal(t, 400, rec.Code)
		assert.JSONEq(t, `{"message":"No valid scan results found in archive","errors":["a"]}`, rec.Body.String())
	})

	t.Run("should hide unexpected errors", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/internal/", "")

		assert.Equal(t, 500, rec.Code)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
	})

	t.Run("should recover from panics", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/panic/", "")

		assert.Equal(t, 500, rec.Code)
		assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
	})

	t.Run("should limit the body size", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/upload/", strings.Repeat("x", 65))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("should answer cors preflight requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/upload/", nil)
		req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderAuthorization)
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderContentType)
	})
}

func TestUploadRateLimit(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = httpErrorHandler(e)
	e.POST("/upload/", func(ctx echo.Context) error {
		return ctx.NoContent(http.StatusCreated)
	}, UploadRateLimit(0.5))

	assert.Equal(t, http.StatusCreated, serve(e, http.MethodPost, "/upload/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(e, http.MethodPost, "/upload/", "").Code)
}
