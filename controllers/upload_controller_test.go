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
	"os"
	"strings"
	"testing"

	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/mocks"
	"github.com/DutchRican/a11y-reports/services"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadControllerUpload(t *testing.T) {
	t.Run("should ingest the uploaded file and report record errors", func(t *testing.T) {
		service := mocks.NewIngestionService(t)
		ctx, rec := newTestContext(multipartRequest(t, "/scan-results/upload/", nil, multipartFile{field: "file", name: "scan.json", data: `[{"testName":"login"}]`}))
		project := withProject(ctx)
		service.On("Ingest", mock.Anything, project.ID, services.ModeUpload, []shared.IngestionSource{{Name: "scan.json", Data: []byte(`[{"testName":"login"}]`)}}).
			Return(shared.IngestionResult{Count: 1, Errors: []dtos.UploadRecordError{{TestName: "broken", Source: "scan.json", Error: "url is required"}}}, nil)

		err := NewUploadController(service).Upload(ctx)

		require.NoError(t, err)
		assert.Equal(t, 201, rec.Code)
		assert.JSONEq(t, `{"message":"1 scan result(s) uploaded successfully","count":1,"errors":[{"testName":"broken","source":"scan.json","error":"url is required"}]}`, rec.Body.String())
	})

	t.Run("should require a file", func(t *testing.T) {
		ctx, _ := newTestContext(multipartRequest(t, "/scan-results/upload/", map[string]string{"name": "x"}))
		withProject(ctx)

		requireHTTPError(t, NewUploadController(mocks.NewIngestionService(t)).Upload(ctx), 400)
	})
}

func TestUploadControllerUploadMultiple(t *testing.T) {
	service := mocks.NewIngestionService(t)
	ctx, rec := newTestContext(multipartRequest(t, "/scan-results/upload-multiple/", nil,
		multipartFile{field: "files", name: "a.json", data: `{}`},
		multipartFile{field: "files", name: "b.json", data: `[]`},
	))
	project := withProject(ctx)
	service.On("Ingest", mock.Anything, project.ID, services.ModeUploadMultiple, mock.MatchedBy(func(sources []shared.IngestionSource) bool {
		return len(sources) == 2 && sources[0].Name == "a.json" && sources[1].Name == "b.json"
	})).Return(shared.IngestionResult{Count: 2}, nil)

	require.NoError(t, NewUploadController(service).UploadMultiple(ctx))
	assert.Equal(t, 201, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors":[]`)
}

func TestUploadControllerUploadJSON(t *testing.T) {
	t.Run("should reject an empty body", func(t *testing.T) {
		ctx, _ := newTestContext(httptest.NewRequest(http.MethodPost, "/scan-results/upload-json/", strings.NewReader("  \n")))
		withProject(ctx)

		he := requireHTTPError(t, NewUploadController(mocks.NewIngestionService(t)).UploadJSON(ctx), 400)
		assert.Equal(t, "Request body is empty", he.Message)
	})

	t.Run("should ingest the raw body", func(t *testing.T) {
		service := mocks.NewIngestionService(t)
		body := `{"testName":"login","url":"https://example.com","violations":[]}`
		req := httptest.NewRequest(http.MethodPost, "/scan-results/upload-json/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		ctx, rec := newTestContext(req)
		project := withProject(ctx)
		service.On("Ingest", mock.Anything, project.ID, services.ModeUploadJSON, []shared.IngestionSource{{Name: "body", Data: []byte(body)}}).
			Return(shared.IngestionResult{Count: 1}, nil)

		require.NoError(t, NewUploadController(service).UploadJSON(ctx))
		assert.Equal(t, 201, rec.Code)
	})
}

func TestUploadControllerUploadArchive(t *testing.T) {
	t.Run("should pass the archive to the ingestion", func(t *testing.T) {
		service := mocks.NewIngestionService(t)
		ctx, rec := newTestContext(multipartRequest(t, "/scan-results/upload-tar/", nil, multipartFile{field: "file", name: "results.tar.gz", data: "archive"}))
		project := withProject(ctx)
		service.On("IngestArchive", mock.Anything, project.ID, "results.tar.gz", mock.Anything).Return(shared.IngestionResult{Count: 3}, nil)

		require.NoError(t, NewUploadController(service).UploadArchive(ctx))
		assert.Contains(t, rec.Body.String(), `"count":3`)
	})

	t.Run("should pass the no valid entries error", func(t *testing.T) {
		service := mocks.NewIngestionService(t)
		ctx, _ := newTestContext(multipartRequest(t, "/scan-results/upload-tar/", nil, multipartFile{field: "file", name: "results.tar", data: "archive"}))
		withProject(ctx)
		service.On("IngestArchive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(shared.IngestionResult{}, echo.NewHTTPError(400, echo.Map{"message": "No valid scan results found in archive"}))

		requireHTTPError(t, NewUploadController(service).UploadArchive(ctx), 400)
	})
}

// larger than the in-memory part of a multipart form, so the file is spooled to disk
var spooledUpload = strings.Repeat(" ", 33<<20) + "{}"

func TestUploadControllerRemovesTemporaryFiles(t *testing.T) {
	t.Run("single file upload", func(t *testing.T) {
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)

		service := mocks.NewIngestionService(t)
		ctx, _ := newTestContext(multipartRequest(t, "/scan-results/upload/", nil, multipartFile{field: "file", name: "scan.json", data: spooledUpload}))
		project := withProject(ctx)
		service.On("Ingest", mock.Anything, project.ID, services.ModeUpload, mock.Anything).
			Run(func(args mock.Arguments) {
				spooled, err := os.ReadDir(tmp)
				require.NoError(t, err)
				assert.NotEmpty(t, spooled)
			}).
			Return(shared.IngestionResult{Count: 1}, nil)

		require.NoError(t, NewUploadController(service).Upload(ctx))

		left, err := os.ReadDir(tmp)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("archive upload", func(t *testing.T) {
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)

		service := mocks.NewIngestionService(t)
		ctx, _ := newTestContext(multipartRequest(t, "/scan-results/upload-tar/", nil, multipartFile{field: "file", name: "results.tar", data: spooledUpload}))
		withProject(ctx)
		service.On("IngestArchive", mock.Anything, mock.Anything, "results.tar", mock.Anything).
			Return(shared.IngestionResult{}, echo.NewHTTPError(400, "Could not extract archive"))

		requireHTTPError(t, NewUploadController(service).UploadArchive(ctx), 400)

		left, err := os.ReadDir(tmp)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("upload without the expected field", func(t *testing.T) {
		tmp := t.TempDir()
		t.Setenv("TMPDIR", tmp)

		ctx, _ := newTestContext(multipartRequest(t, "/scan-results/upload-tar/", nil, multipartFile{field: "other", name: "results.tar", data: spooledUpload}))
		withProject(ctx)

		he := requireHTTPError(t, NewUploadController(mocks.NewIngestionService(t)).UploadArchive(ctx), 400)
		assert.Equal(t, "No file uploaded", he.Message)

		left, err := os.ReadDir(tmp)
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}
