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
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/services"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/labstack/echo/v4"
)

type UploadController struct {
	ingestionService shared.IngestionService
}

func NewUploadController(ingestionService shared.IngestionService) *UploadController {
	return &UploadController{
		ingestionService: ingestionService,
	}
}

func readFileHeader(fh *multipart.FileHeader) (shared.IngestionSource, error) {
	f, err := fh.Open()
	if err != nil {
		return shared.IngestionSource{}, echo.NewHTTPError(400, fmt.Sprintf("could not read %s", fh.Filename)).WithInternal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return shared.IngestionSource{}, echo.NewHTTPError(400, fmt.Sprintf("could not read %s", fh.Filename)).WithInternal(err)
	}
	return shared.IngestionSource{Name: fh.Filename, Data: data}, nil
}

func uploadResponse(ctx shared.Context, res shared.IngestionResult) error {
	errs := res.Errors
	if errs == nil {
		errs = []dtos.UploadRecordError{}
	}
	return ctx.JSON(http.StatusCreated, dtos.UploadResponse{
		Message: dtos.UploadMessage(res.Count),
		Count:   res.Count,
		Errors:  errs,
	})
}

// formFile returns the first file of field. The caller removes the temporary
// files of the returned form.
func formFile(ctx shared.Context, field string) (*multipart.Form, *multipart.FileHeader, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, nil, echo.NewHTTPError(400, "No file uploaded").WithInternal(err)
	}
	if len(form.File[field]) == 0 {
		form.RemoveAll() // nolint:errcheck
		return nil, nil, echo.NewHTTPError(400, "No file uploaded")
	}
	return form, form.File[field][0], nil
}

// @Summary Upload a json file with one or many scan results
// @Param projectId query string true "Project ID"
// @Param file formData file true "Scan results"
// @Success 201 {object} dtos.UploadResponse
// @Router /scan-results/upload [post]
func (controller *UploadController) Upload(ctx shared.Context) error {
	form, fh, err := formFile(ctx, "file")
	if err != nil {
		return err
	}
	defer form.RemoveAll() // nolint:errcheck

	source, err := readFileHeader(fh)
	if err != nil {
		return err
	}

	res, err := controller.ingestionService.Ingest(ctx.Request().Context(), shared.GetProject(ctx).ID, services.ModeUpload, []shared.IngestionSource{source})
	if err != nil {
		return err
	}
	return uploadResponse(ctx, res)
}

// @Summary Upload many json files at once
// @Param projectId query string true "Project ID"
// @Param files formData file true "Scan result files"
// @Success 201 {object} dtos.UploadResponse
// @Router /scan-results/upload-multiple [post]
func (controller *UploadController) UploadMultiple(ctx shared.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(400, "No files uploaded").WithInternal(err)
	}
	defer form.RemoveAll() // nolint:errcheck

	headers := slices.Concat(form.File["files"], form.File["files[]"])
	sources := make([]shared.IngestionSource, 0, len(headers))
	for _, fh := range headers {
		source, err := readFileHeader(fh)
		if err != nil {
			return err
		}
		sources = append(sources, source)
	}

	res, err := controller.ingestionService.Ingest(ctx.Request().Context(), shared.GetProject(ctx).ID, services.ModeUploadMultiple, sources)
	if err != nil {
		return err
	}
	return uploadResponse(ctx, res)
}

// @Summary Upload scan results as json body
// @Param projectId query string true "Project ID"
// @Success 201 {object} dtos.UploadResponse
// @Router /scan-results/upload-json [post]
func (controller *UploadController) UploadJSON(ctx shared.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return echo.NewHTTPError(400, "could not read request body").WithInternal(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return echo.NewHTTPError(400, "Request body is empty")
	}

	res, err := controller.ingestionService.Ingest(ctx.Request().Context(), shared.GetProject(ctx).ID, services.ModeUploadJSON, []shared.IngestionSource{{Name: "body", Data: body}})
	if err != nil {
		return err
	}
	return uploadResponse(ctx, res)
}

// @Summary Upload a tar, tar.gz, tar.xz or zip archive of json files
// @Param projectId query string true "Project ID"
// @Param file formData file true "Archive"
// @Success 201 {object} dtos.UploadResponse
// @Router /scan-results/upload-tar [post]
func (controller *UploadController) UploadArchive(ctx shared.Context) error {
	form, fh, err := formFile(ctx, "file")
	if err != nil {
		return err
	}
	defer form.RemoveAll() // nolint:errcheck

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(400, "could not read archive").WithInternal(err)
	}
	defer f.Close()

	res, err := controller.ingestionService.IngestArchive(ctx.Request().Context(), shared.GetProject(ctx).ID, fh.Filename, f)
	if err != nil {
		return err
	}
	return uploadResponse(ctx, res)
}
