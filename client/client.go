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

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// APIError is a non 2xx answer of the server.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []dtos.UploadRecordError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

type Client struct {
	httpClient *http.Client
	session    *AdminSession

	apiURL string
}

// NewClient talks to the api root, e.g. http://localhost:3001/api. The session may be nil.
func NewClient(apiURL string, session *AdminSession) Client {
	return Client{
		apiURL:  strings.TrimSuffix(apiURL, "/"),
		session: session,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	admin       bool
}

func (c Client) do(ctx context.Context, r request, out any) error {
	var adminKey string
	if r.admin {
		key, ok := c.session.Key()
		if !ok {
			return ErrAdminModeDisabled
		}
		adminKey = key
	}

	target := c.apiURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return errors.Wrap(err, "could not create request")
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if adminKey != "" {
		req.Header.Set("Authorization", adminKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s failed", r.method, r.path)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "could not read response")
	}

	if res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var msg struct {
			Message string                   `json:"message"`
			Errors  []dtos.UploadRecordError `json:"errors"`
		}
		if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
			apiErr.Errors = msg.Errors
		} else {
			apiErr.Message = http.StatusText(res.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return errors.Wrap(json.Unmarshal(body, out), "could not decode response")
}

func projectQuery(projectID uuid.UUID) url.Values {
	return url.Values{"projectId": {projectID.String()}}
}

func (c Client) ListProjects(ctx context.Context, includeArchived bool) ([]dtos.ProjectDTO, error) {
	var projects []dtos.ProjectDTO
	q := url.Values{}
	if includeArchived {
		q.Set("includeArchived", "true")
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/projects/", query: q}, &projects)
	return projects, err
}

func (c Client) ReadProject(ctx context.Context, id uuid.UUID) (dtos.ProjectDTO, error) {
	var project dtos.ProjectDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/projects/" + id.String() + "/"}, &project)
	return project, err
}

// CreateProject sends the multipart form the dashboard sends.
func (c Client) CreateProject(ctx context.Context, req dtos.ProjectCreateRequest) (dtos.ProjectDTO, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range map[string]string{"name": req.Name, "description": req.Description, "pageUrl": req.PageURL} {
		if err := w.WriteField(k, v); err != nil {
			return dtos.ProjectDTO{}, err
		}
	}
	if err := w.Close(); err != nil {
		return dtos.ProjectDTO{}, err
	}

	var project dtos.ProjectDTO
	err := c.do(ctx, request{method: http.MethodPost, path: "/projects/", body: &body, contentType: w.FormDataContentType()}, &project)
	return project, err
}

func (c Client) UpdateProject(ctx context.Context, id uuid.UUID, req dtos.ProjectUpdateRequest) (dtos.ProjectDTO, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return dtos.ProjectDTO{}, err
	}

	var project dtos.ProjectDTO
	err = c.do(ctx, request{method: http.MethodPut, path: "/projects/" + id.String() + "/", body: bytes.NewReader(b), contentType: "application/json"}, &project)
	return project, err
}

func (c Client) ArchiveProject(ctx context.Context, id uuid.UUID) (dtos.ProjectDTO, error) {
	var project dtos.ProjectDTO
	err := c.do(ctx, request{method: http.MethodDelete, path: "/projects/" + id.String() + "/"}, &project)
	return project, err
}

func (c Client) RestoreProject(ctx context.Context, id uuid.UUID) (dtos.ProjectDTO, error) {
	var project dtos.ProjectDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/projects/" + id.String() + "/restore/", admin: true}, &project)
	return project, err
}

func (c Client) HardDeleteProject(ctx context.Context, id uuid.UUID) (dtos.ProjectDeletedResponse, error) {
	var res dtos.ProjectDeletedResponse
	err := c.do(ctx, request{method: http.MethodDelete, path: "/projects/" + id.String() + "/hard-delete/", admin: true}, &res)
	return res, err
}

func (c Client) ListScanResults(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]dtos.ScanResultDTO, error) {
	q := projectQuery(projectID)
	if from != nil {
		q.Set("from", from.Format(time.RFC3339))
	}
	if to != nil {
		q.Set("to", to.Format(time.RFC3339))
	}

	var scans []dtos.ScanResultDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/scan-results/", query: q}, &scans)
	return scans, err
}

type ScanResultPage struct {
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
	Total    int64                `json:"total"`
	Data     []dtos.ScanResultDTO `json:"data"`
}

func (c Client) ListScanResultsPage(ctx context.Context, projectID uuid.UUID, page, limit int) (ScanResultPage, error) {
	q := projectQuery(projectID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var res ScanResultPage
	err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/scan-results/page/%d/", page), query: q}, &res)
	return res, err
}

func (c Client) ListScanResultsByYear(ctx context.Context, projectID uuid.UUID, year int) ([]dtos.ScanResultDTO, error) {
	var scans []dtos.ScanResultDTO
	err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("/scan-results/year/%d/", year), query: projectQuery(projectID)}, &scans)
	return scans, err
}

func (c Client) ReadScanResult(ctx context.Context, id uuid.UUID) (dtos.ScanResultDetailsDTO, error) {
	var scan dtos.ScanResultDetailsDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/scan-results/" + id.String() + "/"}, &scan)
	return scan, err
}

func (c Client) DeleteScanResult(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/scan-results/" + id.String() + "/", admin: true}, nil)
}

// File is a named upload.
type File struct {
	Name string
	Data io.Reader
}

func (c Client) upload(ctx context.Context, projectID uuid.UUID, path, field string, files []File) (dtos.UploadResponse, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Name)
		if err != nil {
			return dtos.UploadResponse{}, err
		}
		if _, err := io.Copy(part, f.Data); err != nil {
			return dtos.UploadResponse{}, errors.Wrapf(err, "could not read %s", f.Name)
		}
	}
	if err := w.Close(); err != nil {
		return dtos.UploadResponse{}, err
	}

	var res dtos.UploadResponse
	err := c.do(ctx, request{method: http.MethodPost, path: path, query: projectQuery(projectID), body: &body, contentType: w.FormDataContentType()}, &res)
	return res, err
}

func (c Client) UploadFile(ctx context.Context, projectID uuid.UUID, file File) (dtos.UploadResponse, error) {
	return c.upload(ctx, projectID, "/scan-results/upload/", "file", []File{file})
}

func (c Client) UploadFiles(ctx context.Context, projectID uuid.UUID, files []File) (dtos.UploadResponse, error) {
	return c.upload(ctx, projectID, "/scan-results/upload-multiple/", "files", files)
}

func (c Client) UploadArchive(ctx context.Context, projectID uuid.UUID, archive File) (dtos.UploadResponse, error) {
	return c.upload(ctx, projectID, "/scan-results/upload-tar/", "file", []File{archive})
}

func (c Client) UploadJSON(ctx context.Context, projectID uuid.UUID, data []byte) (dtos.UploadResponse, error) {
	var res dtos.UploadResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/scan-results/upload-json/", query: projectQuery(projectID), body: bytes.NewReader(data), contentType: "application/json"}, &res)
	return res, err
}

func (c Client) TopViolations(ctx context.Context, projectID uuid.UUID, impact string, limit int) ([]dtos.ViolationReportRow, error) {
	q := projectQuery(projectID)
	if impact != "" {
		q.Set("impact", impact)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var rows []dtos.ViolationReportRow
	err := c.do(ctx, request{method: http.MethodGet, path: "/reports/results-with-issues/", query: q}, &rows)
	return rows, err
}

func (c Client) TopURLPatterns(ctx context.Context, projectID uuid.UUID, limit int, from *time.Time) ([]dtos.URLPatternReportRow, error) {
	q := projectQuery(projectID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if from != nil {
		q.Set("from", from.Format(time.RFC3339))
	}

	var rows []dtos.URLPatternReportRow
	err := c.do(ctx, request{method: http.MethodGet, path: "/reports/urls-with-issues/", query: q}, &rows)
	return rows, err
}
