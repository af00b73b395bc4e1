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

package shared

import (
	"fmt"
	"strconv"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/normalize"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func SetProject(ctx Context, project models.Project) {
	ctx.Set("project", project)
}

func GetProject(ctx Context) models.Project {
	return ctx.Get("project").(models.Project)
}

// ParseUUIDParam reads a path parameter as uuid. Syntactically invalid ids are a bad request.
func ParseUUIDParam(ctx Context, name string) (uuid.UUID, error) {
	raw := SanitizeParam(ctx.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(400, "Invalid ID").WithInternal(err)
	}
	return id, nil
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps the offset of the last page far away from an integer overflow.
	MaxPage = 1_000_000
)

type PageInfo struct {
	PageSize int `json:"pageSize"`
	Page     int `json:"page"`
}

// Offset is the number of rows before the page. It is never negative.
func (p PageInfo) Offset() int {
	page := min(max(p.Page, 1), MaxPage)
	size := min(max(p.PageSize, 0), MaxPageSize)
	return (page - 1) * size
}

func (p PageInfo) ApplyOnDB(db DB) DB {
	return db.Offset(p.Offset()).Limit(p.PageSize)
}

type Paged[T any] struct {
	PageInfo
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

func (p Paged[T]) Map(f func(T) any) Paged[any] {
	data := make([]any, len(p.Data))
	for i, d := range p.Data {
		data[i] = f(d)
	}
	return Paged[any]{
		PageInfo: p.PageInfo,
		Total:    p.Total,
		Data:     data,
	}
}

func NewPaged[T any](pageInfo PageInfo, total int64, data []T) Paged[T] {
	return Paged[T]{
		PageInfo: pageInfo,
		Total:    total,
		Data:     data,
	}
}

// GetPageInfo reads the page from the path (":page") or the query and the page size
// from "limit" or "pageSize". The page size defaults to 10 and is capped at 100,
// the page is capped at MaxPage.
func GetPageInfo(ctx Context) PageInfo {
	rawPage := SanitizeParam(ctx.Param("page"))
	if rawPage == "" {
		rawPage = ctx.QueryParam("page")
	}
	page, _ := strconv.Atoi(rawPage)
	switch {
	case page > MaxPage:
		page = MaxPage
	case page <= 0:
		page = 1
	}

	rawSize := ctx.QueryParam("limit")
	if rawSize == "" {
		rawSize = ctx.QueryParam("pageSize")
	}
	pageSize, _ := strconv.Atoi(rawSize)
	switch {
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	case pageSize <= 0:
		pageSize = DefaultPageSize
	}

	return PageInfo{
		Page:     page,
		PageSize: pageSize,
	}
}

// GetLimit parses the "limit" query parameter. Missing, invalid or non positive
// values fall back to def, values above max are capped.
func GetLimit(ctx Context, def, max int) int {
	limit, err := strconv.Atoi(ctx.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func getTimeQuery(ctx Context, name string, loc *time.Location) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := normalize.ParseFlexibleTime(raw, loc)
	if err != nil {
		return nil, echo.NewHTTPError(400, fmt.Sprintf("invalid %s date", name)).WithInternal(err)
	}
	return &t, nil
}

// GetScanResultFilter reads the optional "from" and "to" query parameters.
// Dates without a zone are read in loc.
func GetScanResultFilter(ctx Context, loc *time.Location) (ScanResultFilter, error) {
	from, err := getTimeQuery(ctx, "from", loc)
	if err != nil {
		return ScanResultFilter{}, err
	}
	to, err := getTimeQuery(ctx, "to", loc)
	if err != nil {
		return ScanResultFilter{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return ScanResultFilter{}, echo.NewHTTPError(400, "from must be before to")
	}
	return ScanResultFilter{From: from, To: to}, nil
}

// GetFromQuery returns the "from" query parameter or the fallback.
func GetFromQuery(ctx Context, loc *time.Location, fallback time.Time) (time.Time, error) {
	from, err := getTimeQuery(ctx, "from", loc)
	if err != nil {
		return time.Time{}, err
	}
	if from == nil {
		return fallback, nil
	}
	return *from, nil
}

func GetBoolQuery(ctx Context, name string) bool {
	b, _ := strconv.ParseBool(ctx.QueryParam(name))
	return b
}
