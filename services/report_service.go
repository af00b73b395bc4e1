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

package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/monitoring"
	"github.com/DutchRican/a11y-reports/normalize"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultReportLimit  = 5
	MaxReportLimit      = 100
	DefaultMinImpact    = "serious"
	DefaultReportWindow = 30 * 24 * time.Hour
)

type reportService struct {
	reportRepository shared.ReportRepository
	// identical concurrent report requests share one query
	group singleflight.Group
}

var _ shared.ReportService = (*reportService)(nil)

func NewReportService(reportRepository shared.ReportRepository) *reportService {
	return &reportService{
		reportRepository: reportRepository,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultReportLimit
	}
	return min(limit, MaxReportLimit)
}

func (s *reportService) TopViolations(ctx context.Context, projectID uuid.UUID, minImpact string, limit int) ([]dtos.ViolationReportRow, error) {
	minImpact = strings.ToLower(strings.TrimSpace(minImpact))
	if minImpact == "" {
		minImpact = DefaultMinImpact
	}
	impacts, ok := normalize.ImpactsAtLeast(minImpact)
	if !ok {
		return nil, echo.NewHTTPError(400, "Invalid impact level")
	}
	limit = clampLimit(limit)

	key := fmt.Sprintf("violations/%s/%s/%d", projectID, minImpact, limit)
	res, err, _ := s.group.Do(key, func() (any, error) {
		start := time.Now()
		defer func() {
			monitoring.ReportDuration.WithLabelValues("top_violations").Observe(time.Since(start).Seconds())
		}()
		return s.reportRepository.TopViolations(projectID, impacts, limit)
	})
	if err != nil {
		return nil, echo.NewHTTPError(500, "could not build violation report").WithInternal(err)
	}

	rows, _ := res.([]dtos.ViolationReportRow)
	if rows == nil {
		rows = []dtos.ViolationReportRow{}
	}
	return rows, nil
}

// aggregateURLPatterns sums the violation counts per collapsed url. Ties are ordered by url.
func aggregateURLPatterns(counts []dtos.URLViolationCount, limit int) []dtos.URLPatternReportRow {
	sums := make(map[string]int64, len(counts))
	for _, c := range counts {
		sums[normalize.CollapseURLPattern(c.URL)] += c.ViolationCount
	}

	rows := make([]dtos.URLPatternReportRow, 0, len(sums))
	for url, count := range sums {
		rows = append(rows, dtos.URLPatternReportRow{URL: url, Count: count})
	}

	slices.SortFunc(rows, func(a, b dtos.URLPatternReportRow) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.URL, b.URL)
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func (s *reportService) TopURLPatterns(ctx context.Context, projectID uuid.UUID, limit int, from time.Time) ([]dtos.URLPatternReportRow, error) {
	limit = clampLimit(limit)
	if from.IsZero() {
		from = time.Now().Add(-DefaultReportWindow)
	}

	key := fmt.Sprintf("urls/%s/%d/%d", projectID, limit, from.UnixMilli())
	res, err, _ := s.group.Do(key, func() (any, error) {
		start := time.Now()
		defer func() {
			monitoring.ReportDuration.WithLabelValues("top_url_patterns").Observe(time.Since(start).Seconds())
		}()

		counts, err := s.reportRepository.URLViolationCounts(projectID, from)
		if err != nil {
			return nil, err
		}
		return aggregateURLPatterns(counts, limit), nil
	})
	if err != nil {
		return nil, echo.NewHTTPError(500, "could not build url report").WithInternal(err)
	}

	return res.([]dtos.URLPatternReportRow), nil
}
