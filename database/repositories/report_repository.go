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

package repositories

import (
	"time"

	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type reportRepository struct {
	db shared.DB
}

func NewReportRepository(db shared.DB) *reportRepository {
	return &reportRepository{
		db: db,
	}
}

// TopViolations only looks at the latest scan of every url of the project.
// The example url is the smallest url of the group to keep the result stable.
func (r *reportRepository) TopViolations(projectID uuid.UUID, impacts []string, limit int) ([]dtos.ViolationReportRow, error) {
	var rows []dtos.ViolationReportRow
	err := r.db.Raw(`
WITH latest AS (
	SELECT DISTINCT ON (url) url, violations
	FROM scan_results
	WHERE project_id = ?
	ORDER BY url, created DESC
)
SELECT COALESCE(v->>'help', '') AS help, v->>'impact' AS impact, COUNT(*) AS count, MIN(latest.url) AS url
FROM latest
CROSS JOIN LATERAL jsonb_array_elements(latest.violations) AS v
WHERE v->>'impact' = ANY(?)
GROUP BY v->>'help', v->>'impact'
ORDER BY count DESC, help ASC, impact ASC
LIMIT ?`, projectID, pq.StringArray(impacts), limit).Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) URLViolationCounts(projectID uuid.UUID, from time.Time) ([]dtos.URLViolationCount, error) {
	var rows []dtos.URLViolationCount
	err := r.db.Raw(`
SELECT url, jsonb_array_length(violations) AS violation_count
FROM scan_results
WHERE project_id = ? AND created >= ?`, projectID, from).Scan(&rows).Error
	return rows, err
}
