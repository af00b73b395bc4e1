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
	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// the list endpoints never need the day key or the update timestamp
var scanResultListColumns = []string{"id", "test_name", "url", "created", "impact_counts", "violations", "total_violations", "project_id"}

var scanResultIdentity = []clause.Column{{Name: "project_id"}, {Name: "test_name"}, {Name: "scan_day"}}

var scanResultUpsertColumns = []string{"url", "created", "violations", "impact_counts", "total_violations", "updated_at"}

const upsertChunkSize = 500

type scanResultRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.ScanResult]
}

func NewScanResultRepository(db shared.DB) *scanResultRepository {
	return &scanResultRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.ScanResult](db),
	}
}

func applyScanResultFilter(q shared.DB, projectID uuid.UUID, filter shared.ScanResultFilter) shared.DB {
	q = q.Where("project_id = ?", projectID)
	if filter.From != nil {
		q = q.Where("created >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created < ?", *filter.To)
	}
	return q
}

func (r *scanResultRepository) List(projectID uuid.UUID, filter shared.ScanResultFilter) ([]models.ScanResult, error) {
	var scans []models.ScanResult
	err := applyScanResultFilter(r.db.Model(&models.ScanResult{}), projectID, filter).
		Select(scanResultListColumns).
		Order("created ASC").
		Find(&scans).Error
	return scans, err
}

func (r *scanResultRepository) ListPaged(projectID uuid.UUID, pageInfo shared.PageInfo, filter shared.ScanResultFilter) (shared.Paged[models.ScanResult], error) {
	var total int64
	err := applyScanResultFilter(r.db.Model(&models.ScanResult{}), projectID, filter).Count(&total).Error
	if err != nil {
		return shared.Paged[models.ScanResult]{}, err
	}

	var scans []models.ScanResult
	err = pageInfo.ApplyOnDB(applyScanResultFilter(r.db.Model(&models.ScanResult{}), projectID, filter)).
		Select(scanResultListColumns).
		Order("created ASC").
		Order("id ASC").
		Find(&scans).Error
	if err != nil {
		return shared.Paged[models.ScanResult]{}, err
	}

	return shared.NewPaged(pageInfo, total, scans), nil
}

func (r *scanResultRepository) DeleteByProjectID(tx shared.DB, projectID uuid.UUID) (int64, error) {
	res := r.GetDB(tx).Where("project_id = ?", projectID).Delete(&models.ScanResult{})
	return res.RowsAffected, res.Error
}

// dedupeByIdentity keeps the last record for every (project, test name, scan day).
// postgres refuses to update the same row twice in one INSERT ... ON CONFLICT statement.
func dedupeByIdentity(scans []models.ScanResult) []models.ScanResult {
	type identity struct {
		projectID uuid.UUID
		testName  string
		scanDay   string
	}

	index := make(map[identity]int, len(scans))
	res := make([]models.ScanResult, 0, len(scans))
	for _, s := range scans {
		key := identity{projectID: s.ProjectID, testName: s.TestName, scanDay: s.ScanDay}
		if i, ok := index[key]; ok {
			res[i] = s
			continue
		}
		index[key] = len(res)
		res = append(res, s)
	}
	return res
}

func (r *scanResultRepository) UpsertBatch(tx shared.DB, scans []models.ScanResult) error {
	for _, s := range scans {
		if s.ScanDay == "" {
			return errors.Errorf("scan result %q has no scan day", s.TestName)
		}
	}

	return r.Upsert(tx, dedupeByIdentity(scans), scanResultIdentity, scanResultUpsertColumns, upsertChunkSize)
}
