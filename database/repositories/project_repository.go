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

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type projectRepository struct {
	db shared.DB
	*GormRepository[uuid.UUID, models.Project]
}

func NewProjectRepository(db shared.DB) *projectRepository {
	return &projectRepository{
		db:             db,
		GormRepository: newGormRepository[uuid.UUID, models.Project](db),
	}
}

func (r *projectRepository) List(includeArchived bool) ([]models.Project, error) {
	var projects []models.Project
	q := r.db.Order("created_at DESC")
	if !includeArchived {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&projects).Error
	return projects, err
}

// setActiveState flips is_active only if the project currently has the opposite state.
// updated_at stays untouched, archiving is not an edit of the project.
func (r *projectRepository) setActiveState(tx shared.DB, projectID uuid.UUID, active bool, deletedAt *time.Time) (models.Project, error) {
	var project models.Project
	res := r.GetDB(tx).Model(&project).
		Clauses(clause.Returning{}).
		Where("id = ? AND is_active = ?", projectID, !active).
		UpdateColumns(map[string]any{
			"is_active":  active,
			"deleted_at": deletedAt,
		})
	if res.Error != nil {
		return project, res.Error
	}
	if res.RowsAffected == 0 {
		return project, gorm.ErrRecordNotFound
	}
	return project, nil
}

func (r *projectRepository) Archive(tx shared.DB, projectID uuid.UUID, at time.Time) (models.Project, error) {
	return r.setActiveState(tx, projectID, false, &at)
}

func (r *projectRepository) Restore(tx shared.DB, projectID uuid.UUID) (models.Project, error) {
	return r.setActiveState(tx, projectID, true, nil)
}
