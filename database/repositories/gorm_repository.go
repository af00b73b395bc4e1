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
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Tabler interface {
	TableName() string
}

type GormRepository[ID comparable, T Tabler] struct {
	db *gorm.DB
}

func newGormRepository[ID comparable, T Tabler](db *gorm.DB) *GormRepository[ID, T] {
	return &GormRepository[ID, T]{
		db: db,
	}
}

func (g *GormRepository[ID, T]) Save(tx *gorm.DB, t *T) error {
	return g.GetDB(tx).Save(t).Error
}

func (g *GormRepository[ID, T]) Create(tx *gorm.DB, t *T) error {
	return g.GetDB(tx).Create(t).Error
}

func (g *GormRepository[ID, T]) Read(id ID) (T, error) {
	var t T
	err := g.db.First(&t, "id = ?", id).Error
	return t, err
}

// Delete removes a single row and returns gorm.ErrRecordNotFound if nothing was deleted.
func (g *GormRepository[ID, T]) Delete(tx *gorm.DB, id ID) error {
	var t T
	res := g.GetDB(tx).Where("id = ?", id).Delete(&t)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Upsert inserts ts in chunks. Conflicts on the given columns update the listed columns.
// A chunk which hits the postgres parameter limit is split in half and retried.
func (g *GormRepository[ID, T]) Upsert(tx *gorm.DB, ts []T, conflictingColumns []clause.Column, updateOnly []string, chunkSize int) error {
	for _, c := range chunk(ts, chunkSize) {
		if err := g.upsertChunk(tx, c, conflictingColumns, updateOnly); err != nil {
			return err
		}
	}
	return nil
}

func (g *GormRepository[ID, T]) upsertChunk(tx *gorm.DB, ts []T, conflictingColumns []clause.Column, updateOnly []string) error {
	if len(ts) == 0 {
		return nil
	}

	onConflict := clause.OnConflict{Columns: conflictingColumns, UpdateAll: true}
	if len(updateOnly) > 0 {
		onConflict = clause.OnConflict{Columns: conflictingColumns, DoUpdates: clause.AssignmentColumns(updateOnly)}
	}

	err := g.GetDB(tx).Clauses(onConflict).Create(&ts).Error
	if err != nil && isParameterLimitError(err) && len(ts) > 1 {
		half := len(ts) / 2
		if err := g.upsertChunk(tx, ts[:half], conflictingColumns, updateOnly); err != nil {
			return err
		}
		return g.upsertChunk(tx, ts[half:], conflictingColumns, updateOnly)
	}
	return errors.Wrap(err, "could not upsert")
}

func (g *GormRepository[ID, T]) Transaction(f func(tx *gorm.DB) error) error {
	return g.db.Transaction(f)
}

func (g *GormRepository[ID, T]) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return g.db
}

func isParameterLimitError(err error) bool {
	return err.Error() == "extended protocol limited to 65535 parameters"
}

func chunk[T any](ts []T, size int) [][]T {
	if size <= 0 {
		size = len(ts)
	}
	if len(ts) == 0 {
		return nil
	}
	res := make([][]T, 0, (len(ts)+size-1)/size)
	for start := 0; start < len(ts); start += size {
		end := min(start+size, len(ts))
		res = append(res, ts[start:end])
	}
	return res
}
