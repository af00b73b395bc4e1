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
	"testing"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/mocks"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestScanResultServiceListByYear(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	projectID := uuid.New()

	t.Run("should list the calendar year in the day boundary zone", func(t *testing.T) {
		repo := mocks.NewScanResultRepository(t)
		repo.On("List", projectID, mock.MatchedBy(func(f shared.ScanResultFilter) bool {
			return f.From.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, berlin)) &&
				f.To.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, berlin))
		})).Return([]models.ScanResult{{TestName: "login"}}, nil)

		s := NewScanResultService(repo, shared.Config{}.WithLocation(berlin))
		scans, err := s.ListByYear(projectID, 2025)

		require.NoError(t, err)
		assert.Len(t, scans, 1)
	})

	t.Run("should reject nonsense years", func(t *testing.T) {
		s := NewScanResultService(mocks.NewScanResultRepository(t), shared.Config{}.WithLocation(berlin))

		_, err := s.ListByYear(projectID, 20250)

		assert.Equal(t, 400, httpStatus(t, err))
	})
}

func TestScanResultServiceReadAndDelete(t *testing.T) {
	t.Run("should return not found for unknown scan results", func(t *testing.T) {
		repo := mocks.NewScanResultRepository(t)
		repo.On("Read", mock.Anything).Return(models.ScanResult{}, gorm.ErrRecordNotFound)
		s := NewScanResultService(repo, shared.Config{})

		_, err := s.Read(uuid.New())

		assert.Equal(t, 404, httpStatus(t, err))
		assert.ErrorContains(t, err, "Scan result not found")
	})

	t.Run("should return not found when deleting unknown scan results", func(t *testing.T) {
		repo := mocks.NewScanResultRepository(t)
		repo.On("Delete", mock.Anything, mock.Anything).Return(gorm.ErrRecordNotFound)
		s := NewScanResultService(repo, shared.Config{})

		assert.Equal(t, 404, httpStatus(t, s.Delete(uuid.New())))
	})

	t.Run("should delete existing scan results", func(t *testing.T) {
		id := uuid.New()
		repo := mocks.NewScanResultRepository(t)
		repo.On("Delete", mock.Anything, id).Return(nil)
		s := NewScanResultService(repo, shared.Config{})

		assert.NoError(t, s.Delete(id))
	})
}
