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
	"log/slog"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type scanResultService struct {
	scanResultRepository shared.ScanResultRepository
	location             *time.Location
}

var _ shared.ScanResultService = (*scanResultService)(nil)

func NewScanResultService(scanResultRepository shared.ScanResultRepository, cfg shared.Config) *scanResultService {
	return &scanResultService{
		scanResultRepository: scanResultRepository,
		location:             cfg.Location(),
	}
}

func (s *scanResultService) List(projectID uuid.UUID, filter shared.ScanResultFilter) ([]models.ScanResult, error) {
	scans, err := s.scanResultRepository.List(projectID, filter)
	if err != nil {
		return nil, echo.NewHTTPError(500, "could not list scan results").WithInternal(err)
	}
	return scans, nil
}

func (s *scanResultService) ListPaged(projectID uuid.UUID, pageInfo shared.PageInfo, filter shared.ScanResultFilter) (shared.Paged[models.ScanResult], error) {
	paged, err := s.scanResultRepository.ListPaged(projectID, pageInfo, filter)
	if err != nil {
		return shared.Paged[models.ScanResult]{}, echo.NewHTTPError(500, "could not list scan results").WithInternal(err)
	}
	return paged, nil
}

// ListByYear returns the scans created in [year-01-01, year+1-01-01) of the day boundary zone.
func (s *scanResultService) ListByYear(projectID uuid.UUID, year int) ([]models.ScanResult, error) {
	if year < 1970 || year > 9999 {
		return nil, echo.NewHTTPError(400, "Invalid year")
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(1, 0, 0)
	return s.List(projectID, shared.ScanResultFilter{From: &from, To: &to})
}

func (s *scanResultService) Read(id uuid.UUID) (models.ScanResult, error) {
	scan, err := s.scanResultRepository.Read(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ScanResult{}, echo.NewHTTPError(404, "Scan result not found").WithInternal(err)
		}
		return models.ScanResult{}, echo.NewHTTPError(500, "could not read scan result").WithInternal(err)
	}
	return scan, nil
}

func (s *scanResultService) Delete(id uuid.UUID) error {
	if err := s.scanResultRepository.Delete(nil, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(404, "Scan result not found").WithInternal(err)
		}
		return echo.NewHTTPError(500, "could not delete scan result").WithInternal(err)
	}
	slog.Info("scan result deleted", "scanResultID", id)
	return nil
}
