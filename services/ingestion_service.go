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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/monitoring"
	"github.com/DutchRican/a11y-reports/normalize"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/DutchRican/a11y-reports/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	ModeUpload         = "upload"
	ModeUploadMultiple = "upload-multiple"
	ModeUploadJSON     = "upload-json"
	ModeUploadArchive  = "upload-tar"
)

type ingestionService struct {
	scanResultRepository shared.ScanResultRepository
	archiver             shared.UploadArchiver
	location             *time.Location
	archiveLimits        normalize.ArchiveLimits
	now                  func() time.Time
}

var _ shared.IngestionService = (*ingestionService)(nil)

func NewIngestionService(scanResultRepository shared.ScanResultRepository, archiver shared.UploadArchiver, cfg shared.Config) *ingestionService {
	limits := normalize.DefaultArchiveLimits
	if cfg.ArchiveMaxEntries > 0 {
		limits.MaxEntries = cfg.ArchiveMaxEntries
	}
	if cfg.ArchiveMaxBytes > 0 {
		limits.MaxTotalBytes = cfg.ArchiveMaxBytes
	}

	return &ingestionService{
		scanResultRepository: scanResultRepository,
		archiver:             archiver,
		location:             cfg.Location(),
		archiveLimits:        limits,
		now:                  time.Now,
	}
}

type normalizedSource struct {
	scans  []models.ScanResult
	errors []dtos.UploadRecordError
}

// normalizeRecords never fails as a whole. Broken records end up in the error list.
func (s *ingestionService) normalizeRecords(projectID uuid.UUID, source string, records []json.RawMessage, now time.Time) normalizedSource {
	res := normalizedSource{
		scans:  make([]models.ScanResult, 0, len(records)),
		errors: []dtos.UploadRecordError{},
	}

	for _, record := range records {
		raw, err := normalize.DecodeRawScanResult(record)
		if err != nil {
			res.errors = append(res.errors, dtos.UploadRecordError{
				TestName: raw.GetTestName(),
				Source:   source,
				Error:    fmt.Sprintf("invalid record: %s", err.Error()),
			})
			continue
		}

		scan := normalize.NormalizeScanResult(raw, now, s.location)
		scan.ProjectID = projectID
		scan.ScanDay = normalize.ScanDay(scan.Created, s.location)

		if err := shared.V.Struct(scan); err != nil {
			res.errors = append(res.errors, dtos.UploadRecordError{
				TestName: scan.TestName,
				Source:   source,
				Error:    shared.ValidationMessage(err),
			})
			continue
		}

		res.scans = append(res.scans, scan)
	}
	return res
}

func (s *ingestionService) parseSources(ctx context.Context, projectID uuid.UUID, sources []shared.IngestionSource, strict bool) ([]normalizedSource, error) {
	now := s.now()
	parsed := make([]normalizedSource, len(sources))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, source := range sources {
		g.Go(func() error {
			records, err := normalize.ParseScanPayload(source.Data)
			if err != nil {
				if strict {
					return echo.NewHTTPError(400, fmt.Sprintf("Invalid JSON in %s: %s", source.Name, err.Error())).WithInternal(err)
				}
				parsed[i] = normalizedSource{errors: []dtos.UploadRecordError{{Source: source.Name, Error: err.Error()}}}
				return nil
			}
			parsed[i] = s.normalizeRecords(projectID, source.Name, records, now)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parsed, nil
}

// commit writes all valid scans in one batch. An archive without a single valid scan is a bad request,
// plain uploads report the rejected records with a count of zero.
func (s *ingestionService) commit(ctx context.Context, projectID uuid.UUID, mode string, sources []shared.IngestionSource, parsed []normalizedSource) (shared.IngestionResult, error) {
	scans := utils.Flat(utils.Map(parsed, func(p normalizedSource) []models.ScanResult { return p.scans }))
	recordErrors := utils.Flat(utils.Map(parsed, func(p normalizedSource) []dtos.UploadRecordError { return p.errors }))

	monitoring.RejectedScanResults.WithLabelValues(mode).Add(float64(len(recordErrors)))

	if len(scans) == 0 {
		if mode == ModeUploadArchive {
			return shared.IngestionResult{}, echo.NewHTTPError(400, map[string]any{
				"message": "No valid scan results found in archive",
				"errors":  recordErrors,
			})
		}
		return shared.IngestionResult{Count: 0, Errors: recordErrors}, nil
	}

	if err := s.scanResultRepository.UpsertBatch(nil, scans); err != nil {
		return shared.IngestionResult{}, echo.NewHTTPError(500, "could not save scan results").WithInternal(err)
	}
	monitoring.IngestedScanResults.WithLabelValues(mode).Add(float64(len(scans)))

	slog.Info("scan results ingested", "projectID", projectID, "mode", mode, "count", len(scans), "rejected", len(recordErrors))

	s.archive(ctx, projectID, sources)

	return shared.IngestionResult{
		Count:  len(scans),
		Errors: recordErrors,
	}, nil
}

// archive stores the raw documents after a successful commit.
func (s *ingestionService) archive(ctx context.Context, projectID uuid.UUID, sources []shared.IngestionSource) {
	if s.archiver == nil || !s.archiver.Enabled() {
		return
	}

	for _, source := range sources {
		if err := s.archiver.Store(ctx, projectID, source.Name, source.Data); err != nil {
			monitoring.ArchivedUploads.WithLabelValues("failed").Inc()
			monitoring.Alert("could not archive upload", err)
			continue
		}
		monitoring.ArchivedUploads.WithLabelValues("stored").Inc()
	}
}

// Ingest rejects the whole request if any source is not a json object or array.
func (s *ingestionService) Ingest(ctx context.Context, projectID uuid.UUID, mode string, sources []shared.IngestionSource) (shared.IngestionResult, error) {
	start := time.Now()
	defer func() {
		monitoring.IngestionDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}()

	if len(sources) == 0 {
		return shared.IngestionResult{}, echo.NewHTTPError(400, "No files uploaded")
	}

	parsed, err := s.parseSources(ctx, projectID, sources, true)
	if err != nil {
		return shared.IngestionResult{}, err
	}
	return s.commit(ctx, projectID, mode, sources, parsed)
}

// IngestArchive parses every json file of the archive on its own. A broken file is
// reported like a broken record, a broken archive fails the request.
func (s *ingestionService) IngestArchive(ctx context.Context, projectID uuid.UUID, name string, archive io.Reader) (shared.IngestionResult, error) {
	start := time.Now()
	defer func() {
		monitoring.IngestionDuration.WithLabelValues(ModeUploadArchive).Observe(time.Since(start).Seconds())
	}()

	data, err := io.ReadAll(archive)
	if err != nil {
		return shared.IngestionResult{}, echo.NewHTTPError(400, "Could not read archive").WithInternal(err)
	}

	entries, err := normalize.ReadArchive(bytes.NewReader(data), s.archiveLimits)
	if err != nil {
		if errors.Is(err, normalize.ErrArchiveEmpty) {
			return shared.IngestionResult{}, echo.NewHTTPError(400, "No JSON files found in archive").WithInternal(err)
		}
		return shared.IngestionResult{}, echo.NewHTTPError(400, fmt.Sprintf("Could not extract archive: %s", err.Error())).WithInternal(err)
	}

	sources := utils.Map(entries, func(e normalize.ArchiveEntry) shared.IngestionSource {
		return shared.IngestionSource{Name: e.Name, Data: e.Data}
	})

	parsed, err := s.parseSources(ctx, projectID, sources, false)
	if err != nil {
		return shared.IngestionResult{}, err
	}

	// the archive itself is kept, not its entries
	return s.commit(ctx, projectID, ModeUploadArchive, []shared.IngestionSource{{Name: name, Data: data}}, parsed)
}
