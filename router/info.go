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

package router

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/DutchRican/a11y-reports/cmd/a11y-reports/api"
	"github.com/DutchRican/a11y-reports/config"
	"github.com/DutchRican/a11y-reports/database"
	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InfoResponse is returned by GET /api/info/
type InfoResponse struct {
	Version   string        `json:"version"`
	Commit    string        `json:"commit,omitempty"`
	BuildDate string        `json:"buildDate,omitempty"`
	GoVersion string        `json:"goVersion"`
	Hostname  string        `json:"hostname,omitempty"`
	Uptime    string        `json:"uptime"`
	HeapBytes uint64        `json:"heapBytes"`
	Ingestion IngestionInfo `json:"ingestion"`
	Storage   StorageInfo   `json:"storage"`
}

// IngestionInfo reports the limits uploads are checked against.
type IngestionInfo struct {
	DayBoundaryTimezone string  `json:"dayBoundaryTimezone"`
	UploadMaxBytes      int64   `json:"uploadMaxBytes"`
	ArchiveMaxEntries   int     `json:"archiveMaxEntries"`
	ArchiveMaxBytes     int64   `json:"archiveMaxBytes"`
	UploadsPerSecond    float64 `json:"uploadsPerSecond"`
	ArchiveUploads      bool    `json:"archiveUploads"`
}

type StorageInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`

	SchemaVersion *uint `json:"schemaVersion,omitempty"`
	SchemaDirty   bool  `json:"schemaDirty,omitempty"`

	Projects    *int64 `json:"projects,omitempty"`
	ScanResults *int64 `json:"scanResults,omitempty"`

	Connections *ConnectionInfo `json:"connections,omitempty"`
}

// ConnectionInfo never contains credentials.
type ConnectionInfo struct {
	Database string `json:"database"`
	Total    int32  `json:"total"`
	Idle     int32  `json:"idle"`
	Acquired int32  `json:"acquired"`
	Max      int32  `json:"max"`
}

func countRows(db shared.DB, model any) *int64 {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return nil
	}
	return &count
}

func storageInfo(ctx context.Context, db shared.DB, pool *pgxpool.Pool, cfg shared.Config) StorageInfo {
	sqlDB, err := db.DB()
	if err != nil {
		return StorageInfo{Status: "unhealthy", Error: "failed to get database instance"}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return StorageInfo{Status: "unhealthy", Error: "database ping failed"}
	}

	info := StorageInfo{
		Status:      "healthy",
		Projects:    countRows(db, &models.Project{}),
		ScanResults: countRows(db, &models.ScanResult{}),
	}

	if version, dirty, err := database.GetMigrationVersionWithDB(db); err == nil {
		info.SchemaVersion = &version
		info.SchemaDirty = dirty
	}

	if pool != nil {
		stats := pool.Stat()
		info.Connections = &ConnectionInfo{
			Database: database.GetPoolConfig(cfg).DBName,
			Total:    stats.TotalConns(),
			Idle:     stats.IdleConns(),
			Acquired: stats.AcquiredConns(),
			Max:      stats.MaxConns(),
		}
	}
	return info
}

func buildInfo(ctx context.Context, db shared.DB, pool *pgxpool.Pool, cfg shared.Config) InfoResponse {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	hostname, _ := os.Hostname()

	return InfoResponse{
		Version:   config.Version,
		Commit:    config.Commit,
		BuildDate: config.BuildDate,
		GoVersion: runtime.Version(),
		Hostname:  hostname,
		Uptime:    time.Since(api.StartedAt).Round(time.Second).String(),
		HeapBytes: mem.HeapAlloc,
		Ingestion: IngestionInfo{
			DayBoundaryTimezone: cfg.Location().String(),
			UploadMaxBytes:      cfg.UploadMaxBytes,
			ArchiveMaxEntries:   cfg.ArchiveMaxEntries,
			ArchiveMaxBytes:     cfg.ArchiveMaxBytes,
			UploadsPerSecond:    cfg.UploadRateLimit,
			ArchiveUploads:      cfg.ObjectStorageEnabled(),
		},
		Storage: storageInfo(ctx, db, pool, cfg),
	}
}
