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

package database

import (
	"time"

	"github.com/DutchRican/a11y-reports/shared"
)

// PoolConfig holds database connection pool configuration
type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Tracing attaches an opentelemetry tracer to every pgx connection.
	Tracing bool
}

// GetPoolConfig maps the application configuration onto the pool configuration.
// Invalid pool sizes fall back to sensible defaults.
func GetPoolConfig(cfg shared.Config) PoolConfig {
	pc := PoolConfig{
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		DBName:   cfg.PostgresDB,

		MaxOpenConns:    cfg.DBMaxOpenConns,
		MinConns:        cfg.DBMinConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,

		Tracing: cfg.OtelExporter != "",
	}

	if pc.MaxOpenConns <= 0 {
		pc.MaxOpenConns = 25
	}
	if pc.MinConns < 0 || pc.MinConns > pc.MaxOpenConns {
		pc.MinConns = 0
	}
	if pc.ConnMaxLifetime <= 0 {
		pc.ConnMaxLifetime = 4 * time.Hour
	}
	if pc.ConnMaxIdleTime <= 0 {
		pc.ConnMaxIdleTime = 15 * time.Minute
	}
	return pc
}
