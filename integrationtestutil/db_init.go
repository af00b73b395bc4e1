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

package integrationtestutil

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/DutchRican/a11y-reports/database"
	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/normalize"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func InitDatabaseContainer() (shared.DB, func()) {
	ctx := context.Background()

	dbName := "a11y_reports"
	dbUser := "user"
	dbPassword := "password"

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)

	if err != nil {
		slog.Info("failed to start postgres container", "error", err)
		panic(err)
	}

	host, _ := postgresC.Host(ctx)
	port, _ := postgresC.MappedPort(ctx, "5432")

	db, pool, err := database.NewConnection(database.PoolConfig{
		User:            dbUser,
		Password:        dbPassword,
		Host:            host,
		Port:            port.Port(),
		DBName:          dbName,
		MaxOpenConns:    10,
		MinConns:        1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute,
	})
	if err != nil {
		log.Printf("failed to connect to database: %s", err)
		panic(err)
	}

	terminate := func() {
		pool.Close()
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}

	// the schema of the tests is the schema of the embedded migrations
	if err := database.RunMigrationsWithDB(db); err != nil {
		log.Printf("failed to run migrations: %s", err)
		panic(err)
	}

	return db, terminate
}

func CreateProject(db shared.DB, name string) models.Project {
	project := models.Project{
		Name:     name,
		Slug:     slug.Make(name),
		IsActive: true,
	}
	if err := db.Create(&project).Error; err != nil {
		panic(err)
	}
	return project
}

// NewScanResult builds a persisted-ready scan for the given day in UTC.
func NewScanResult(projectID uuid.UUID, testName, url string, created time.Time, violations ...models.Violation) models.ScanResult {
	scan := normalize.NormalizeScanResult(normalize.RawScanResult{
		TestName:   testName,
		URL:        url,
		Created:    normalize.FlexibleTime{Time: created},
		Violations: violations,
	}, created, time.UTC)
	scan.ProjectID = projectID
	scan.ScanDay = normalize.ScanDay(created, time.UTC)
	return scan
}
