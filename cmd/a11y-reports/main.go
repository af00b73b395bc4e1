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

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"

	"github.com/DutchRican/a11y-reports/cmd/a11y-reports/api"
	"github.com/DutchRican/a11y-reports/config"
	"github.com/DutchRican/a11y-reports/controllers"
	"github.com/DutchRican/a11y-reports/database"
	"github.com/DutchRican/a11y-reports/database/repositories"
	"github.com/DutchRican/a11y-reports/monitoring"
	"github.com/DutchRican/a11y-reports/router"
	"github.com/DutchRican/a11y-reports/services"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/DutchRican/a11y-reports/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func main() {
	configFile := flag.String("config", "", "path to a config file, defaults to ./config.yaml if present")
	flag.Parse()

	shared.LoadConfig() // nolint: errcheck
	cfg, err := shared.ReadConfig(*configFile)
	if err != nil {
		panic(err)
	}
	shared.InitLogger(cfg.LogLevel)

	if cfg.ErrorTrackingDSN != "" {
		monitoring.InitSentry(cfg.ErrorTrackingDSN, cfg.Environment, config.Version)
		defer func() {
			if err := recover(); err != nil {
				monitoring.RecoverAndAlert("unrecovered panic", err)
				monitoring.FlushSentry()
			}
		}()
	}

	shutdownTracing, err := monitoring.InitTracing(context.Background(), cfg.OtelExporter)
	if err != nil {
		slog.Error("could not initialize tracing", "err", err)
		panic(err)
	}

	db, pool, err := database.NewConnection(database.GetPoolConfig(cfg))
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("Failed to setup database connection"))
	}

	if !cfg.DisableAutoMigrate {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("Failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(cfg),
		fx.Supply(db),
		fx.Supply(pool),
		fx.Provide(api.NewServer),
		repositories.Module,
		services.Module,
		storage.Module,
		controllers.ControllerModule,
		router.RouterModule,

		// registered first so it stops last, after the server is drained
		fx.Invoke(func(lc fx.Lifecycle, pool *pgxpool.Pool) {
			lc.Append(fx.StopHook(func(ctx context.Context) error {
				pool.Close()
				return shutdownTracing(ctx)
			}))
		}),

		// we need to invoke all routers to register their routes
		fx.Invoke(func(router.ProjectRouter) {}),
		fx.Invoke(func(router.ScanResultRouter) {}),
		fx.Invoke(func(router.ReportRouter) {}),
		fx.Invoke(func(router.FrontendRouter) {}),
	).Run()
}
