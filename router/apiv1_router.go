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
	"github.com/DutchRican/a11y-reports/cmd/a11y-reports/api"
	"github.com/DutchRican/a11y-reports/middlewares"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIRouter struct {
	*echo.Group
}

func NewAPIRouter(srv api.Server, db shared.DB, pool *pgxpool.Pool, cfg shared.Config) APIRouter {
	apiRouter := srv.Echo.Group("/api")

	apiRouter.GET("/info/", func(c echo.Context) error {
		return c.JSON(200, buildInfo(c.Request().Context(), db, pool, cfg))
	})

	apiRouter.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))
	apiRouter.GET("/health/", func(ctx echo.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return ctx.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  "failed to get database instance",
			})
		}

		if err := sqlDB.PingContext(ctx.Request().Context()); err != nil {
			return ctx.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  "database ping failed",
			})
		}

		return ctx.JSON(200, map[string]string{
			"status": "healthy",
		})
	})

	if cfg.Environment == "dev" {
		middlewares.AddProfileEndpoints(srv.Echo, middlewares.AdminKey(cfg.AdminKey))
	}

	return APIRouter{Group: apiRouter}
}
