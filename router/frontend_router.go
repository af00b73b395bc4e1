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
	"log/slog"
	"strings"

	"github.com/DutchRican/a11y-reports/cmd/a11y-reports/api"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type FrontendRouter struct {
	Enabled bool
}

// NewFrontendRouter serves the dashboard build with an index.html fallback for client side routes.
func NewFrontendRouter(srv api.Server, cfg shared.Config) FrontendRouter {
	if cfg.FrontendDir == "" {
		return FrontendRouter{}
	}

	slog.Info("serving frontend", "dir", cfg.FrontendDir)
	srv.Echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  cfg.FrontendDir,
		HTML5: true,
		Skipper: func(ctx echo.Context) bool {
			p := ctx.Request().URL.Path
			return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/debug/")
		},
	}))
	return FrontendRouter{Enabled: true}
}
