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

package middlewares

import (
	"crypto/subtle"
	"log/slog"

	"github.com/DutchRican/a11y-reports/shared"
	"github.com/labstack/echo/v4"
)

// AdminKey guards destructive routes with the shared admin secret carried raw in the Authorization header.
// An empty secret rejects every request.
func AdminKey(secret string) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			provided := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if provided == "" {
				return echo.NewHTTPError(401, "Unauthorized")
			}

			if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				slog.Warn("rejected admin request", "method", ctx.Request().Method, "path", ctx.Request().URL.Path, "ip", ctx.RealIP())
				return echo.NewHTTPError(403, "Forbidden, bad admin key")
			}

			return next(ctx)
		}
	}
}
