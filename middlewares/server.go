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
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DutchRican/a11y-reports/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// errorBody wraps plain messages into {"message": ...}. Structured messages are sent as they are.
func errorBody(message any, err error, debug bool) any {
	switch m := message.(type) {
	case string:
		if debug {
			return echo.Map{"message": m, "error": err.Error()}
		}
		return echo.Map{"message": m}
	case json.Marshaler, echo.Map, map[string]any:
		return m
	case error:
		return echo.Map{"message": m.Error()}
	}
	return message
}

func httpErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		// the single place a request error gets logged
		slog.Error(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)

		if ctx.Response().Committed {
			return
		}

		he, ok := err.(*echo.HTTPError)
		if !ok {
			he = &echo.HTTPError{
				Code:    http.StatusInternalServerError,
				Message: http.StatusText(http.StatusInternalServerError),
			}
		}

		if ctx.Request().Method == http.MethodHead {
			if err := ctx.NoContent(he.Code); err != nil {
				slog.Error("could not send error response", "error", err)
			}
			return
		}

		// internal causes never leave the server outside of debug mode
		debug := e.Debug && he.Internal != nil
		cause := err
		if he.Internal != nil {
			cause = he.Internal
		}
		if err := ctx.JSON(he.Code, errorBody(he.Message, cause, debug)); err != nil {
			slog.Error("could not send error response", "error", err)
		}
	}
}

func registerMiddlewares(e *echo.Echo, cfg shared.Config) {
	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.CORSWithConfig(
		middleware.CORSConfig{
			AllowOrigins:     cfg.CorsAllowOrigins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowMethods:     middleware.DefaultCORSConfig.AllowMethods,
			AllowCredentials: true,
		},
	))

	if cfg.OtelExporter != "" {
		e.Use(otelecho.Middleware("a11y-reports"))
	}

	e.Use(logger())
	e.Use(recovermiddleware())

	if cfg.UploadMaxBytes > 0 {
		e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.UploadMaxBytes, 10)))
	}

	e.HTTPErrorHandler = httpErrorHandler(e)
}

func Server(cfg shared.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Environment == "dev"
	e.Logger.SetLevel(99)
	registerMiddlewares(e, cfg)
	return e
}
