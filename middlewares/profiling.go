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
	"log/slog"
	"net/http"
	"net/http/pprof"

	"github.com/labstack/echo/v4"
)

// AddProfileEndpoints mounts the pprof handlers under /debug/pprof behind the given guard.
func AddProfileEndpoints(e *echo.Echo, guard echo.MiddlewareFunc) {
	slog.Warn("adding profile debug endpoints")
	g := e.Group("/debug/pprof", guard)

	g.GET("/", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	for _, name := range []string{"heap", "goroutine", "block", "threadcreate", "allocs", "mutex"} {
		g.GET("/"+name+"/", echo.WrapHandler(pprof.Handler(name)))
	}
	g.GET("/cmdline/", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	g.GET("/profile/", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	g.GET("/symbol/", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	g.POST("/symbol/", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	g.GET("/trace/", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))
}
