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
	"errors"
	"fmt"

	"github.com/DutchRican/a11y-reports/shared"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProjectQuery resolves the projectId query parameter and stores the project in the context.
func ProjectQuery(projectService shared.ProjectService) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			raw := ctx.QueryParam("projectId")
			if raw == "" {
				return echo.NewHTTPError(400, "Project ID is required")
			}

			projectID, err := uuid.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(400, "Invalid Project ID format").WithInternal(err)
			}

			project, err := projectService.Read(projectID)
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) && he.Code == 404 {
					return echo.NewHTTPError(404, fmt.Sprintf("Project not found for ID %s", projectID)).WithInternal(err)
				}
				return err
			}

			shared.SetProject(ctx, project)
			return next(ctx)
		}
	}
}
