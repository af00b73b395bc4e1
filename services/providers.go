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

package services

import (
	"github.com/DutchRican/a11y-reports/shared"
	"go.uber.org/fx"
)

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewProjectService, fx.As(new(shared.ProjectService)))),
	fx.Provide(fx.Annotate(NewScanResultService, fx.As(new(shared.ScanResultService)))),
	fx.Provide(fx.Annotate(NewIngestionService, fx.As(new(shared.IngestionService)))),
	fx.Provide(fx.Annotate(NewReportService, fx.As(new(shared.ReportService)))),
)
