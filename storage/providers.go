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

package storage

import (
	"context"
	"log/slog"

	"github.com/DutchRican/a11y-reports/shared"
	"go.uber.org/fx"
)

// NewUploadArchiver falls back to the noop archiver if object storage is not configured or not reachable.
func NewUploadArchiver(cfg shared.Config) shared.UploadArchiver {
	if !cfg.ObjectStorageEnabled() {
		slog.Info("object storage not configured, raw uploads are not archived")
		return NewNoopArchiver()
	}

	archiver, err := NewMinioArchiver(context.Background(), cfg)
	if err != nil {
		slog.Error("could not initialize object storage, raw uploads are not archived", "err", err)
		return NewNoopArchiver()
	}
	return archiver
}

var Module = fx.Options(
	fx.Provide(NewUploadArchiver),
)
