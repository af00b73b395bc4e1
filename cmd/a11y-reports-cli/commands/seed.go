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

package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/DutchRican/a11y-reports/database/repositories"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/DutchRican/a11y-reports/services"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/DutchRican/a11y-reports/storage"
	"github.com/DutchRican/a11y-reports/utils"
	"github.com/spf13/cobra"
)

// findOrCreateProject reuses an archived project of the same name instead of failing on the unique name.
func findOrCreateProject(projectService shared.ProjectService, name string) (models.Project, error) {
	projects, err := projectService.List(true)
	if err != nil {
		return models.Project{}, err
	}
	if project, ok := utils.Find(projects, func(p models.Project) bool { return p.Name == name }); ok {
		return project, nil
	}
	return projectService.Create(dtos.ProjectCreateRequest{Name: name})
}

func NewSeedCommand() *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed <file.json>...",
		Short: "Write scan results directly into the database",
		Long:  `Creates the project if it does not exist and ingests the given json files without going through the api.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectName, _ := cmd.Flags().GetString("project")

			sources := make([]shared.IngestionSource, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				sources = append(sources, shared.IngestionSource{Name: filepath.Base(path), Data: data})
			}

			cfg, db, pool, err := openDatabase()
			if err != nil {
				return err
			}
			defer pool.Close()

			scanResultRepository := repositories.NewScanResultRepository(db)
			projectService := services.NewProjectService(repositories.NewProjectRepository(db), scanResultRepository)
			ingestionService := services.NewIngestionService(scanResultRepository, storage.NewNoopArchiver(), cfg)

			project, err := findOrCreateProject(projectService, projectName)
			if err != nil {
				return err
			}

			res, err := ingestionService.Ingest(cmd.Context(), project.ID, services.ModeUploadMultiple, sources)
			if err != nil {
				return err
			}
			slog.Info("seeded project", "project", project.Name, "id", project.ID, "count", res.Count, "rejected", len(res.Errors))

			printUploadResult(cmd.OutOrStdout(), dtos.UploadResponse{
				Message: dtos.UploadMessage(res.Count),
				Count:   res.Count,
				Errors:  res.Errors,
			})
			return nil
		},
	}
	seed.Flags().String("project", "Demo", "name of the project to seed")
	return seed
}
