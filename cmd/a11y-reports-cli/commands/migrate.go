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
	"fmt"
	"log/slog"

	"github.com/DutchRican/a11y-reports/database"
	"github.com/DutchRican/a11y-reports/shared"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func openDatabase() (shared.Config, shared.DB, *pgxpool.Pool, error) {
	cfg, err := shared.ReadConfig("")
	if err != nil {
		return cfg, nil, nil, err
	}
	db, pool, err := database.NewConnection(database.GetPoolConfig(cfg))
	return cfg, db, pool, err
}

func NewMigrateCommand() *cobra.Command {
	migrate := cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(newMigrateUpCommand())
	migrate.AddCommand(newMigrateDownCommand())
	migrate.AddCommand(newMigrateVersionCommand())
	return &migrate
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, pool, err := openDatabase()
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.RunMigrationsWithDB(db); err != nil {
				return err
			}
			slog.Info("database is up to date")
			return nil
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")

			_, db, pool, err := openDatabase()
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.RollbackMigrationsWithDB(db, steps); err != nil {
				return err
			}
			slog.Info("rolled back migrations", "steps", steps)
			return nil
		},
	}
	down.Flags().Int("steps", 1, "number of migrations to roll back")
	return down
}

func newMigrateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, pool, err := openDatabase()
			if err != nil {
				return err
			}
			defer pool.Close()

			version, dirty, err := database.GetMigrationVersionWithDB(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}
}
