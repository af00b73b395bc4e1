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
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func NewReportCommand() *cobra.Command {
	report := cobra.Command{
		Use:   "report",
		Short: "Print the reports of a project",
	}
	report.PersistentFlags().String("project-id", "", "id of the project")
	report.PersistentFlags().Int("limit", 5, "number of rows")

	report.AddCommand(newReportViolationsCommand())
	report.AddCommand(newReportURLsCommand())
	return &report
}

func projectIDFlag(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("project-id")
	return uuid.Parse(raw)
}

func newReportViolationsCommand() *cobra.Command {
	violations := &cobra.Command{
		Use:   "violations",
		Short: "Most frequent violations of the latest scan of every url",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectIDFlag(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			impact, _ := cmd.Flags().GetString("impact")

			rows, err := newAPIClient(nil).TopViolations(cmd.Context(), projectID, impact, limit)
			if err != nil {
				return err
			}
			printViolations(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	violations.Flags().String("impact", "serious", "minimum impact level")
	return violations
}

func newReportURLsCommand() *cobra.Command {
	urls := &cobra.Command{
		Use:   "urls",
		Short: "Url patterns with the most violations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectIDFlag(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			days, _ := cmd.Flags().GetInt("days")
			from := time.Now().AddDate(0, 0, -days)

			rows, err := newAPIClient(nil).TopURLPatterns(cmd.Context(), projectID, limit, &from)
			if err != nil {
				return err
			}
			printURLPatterns(cmd.OutOrStdout(), rows)
			return nil
		},
	}
	urls.Flags().Int("days", 30, "only count scans of the last days")
	return urls
}
