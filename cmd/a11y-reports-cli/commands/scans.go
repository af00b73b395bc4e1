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
	"time"

	"github.com/DutchRican/a11y-reports/client"
	"github.com/DutchRican/a11y-reports/normalize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func NewScansCommand() *cobra.Command {
	scans := cobra.Command{
		Use:   "scans",
		Short: "Inspect the scan results of a project",
	}

	scans.AddCommand(newScansListCommand())
	scans.AddCommand(newScansShowCommand())
	scans.AddCommand(newScansDeleteCommand())
	return &scans
}

func parseOptionalTime(cmd *cobra.Command, name string) (*time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	t, err := normalize.ParseFlexibleTime(raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &t, nil
}

func newScansListCommand() *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List scan results, by date range, by year or page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectIDFlag(cmd)
			if err != nil {
				return fmt.Errorf("invalid --project-id: %w", err)
			}
			year, _ := cmd.Flags().GetInt("year")
			page, _ := cmd.Flags().GetInt("page")
			limit, _ := cmd.Flags().GetInt("limit")

			c := newAPIClient(nil)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			switch {
			case year > 0:
				scans, err := c.ListScanResultsByYear(ctx, projectID, year)
				if err != nil {
					return err
				}
				printScanResults(out, scans)
			case page > 0:
				res, err := c.ListScanResultsPage(ctx, projectID, page, limit)
				if err != nil {
					return err
				}
				printScanResults(out, res.Data)
				fmt.Fprintf(out, "page %d, %d of %d scan results\n", res.Page, len(res.Data), res.Total)
			default:
				from, err := parseOptionalTime(cmd, "from")
				if err != nil {
					return err
				}
				to, err := parseOptionalTime(cmd, "to")
				if err != nil {
					return err
				}
				scans, err := c.ListScanResults(ctx, projectID, from, to)
				if err != nil {
					return err
				}
				printScanResults(out, scans)
			}
			return nil
		},
	}
	list.Flags().String("project-id", "", "id of the project")
	list.Flags().String("from", "", "only scans created at or after this date")
	list.Flags().String("to", "", "only scans created before this date")
	list.Flags().Int("year", 0, "only scans of this calendar year")
	list.Flags().Int("page", 0, "page to fetch, starting at 1")
	list.Flags().Int("limit", 10, "page size")
	return list
}

func newScansShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a scan result with its violations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			scan, err := newAPIClient(nil).ReadScanResult(cmd.Context(), id)
			if err != nil {
				return err
			}
			printScanResultDetails(cmd.OutOrStdout(), scan)
			return nil
		},
	}
}

func newScansDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a scan result, requires the admin key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			return withAdminSession(func(c client.Client) error {
				if err := c.DeleteScanResult(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Scan result deleted successfully")
				return nil
			})
		},
	}
}
