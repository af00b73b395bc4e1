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

	"github.com/DutchRican/a11y-reports/client"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func NewProjectsCommand() *cobra.Command {
	projects := cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	projects.AddCommand(newProjectsListCommand())
	projects.AddCommand(newProjectsShowCommand())
	projects.AddCommand(newProjectsCreateCommand())
	projects.AddCommand(newProjectsUpdateCommand())
	projects.AddCommand(newProjectsArchiveCommand())
	projects.AddCommand(newProjectsRestoreCommand())
	projects.AddCommand(newProjectsDeleteCommand())
	return &projects
}

func newProjectsListCommand() *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archived, _ := cmd.Flags().GetBool("archived")
			projects, err := newAPIClient(nil).ListProjects(cmd.Context(), archived)
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}
	list.Flags().Bool("archived", false, "include archived projects")
	return list
}

func newProjectsCreateCommand() *cobra.Command {
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			pageURL, _ := cmd.Flags().GetString("page-url")

			project, err := newAPIClient(nil).CreateProject(cmd.Context(), dtos.ProjectCreateRequest{
				Name:        args[0],
				Description: description,
				PageURL:     pageURL,
			})
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), []dtos.ProjectDTO{project})
			return nil
		},
	}
	create.Flags().String("description", "", "description of the project")
	create.Flags().String("page-url", "", "url of the scanned site")
	return create
}

func newProjectsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			project, err := newAPIClient(nil).ReadProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), []dtos.ProjectDTO{project})
			return nil
		},
	}
}

// projectUpdateRequest only sends the optional fields which were passed on the command line.
func projectUpdateRequest(cmd *cobra.Command, current dtos.ProjectDTO) dtos.ProjectUpdateRequest {
	req := dtos.ProjectUpdateRequest{Name: current.Name}
	if cmd.Flags().Changed("name") {
		req.Name, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}
	if cmd.Flags().Changed("page-url") {
		pageURL, _ := cmd.Flags().GetString("page-url")
		req.PageURL = &pageURL
	}
	return req
}

func newProjectsUpdateCommand() *cobra.Command {
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a project or change its description and page url",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			c := newAPIClient(nil)
			current, err := c.ReadProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			project, err := c.UpdateProject(cmd.Context(), id, projectUpdateRequest(cmd, current))
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), []dtos.ProjectDTO{project})
			return nil
		},
	}
	update.Flags().String("name", "", "new name of the project")
	update.Flags().String("description", "", "new description")
	update.Flags().String("page-url", "", "new page url")
	return update
}

func newProjectsArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			project, err := newAPIClient(nil).ArchiveProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), []dtos.ProjectDTO{project})
			return nil
		},
	}
}

// withAdminSession runs fn with a client whose admin key expires shortly after the command.
func withAdminSession(fn func(c client.Client) error) error {
	session, err := newAdminSession()
	if err != nil {
		return err
	}
	defer session.Disable()
	return fn(newAPIClient(session))
}

func newProjectsRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore an archived project, requires the admin key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			return withAdminSession(func(c client.Client) error {
				project, err := c.RestoreProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				printProjects(cmd.OutOrStdout(), []dtos.ProjectDTO{project})
				return nil
			})
		},
	}
}

func newProjectsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and all of its scan results, requires the admin key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			return withAdminSession(func(c client.Client) error {
				res, err := c.HardDeleteProject(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				printProjects(cmd.OutOrStdout(), []dtos.ProjectDTO{res.Project})
				return nil
			})
		},
	}
}
