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
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/DutchRican/a11y-reports/client"
	"github.com/DutchRican/a11y-reports/dtos"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const importBatchSize = 25

var archiveSuffixes = []string{".zip", ".tar", ".tgz", ".tar.gz", ".txz", ".tar.xz"}

func isArchive(name string) bool {
	name = strings.ToLower(name)
	return slices.ContainsFunc(archiveSuffixes, func(suffix string) bool {
		return strings.HasSuffix(name, suffix)
	})
}

// collectJSONFiles returns every .json file below dir in lexical order.
func collectJSONFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

func readFile(path string) (client.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return client.File{}, errors.Wrapf(err, "could not read %s", path)
	}
	return client.File{Name: filepath.Base(path), Data: bytes.NewReader(data)}, nil
}

func mergeUploadResponses(total *dtos.UploadResponse, res dtos.UploadResponse) {
	total.Count += res.Count
	total.Errors = append(total.Errors, res.Errors...)
}

func NewImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import <dir|archive|file.json>",
		Short: "Upload scan results to a project",
		Long:  `Uploads a single json file, a zip or tar archive, or every json file below a directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectIDFlag(cmd)
			if err != nil {
				return errors.Wrap(err, "invalid --project-id")
			}
			c := newAPIClient(nil)
			ctx := cmd.Context()
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			if !info.IsDir() {
				file, err := readFile(path)
				if err != nil {
					return err
				}
				var res dtos.UploadResponse
				if isArchive(path) {
					res, err = c.UploadArchive(ctx, projectID, file)
				} else {
					res, err = c.UploadFile(ctx, projectID, file)
				}
				if err != nil {
					return err
				}
				printUploadResult(cmd.OutOrStdout(), res)
				return nil
			}

			paths, err := collectJSONFiles(path)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.Errorf("no json files found in %s", path)
			}

			bar := progressbar.Default(int64(len(paths)), "uploading")
			total := dtos.UploadResponse{Errors: []dtos.UploadRecordError{}}
			for batch := range slices.Chunk(paths, importBatchSize) {
				files := make([]client.File, 0, len(batch))
				for _, p := range batch {
					file, err := readFile(p)
					if err != nil {
						return err
					}
					files = append(files, file)
				}

				res, err := c.UploadFiles(ctx, projectID, files)
				if err != nil {
					return err
				}
				mergeUploadResponses(&total, res)
				bar.Add(len(batch)) // nolint: errcheck
			}
			bar.Finish() // nolint: errcheck

			total.Message = dtos.UploadMessage(total.Count)
			printUploadResult(cmd.OutOrStdout(), total)
			return nil
		},
	}
	importCmd.Flags().String("project-id", "", "id of the project")
	return importCmd
}
