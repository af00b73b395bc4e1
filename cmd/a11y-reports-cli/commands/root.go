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
	"strings"

	"github.com/DutchRican/a11y-reports/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "a11y-reports-cli",
	Short: "Management cli",
	Long:  `The a11y-reports cli manages the database of an a11y-reports installation and talks to its api.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "http://localhost:3001/api", "root of the a11y-reports api")
	rootCmd.PersistentFlags().String("admin-key", "", "admin key for restore and delete, falls back to A11Y_ADMIN_KEY")
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func initializeConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix("A11Y")
	// --api-url is read from A11Y_API_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)
	return nil
}

// bindFlags lets the environment fill every flag which was not set explicitly.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) {
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", viper.Get(f.Name))) // nolint: errcheck
		}

		if err := viper.BindPFlag(f.Name, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}

func newAPIClient(session *client.AdminSession) client.Client {
	return client.NewClient(viper.GetString("api-url"), session)
}

// newAdminSession opens a short lived admin session with the configured key.
func newAdminSession() (*client.AdminSession, error) {
	key := viper.GetString("admin-key")
	if key == "" {
		return nil, fmt.Errorf("no admin key provided, use --admin-key or A11Y_ADMIN_KEY")
	}
	session := client.NewAdminSession()
	session.Enable(key, client.DefaultAdminSessionTTL)
	return session, nil
}
