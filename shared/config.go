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

package shared

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-viper/mapstructure/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the api server.
// Every key can be set through the environment variable with the upper cased key name.
type Config struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`

	AdminKey string `mapstructure:"admin_key"`

	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     string `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"`
	PostgresDB       string `mapstructure:"postgres_db"`

	DBMaxOpenConns    int32         `mapstructure:"db_max_open_conns"`
	DBMinConns        int32         `mapstructure:"db_min_conns"`
	DBConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	DBConnMaxIdleTime time.Duration `mapstructure:"db_conn_max_idle_time"`

	DisableAutoMigrate bool `mapstructure:"disable_automigrate"`

	// DayBoundaryTimezone is the IANA zone used to decide which calendar day a scan belongs to.
	DayBoundaryTimezone string `mapstructure:"day_boundary_timezone"`

	UploadMaxBytes    int64   `mapstructure:"upload_max_bytes"`
	ArchiveMaxEntries int     `mapstructure:"archive_max_entries"`
	ArchiveMaxBytes   int64   `mapstructure:"archive_max_bytes"`
	UploadRateLimit   float64 `mapstructure:"upload_rate_limit"`

	FrontendDir      string   `mapstructure:"frontend_dir"`
	CorsAllowOrigins []string `mapstructure:"cors_allow_origins"`

	ErrorTrackingDSN string `mapstructure:"error_tracking_dsn"`
	OtelExporter     string `mapstructure:"otel_exporter"`

	S3Endpoint    string `mapstructure:"s3_endpoint"`
	S3AccessKey   string `mapstructure:"s3_access_key"`
	S3SecretKey   string `mapstructure:"s3_secret_key"`
	S3UseSSL      bool   `mapstructure:"s3_use_ssl"`
	UploadsBucket string `mapstructure:"uploads_bucket"`

	location *time.Location
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("port", "3001")
	v.SetDefault("environment", "dev")
	v.SetDefault("log_level", "debug")
	v.SetDefault("admin_key", "")

	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", "5432")
	v.SetDefault("postgres_user", "a11y")
	v.SetDefault("postgres_password", "a11y")
	v.SetDefault("postgres_db", "a11y_reports")

	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_min_conns", 5)
	v.SetDefault("db_conn_max_lifetime", "4h")
	v.SetDefault("db_conn_max_idle_time", "15m")

	v.SetDefault("disable_automigrate", false)
	v.SetDefault("day_boundary_timezone", "Local")

	v.SetDefault("upload_max_bytes", 50<<20)
	v.SetDefault("archive_max_entries", 1000)
	v.SetDefault("archive_max_bytes", 200<<20)
	v.SetDefault("upload_rate_limit", 5)

	v.SetDefault("frontend_dir", "")
	v.SetDefault("cors_allow_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	v.SetDefault("error_tracking_dsn", "")
	v.SetDefault("otel_exporter", "")

	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_access_key", "")
	v.SetDefault("s3_secret_key", "")
	v.SetDefault("s3_use_ssl", false)
	v.SetDefault("uploads_bucket", "a11y-uploads")
}

// ReadConfig builds the configuration from defaults, an optional config.yaml and the environment.
// The environment always wins.
func ReadConfig(configFile string) (Config, error) {
	v := viper.New()
	setConfigDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, pkgerrors.Wrap(err, "could not read config file")
		}
	} else {
		slog.Info("using config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, pkgerrors.Wrap(err, "could not decode config")
	}

	loc, err := loadLocation(cfg.DayBoundaryTimezone)
	if err != nil {
		return Config{}, pkgerrors.Wrapf(err, "invalid day_boundary_timezone %q", cfg.DayBoundaryTimezone)
	}
	cfg.location = loc

	if cfg.AdminKey == "" {
		slog.Warn("ADMIN_KEY is not set, every admin request will be rejected")
	}

	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// Location returns the time zone which defines calendar day boundaries for scan deduplication.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// WithLocation returns a copy of the config using the provided day boundary zone.
func (c Config) WithLocation(loc *time.Location) Config {
	c.location = loc
	c.DayBoundaryTimezone = loc.String()
	return c
}

func (c Config) ObjectStorageEnabled() bool {
	return c.S3Endpoint != "" && c.UploadsBucket != ""
}
