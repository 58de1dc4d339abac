package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Database   DatabaseConfig
	Blob       BlobConfig
	Validation ValidationConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

// DatabaseConfig selects the relational engine. Driver is "sqlite3"
// (embedded, default) or "postgres".
type DatabaseConfig struct {
	Driver string
	DSN    string
}

type BlobConfig struct {
	Root           string
	UploadMaxBytes int64
}

// ValidationConfig names the property-name policy per endpoint family. The
// lookup policy must accept every name the column policy does, so in practice
// both are set to the same profile.
type ValidationConfig struct {
	ColumnPolicy string
	LookupPolicy string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("DATABASE_DRIVER", "sqlite3")
	v.SetDefault("DATABASE_DSN", "data/tracker.db")
	v.SetDefault("BLOB_ROOT", "data/screenshots")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("VALIDATION_COLUMN_POLICY", "compact")
	v.SetDefault("VALIDATION_LOOKUP_POLICY", "compact")

	// Env
	v.AutomaticEnv()

	shutdown, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdown = 10 * time.Second
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: shutdown,
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("DATABASE_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Blob: BlobConfig{
			Root:           v.GetString("BLOB_ROOT"),
			UploadMaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Validation: ValidationConfig{
			ColumnPolicy: v.GetString("VALIDATION_COLUMN_POLICY"),
			LookupPolicy: v.GetString("VALIDATION_LOOKUP_POLICY"),
		},
	}

	return cfg, nil
}
