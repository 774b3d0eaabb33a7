// Package config loads habitual's optional TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/utils"
)

// Config is the on-disk configuration. Every field is optional; missing
// values keep their defaults.
type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string
	Database string `toml:"database" validate:"required"`
	Timezone string `toml:"timezone" validate:"tzname"`
	// MonthEnd selects how monthly habits behave in short months
	MonthEnd constants.MonthEndPolicy `toml:"month_end" validate:"oneof=clamp skip"`
	Debug    bool                     `toml:"debug"`
	LogLevel string                   `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Server   ServerConfig             `toml:"server"`
}

// ServerConfig configures the `serve` command
type ServerConfig struct {
	Addr    string `toml:"addr" validate:"required,hostname_port"`
	Metrics bool   `toml:"metrics"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Database: constants.DefaultConfigPath,
		Timezone: constants.DefaultTimezone,
		MonthEnd: constants.MonthEndClamp,
		Server: ServerConfig{
			Addr:    constants.DefaultServerAddr,
			Metrics: true,
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("tzname", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimezone(fl.Field().String())
	})
	return v
}

// Load reads the config file at path on top of the defaults. A missing
// file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	path, err := ExpandPath(path)
	if err != nil {
		return cfg, err
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q check (value %q)", fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Write saves the configuration to path, creating parent directories.
func Write(path string, cfg Config) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsPostgres reports whether the database setting is a PostgreSQL connection string
func (c Config) IsPostgres() bool {
	return IsPostgresDSN(c.Database)
}

// IsPostgresDSN reports whether dsn is a PostgreSQL URL
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
