package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of the pmsform command.
type Config struct {
	// Catalog is an optional catalog file; empty means the bundled catalog.
	Catalog  string         `yaml:"catalog" toml:"catalog"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	NATS     NATSConfig     `yaml:"nats" toml:"nats"`
	Log      LogConfig      `yaml:"log" toml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics" toml:"metrics"`
	Server   ServerConfig   `yaml:"server" toml:"server"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"`
}

type NATSConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	URL     string `yaml:"url" toml:"url"`
	Subject string `yaml:"subject" toml:"subject"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

const (
	DefaultNATSURL     = "nats://127.0.0.1:4222"
	DefaultNATSSubject = "pmsform.notifications"
	DefaultServerAddr  = ":8080"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Database: DatabaseConfig{Path: expandHome("~/.local/share/pmsform/submissions.db")},
		NATS: NATSConfig{
			URL:     DefaultNATSURL,
			Subject: DefaultNATSSubject,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Load reads path over the defaults. The decoder is picked from the file
// extension: .yaml/.yml or .toml. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	cfg.Catalog = expandHome(cfg.Catalog)
	cfg.Database.Path = expandHome(cfg.Database.Path)
	return cfg, nil
}

// Environment variables read by ApplyEnv.
const (
	EnvCatalog     = "PMSFORM_CATALOG"
	EnvDatabase    = "PMSFORM_DATABASE"
	EnvNATSEnabled = "PMSFORM_NATS_ENABLED"
	EnvNATSURL     = "PMSFORM_NATS_URL"
	EnvNATSSubject = "PMSFORM_NATS_SUBJECT"
	EnvLogLevel    = "PMSFORM_LOG_LEVEL"
	EnvLogFormat   = "PMSFORM_LOG_FORMAT"
	EnvMetricsAddr = "PMSFORM_METRICS_ADDR"
	EnvServerAddr  = "PMSFORM_SERVER_ADDR"
)

// ApplyEnv overrides fields from PMSFORM_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	str(EnvCatalog, &c.Catalog)
	str(EnvDatabase, &c.Database.Path)
	str(EnvNATSURL, &c.NATS.URL)
	str(EnvNATSSubject, &c.NATS.Subject)
	str(EnvLogLevel, &c.Log.Level)
	str(EnvLogFormat, &c.Log.Format)
	str(EnvMetricsAddr, &c.Metrics.Addr)
	str(EnvServerAddr, &c.Server.Addr)

	if v, ok := lookup(EnvNATSEnabled); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvNATSEnabled, err)
		}
		c.NATS.Enabled = enabled
	}

	c.Catalog = expandHome(c.Catalog)
	c.Database.Path = expandHome(c.Database.Path)
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("config: database.path is required"))
	}
	if c.NATS.Enabled {
		if c.NATS.URL == "" {
			errs = append(errs, errors.New("config: nats.url is required when nats is enabled"))
		}
		if c.NATS.Subject == "" {
			errs = append(errs, errors.New("config: nats.subject is required when nats is enabled"))
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to its slog level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", name)
	}
}

// NewLogger builds a slog logger writing to w in the configured format.
// Unknown levels fall back to info.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, _ := ParseLevel(c.Level)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
