// Package config loads jmeta's configuration from ./config.toml, an
// optional user-config file, and JMETA_* environment overrides, per
// spec §6. TOML decoding uses pelletier/go-toml/v2, grounded on its use
// for the same purpose in the wider retrieval pack (google/oss-rebuild).
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmeta/jmeta"
)

// Database holds the database.* options of spec §6.
type Database struct {
	URL      string `toml:"url"`
	PoolSize int    `toml:"pool_size"`
	SSLMode  string `toml:"ssl_mode"`
	SSLCA    string `toml:"ssl_ca"`
	SSLCert  string `toml:"ssl_cert"`
	SSLKey   string `toml:"ssl_key"`
}

// Export holds the export.* options of spec §6.
type Export struct {
	Path string `toml:"path"`
}

// Config is the full, resolved configuration.
type Config struct {
	Export   Export   `toml:"export"`
	Database Database `toml:"database"`
}

// defaults returns the configuration baseline before any file or
// environment overlay is applied.
func defaults() Config {
	return Config{
		Export:   Export{Path: "./export"},
		Database: Database{PoolSize: 10, SSLMode: "prefer"},
	}
}

// paths tried, in order, for TOML configuration. Both are optional;
// values present in the user-config path win over ./config.toml, which
// in turn is overridden by JMETA_* environment variables.
func searchPaths(userConfigPath string) []string {
	paths := []string{"./config.toml"}
	if userConfigPath != "" {
		paths = append(paths, userConfigPath)
	}
	return paths
}

// Load builds a Config from defaults, any TOML file found in
// searchPaths(userConfigPath), and JMETA_* environment overrides, in
// that precedence order (environment always wins).
func Load(userConfigPath string) (Config, error) {
	cfg := defaults()
	for _, p := range searchPaths(userConfigPath) {
		b, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, &jmeta.Error{Kind: jmeta.ErrIo, Op: "config.Load", Message: p, Inner: err}
		}
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, &jmeta.Error{Kind: jmeta.ErrDecode, Op: "config.Load", Message: p, Inner: err}
		}
	}
	applyEnv(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overlayString("JMETA_EXPORT_PATH", &cfg.Export.Path)
	overlayString("JMETA_DATABASE_URL", &cfg.Database.URL)
	overlayInt("JMETA_DATABASE_POOL_SIZE", &cfg.Database.PoolSize)
	overlayString("JMETA_DATABASE_SSL_MODE", &cfg.Database.SSLMode)
	overlayString("JMETA_DATABASE_SSL_CA", &cfg.Database.SSLCA)
	overlayString("JMETA_DATABASE_SSL_CERT", &cfg.Database.SSLCert)
	overlayString("JMETA_DATABASE_SSL_KEY", &cfg.Database.SSLKey)
}

func overlayString(env string, dst *string) {
	if v, ok := os.LookupEnv(env); ok {
		*dst = v
	}
}

func overlayInt(env string, dst *int) {
	v, ok := os.LookupEnv(env)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return // ignore malformed override, keep prior value
	}
	*dst = n
}

func validate(cfg Config) error {
	if cfg.Database.URL == "" {
		return &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "config.validate", Message: "database.url is required"}
	}
	switch {
	case strings.HasPrefix(cfg.Database.URL, "postgres://"), strings.HasPrefix(cfg.Database.URL, "sqlite://"):
	default:
		return &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "config.validate", Message: "database.url must begin with postgres:// or sqlite://"}
	}
	switch cfg.Database.SSLMode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "config.validate", Message: "database.ssl_mode invalid: " + cfg.Database.SSLMode}
	}
	if cfg.Database.SSLMode == "verify-ca" || cfg.Database.SSLMode == "verify-full" {
		if cfg.Database.SSLCA == "" {
			return &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "config.validate", Message: "database.ssl_ca is required for " + cfg.Database.SSLMode}
		}
	}
	return nil
}
