package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override: COURSEREC_CATALOG_PATH
// sets catalog.path.
const EnvPrefix = "COURSEREC_"

// PathEnvVar points at an optional YAML config file.
const PathEnvVar = "COURSEREC_CONFIG"

// DefaultPaths are searched in order when PathEnvVar is unset.
var DefaultPaths = []string{"courserec.yaml", "courserec.yml"}

type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Batch     BatchConfig     `koanf:"batch"`

	// Udemy
	Udemy UdemyConfig `koanf:"udemy"`

	// SFTP
	SFTP SFTPConfig `koanf:"sftp"`
}

// CatalogConfig selects where courses are loaded from.
type CatalogConfig struct {
	Source  string        `koanf:"source"` // "file", "http", "sqlite", "udemy"
	Path    string        `koanf:"path"`   // CSV path for "file"
	URL     string        `koanf:"url"`    // CSV URL for "http"
	DBPath  string        `koanf:"db_path"`
	Timeout time.Duration `koanf:"timeout"`
}

type RecommendConfig struct {
	TopN           int `koanf:"top_n"`
	CandidateWidth int `koanf:"candidate_width"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimit       int           `koanf:"rate_limit"` // requests per RateWindow per IP, 0 disables
	RateWindow      time.Duration `koanf:"rate_window"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
}

type BatchConfig struct {
	Workers  int  `koanf:"workers"`
	Compress bool `koanf:"compress"`
}

type UdemyConfig struct {
	BaseURL      string `koanf:"base_url"`
	OrgID        string `koanf:"org_id"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	PageSize     int    `koanf:"page_size"`
	MaxPages     int    `koanf:"max_pages"`
}

type SFTPConfig struct {
	Host                  string `koanf:"host"`
	Port                  int    `koanf:"port"`
	User                  string `koanf:"user"`
	Pass                  string `koanf:"pass"`
	Dir                   string `koanf:"dir"`
	KnownHosts            string `koanf:"known_hosts"`
	InsecureIgnoreHostKey bool   `koanf:"insecure_ignore_host_key"`
}

// Default returns the configuration used before any file or env override.
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			Source:  "file",
			Path:    "courses.csv",
			DBPath:  "courserec.db",
			Timeout: 2 * time.Minute,
		},
		Recommend: RecommendConfig{
			TopN:           5,
			CandidateWidth: 0,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			RateLimit:       120,
			RateWindow:      time.Minute,
			ShutdownTimeout: 15 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Batch: BatchConfig{
			Workers: 10,
		},
		Udemy: UdemyConfig{
			BaseURL:  "https://www.udemy.com/api-2.0",
			PageSize: 100,
			MaxPages: 1,
		},
		SFTP: SFTPConfig{
			Port: 22,
			Dir:  "/",
		},
	}
}

// Load layers defaults, the optional YAML file and COURSEREC_* env vars.
func Load() (Config, error) {
	return LoadFile(findFile())
}

// LoadFile is Load with an explicit config file; an empty path skips the file.
func LoadFile(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	// env values arrive as "a,b"
	if v, ok := k.Get("server.cors_origins").(string); ok {
		if err := k.Set("server.cors_origins", splitCSV(v)); err != nil {
			return Config{}, fmt.Errorf("config: cors origins: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Catalog.Source {
	case "file":
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("catalog.path is required for the file source"))
		}
	case "http":
		if c.Catalog.URL == "" {
			errs = append(errs, errors.New("catalog.url is required for the http source"))
		}
	case "sqlite":
		if c.Catalog.DBPath == "" {
			errs = append(errs, errors.New("catalog.db_path is required for the sqlite source"))
		}
	case "udemy":
		if c.Udemy.OrgID == "" || c.Udemy.ClientID == "" || c.Udemy.ClientSecret == "" {
			errs = append(errs, errors.New("udemy.org_id, udemy.client_id and udemy.client_secret are required for the udemy source"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source %q is not one of file, http, sqlite, udemy", c.Catalog.Source))
	}
	if c.Catalog.Timeout <= 0 {
		errs = append(errs, errors.New("catalog.timeout must be positive"))
	}
	if c.Recommend.TopN <= 0 {
		errs = append(errs, errors.New("recommend.top_n must be positive"))
	}
	if c.Recommend.CandidateWidth < 0 {
		errs = append(errs, errors.New("recommend.candidate_width must not be negative"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must not be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("server.rate_window must be positive when rate_limit is set"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, errors.New("batch.workers must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// envKey maps COURSEREC_CATALOG_DB_PATH to catalog.db_path: the first
// underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + key
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
