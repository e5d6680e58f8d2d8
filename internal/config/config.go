package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode     string         `yaml:"mode"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Web      WebConfig      `yaml:"web"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	// URL selects the driver by scheme: postgres://, mysql://, sqlite://.
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	LogSQL       bool   `yaml:"log_sql"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Dev        bool   `yaml:"dev"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type WebConfig struct {
	// Dir holds the static HTML pages. Page routes are skipped when empty.
	Dir string `yaml:"dir"`
}

var DefaultPaths = []string{"etc/taskboard.yaml", "/etc/taskboard/config.yaml"}

func Default() *Config {
	return &Config{
		Mode:     "release",
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8888},
		Database: DatabaseConfig{URL: "sqlite://taskboard.db", MaxOpenConns: 10},
		Log:      LogConfig{Level: "info", MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		CORS:     CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// Load reads the first readable file among paths (DefaultPaths when configFile
// is empty), then applies environment overrides. A missing file is not an
// error; a malformed one is.
func Load(configFile string) (*Config, error) {
	c := Default()

	paths := DefaultPaths
	if configFile != "" {
		paths = []string{configFile}
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)

		if err != nil {
			if configFile != "" {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			continue
		}

		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	envOverride(&c.Mode, "GIN_MODE")
	envOverride(&c.Server.Host, "HOST")
	envOverride(&c.Database.URL, "DATABASE_URL")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.Web.Dir, "WEB_DIR")

	if err := envOverrideInt(&c.Server.Port, "PORT"); err != nil {
		return err
	}

	if err := envOverrideInt(&c.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS"); err != nil {
		return err
	}

	if err := envOverrideBool(&c.Database.LogSQL, "DB_LOG_SQL"); err != nil {
		return err
	}

	if err := envOverrideBool(&c.Log.Dev, "LOG_DEV"); err != nil {
		return err
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = nil
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, trimmed)
			}
		}
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	if c.Database.URL == "" {
		return fmt.Errorf("database url is required")
	}

	switch c.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	n, err := strconv.Atoi(v)

	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}

	*dst = n
	return nil
}

func envOverrideBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	b, err := strconv.ParseBool(v)

	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}

	*dst = b
	return nil
}
