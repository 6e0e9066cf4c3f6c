package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        string `yaml:"port"`
		CORSOrigins string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // sqlite or mysql
		Path     string `yaml:"path"`
		MySQLURL string `yaml:"mysql_url"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret      string `yaml:"jwt_secret"`
		TokenTTLHours  int    `yaml:"token_ttl_hours"`
		LoginPerMinute int    `yaml:"login_per_minute"`
		LoginBurst     int    `yaml:"login_burst"`
	} `yaml:"auth"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		Schedule      string `yaml:"schedule"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads the YAML config at path (HOTEL_CONFIG or configs/config.yaml when empty),
// then applies environment overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = envOrDefault("HOTEL_CONFIG", "configs/config.yaml")
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Support ${ENV_VAR} placeholders in YAML config.
		data = []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Database.Driver == "sqlite" && cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = envOrDefault("PORT", c.Server.Port)
	c.Server.CORSOrigins = envOrDefault("CORS_ORIGINS", c.Server.CORSOrigins)
	c.Database.Driver = strings.ToLower(envOrDefault("DB_DRIVER", c.Database.Driver))
	c.Database.Path = envOrDefault("DB_PATH", c.Database.Path)
	c.Database.MySQLURL = envOrDefault("DATABASE_URL", c.Database.MySQLURL)
	c.Database.MySQLURL = envOrDefault("MYSQL_URL", c.Database.MySQLURL)
	c.Auth.JWTSecret = envOrDefault("JWT_SECRET", c.Auth.JWTSecret)
	c.Redis.Address = envOrDefault("REDIS_ADDR", c.Redis.Address)
	c.Redis.Password = envOrDefault("REDIS_PASSWORD", c.Redis.Password)
	c.Log.Level = envOrDefault("LOG_LEVEL", c.Log.Level)
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		c.Log.Pretty, _ = strconv.ParseBool(v)
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:5173,http://localhost:3000"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/hotel.db"
	}
	if c.Database.LogLevel == "" {
		c.Database.LogLevel = "warn"
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = "change-me"
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 12
	}
	if c.Auth.LoginPerMinute <= 0 {
		c.Auth.LoginPerMinute = 10
	}
	if c.Auth.LoginBurst <= 0 {
		c.Auth.LoginBurst = 5
	}
	if c.Backup.Schedule == "" {
		c.Backup.Schedule = "0 3 * * *"
	}
	if c.Backup.Path == "" {
		c.Backup.Path = "data/backups"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// Origins splits the comma separated CORS origin list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.Server.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}
