package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Retail admin specifics
	Backend   BackendConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Table     TableConfig
	Form      FormConfig
	Metrics   MetricsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	File         LogFileConfig
}

// LogFileConfig enables a rotating file sink when Path is set.
type LogFileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type SessionConfig struct {
	Backend      string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
	MaxEntries   int
	Redis        RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	LoginPerMin int
}

type TableConfig struct {
	PageSizes         []int
	DefaultPageSize   int
	ExportMaxColWidth int
}

type FormConfig struct {
	// ContinueOnEndpointError runs the page callback after a failed endpoint call.
	ContinueOnEndpointError bool
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.Logger.File.Path = viper.GetString("logger.file.path")
	cfg.Logger.File.MaxSizeMB = viper.GetInt("logger.file.max_size_mb")
	cfg.Logger.File.MaxBackups = viper.GetInt("logger.file.max_backups")
	cfg.Logger.File.MaxAgeDays = viper.GetInt("logger.file.max_age_days")
	cfg.Logger.File.Compress = viper.GetBool("logger.file.compress")

	// Backend API
	cfg.Backend.BaseURL = viper.GetString("backend.base_url")
	cfg.Backend.Timeout = viper.GetDuration("backend.timeout")
	if backendURL := viper.GetString("backend_url"); backendURL != "" {
		cfg.Backend.BaseURL = backendURL
	}

	// Session
	cfg.Session.Backend = viper.GetString("session.backend")
	cfg.Session.TTL = viper.GetDuration("session.ttl")
	cfg.Session.CookieName = viper.GetString("session.cookie_name")
	cfg.Session.CookieSecure = viper.GetBool("session.cookie_secure")
	cfg.Session.MaxEntries = viper.GetInt("session.max_entries")
	cfg.Session.Redis.Addr = viper.GetString("session.redis.addr")
	cfg.Session.Redis.Password = viper.GetString("session.redis.password")
	cfg.Session.Redis.DB = viper.GetInt("session.redis.db")
	if redisURL := viper.GetString("redis_addr"); redisURL != "" {
		cfg.Session.Redis.Addr = redisURL
	}

	cfg.RateLimit.LoginPerMin = viper.GetInt("rate_limit.login_per_min")

	// Table & form components
	sizes, err := parseInts(viper.Get("table.page_sizes"))
	if err != nil {
		return nil, fmt.Errorf("table.page_sizes: %w", err)
	}
	cfg.Table.PageSizes = sizes
	cfg.Table.DefaultPageSize = viper.GetInt("table.default_page_size")
	cfg.Table.ExportMaxColWidth = viper.GetInt("table.export_max_col_width")
	cfg.Form.ContinueOnEndpointError = viper.GetBool("form.continue_on_endpoint_error")

	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")
	cfg.Metrics.Path = viper.GetString("metrics.path")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("logger.file.max_size_mb", 50)
	viper.SetDefault("logger.file.max_backups", 5)
	viper.SetDefault("logger.file.max_age_days", 14)

	viper.SetDefault("backend.base_url", "http://localhost:8081")
	viper.SetDefault("backend.timeout", "15s")

	viper.SetDefault("session.backend", SessionBackendMemory)
	viper.SetDefault("session.ttl", "8h")
	viper.SetDefault("session.cookie_name", "retail_admin_sid")
	viper.SetDefault("session.max_entries", 10000)
	viper.SetDefault("session.redis.addr", "localhost:6379")

	viper.SetDefault("rate_limit.login_per_min", 10)

	viper.SetDefault("table.page_sizes", []int{5, 10, 20, 50})
	viper.SetDefault("table.default_page_size", 10)
	viper.SetDefault("table.export_max_col_width", 50)

	// observed behavior: the page callback still runs after a failed call
	viper.SetDefault("form.continue_on_endpoint_error", true)

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
}

func (cfg *Config) validate() error {
	if cfg.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	switch cfg.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if cfg.Session.Redis.Addr == "" {
			return errors.New("session.redis.addr is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session.backend %q", cfg.Session.Backend)
	}
	if cfg.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if len(cfg.Table.PageSizes) == 0 {
		return errors.New("table.page_sizes must not be empty")
	}
	for _, s := range cfg.Table.PageSizes {
		if s <= 0 {
			return fmt.Errorf("table.page_sizes: invalid size %d", s)
		}
	}
	return nil
}

// parseInts accepts a YAML list or a comma separated env value.
func parseInts(raw any) ([]int, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []int:
		return v, nil
	case []any:
		out := make([]int, 0, len(v))
		for _, item := range v {
			n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(item)))
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case string:
		var out []int
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value %v", raw)
	}
}
