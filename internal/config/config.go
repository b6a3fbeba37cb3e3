package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nrfta/listview-go"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	// Database - employees and expenses
	Database DatabaseConfig

	// Redis - persisted list views (optional)
	Redis RedisConfig

	// Paging - page sizes and window radius shared by every list
	Paging PagingConfig

	// Browse - terminal client
	Browse BrowseConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// Addr returns host:port for net/http.
func (c HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level    string
	Mode     string
	Encoding string
}

// DatabaseConfig selects the SQL driver. Driver is "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver   string
	DSN      string
	Migrate  bool
	SeedRows int
}

// RedisConfig is the configuration for Redis. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	StateTTL time.Duration
}

// Enabled reports whether list views are persisted in Redis.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// PagingConfig configures list pagination.
type PagingConfig struct {
	DefaultPageSize  int
	AllowedPageSizes []int
	WindowRadius     int
}

// PageConfig returns the page size policy for list codecs.
func (c PagingConfig) PageConfig() *listview.PageConfig {
	return listview.NewPageConfig().
		WithAllowedSizes(c.AllowedPageSizes...).
		WithDefaultSize(c.DefaultPageSize)
}

// BrowseConfig configures the terminal client.
type BrowseConfig struct {
	URL          string
	FetchTimeout time.Duration
}

// Load loads configuration using Viper. Values come from an optional
// hrlist.yaml and from HRLIST_* environment variables, e.g.
// HRLIST_DATABASE_DSN for database.dsn.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("hrlist")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/hrlist/")

	return load(v)
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("hrlist")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Host = v.GetString("http_server.host")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")

	cfg.Database.Driver = v.GetString("database.driver")
	cfg.Database.DSN = v.GetString("database.dsn")
	cfg.Database.Migrate = v.GetBool("database.migrate")
	cfg.Database.SeedRows = v.GetInt("database.seed_rows")

	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Redis.Password = v.GetString("redis.password")
	cfg.Redis.DB = v.GetInt("redis.db")
	cfg.Redis.StateTTL = v.GetDuration("redis.state_ttl")

	cfg.Paging.DefaultPageSize = v.GetInt("paging.default_page_size")
	cfg.Paging.AllowedPageSizes = v.GetIntSlice("paging.allowed_page_sizes")
	cfg.Paging.WindowRadius = v.GetInt("paging.window_radius")

	cfg.Browse.URL = v.GetString("browse.url")
	cfg.Browse.FetchTimeout = v.GetDuration("browse.fetch_timeout")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Environment
	v.SetDefault("environment.name", "development")

	// HTTP Server
	v.SetDefault("http_server.host", "")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")

	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")

	// Database
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:hrlist.db?_pragma=foreign_keys(1)")
	v.SetDefault("database.migrate", true)
	v.SetDefault("database.seed_rows", 0)

	// Redis
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.state_ttl", 30*24*time.Hour)

	// Paging
	v.SetDefault("paging.default_page_size", 10)
	v.SetDefault("paging.allowed_page_sizes", []int{10, 25, 50, 75, 100})
	v.SetDefault("paging.window_radius", 2)

	// Browse
	v.SetDefault("browse.url", "http://localhost:8080/api/employees")
	v.SetDefault("browse.fetch_timeout", 10*time.Second)
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return fmt.Errorf("http_server.port out of range: %d", cfg.HTTPServer.Port)
	}
	if len(cfg.Paging.AllowedPageSizes) == 0 {
		return errors.New("paging.allowed_page_sizes must not be empty")
	}
	for _, size := range cfg.Paging.AllowedPageSizes {
		if size <= 0 {
			return fmt.Errorf("paging.allowed_page_sizes contains non-positive size %d", size)
		}
	}
	if cfg.Paging.WindowRadius < 0 {
		return fmt.Errorf("paging.window_radius must not be negative, got %d", cfg.Paging.WindowRadius)
	}
	return nil
}
