package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DefaultDevelopmentAPIURL is used when no override is set outside production.
	DefaultDevelopmentAPIURL = "http://localhost:8000"
	// DefaultProductionAPIURL is compiled in for production builds.
	DefaultProductionAPIURL = "https://task-manager-ui-ten.vercel.app"
)

// Storage drivers understood by the server.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBolt     = "bolt"
)

// Config aggregates all runtime settings required by the server and the client.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Client      ClientConfig
	Report      ReportConfig
	Storage     StorageConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Monitor     MonitorConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// ClientConfig controls how the dashboard reaches the task API.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ReportConfig struct {
	Dir string
}

type StorageConfig struct {
	Driver     string
	SQLitePath string
	BoltPath   string
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether the list cache should be wired.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

type MonitorConfig struct {
	Interval time.Duration
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
	Output   string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so both binaries can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "taskboard"),
		Environment: strings.ToLower(getString("APP_ENV", EnvDevelopment)),
		HTTP: HTTPConfig{
			Host:           getString("SERVER_HOST", "0.0.0.0"),
			Port:           getString("SERVER_PORT", "8000"),
			ReadTimeout:    getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:    getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Client: ClientConfig{
			Timeout: getDuration("CLIENT_TIMEOUT", 10*time.Second),
		},
		Report: ReportConfig{
			Dir: getString("REPORT_DIR", "."),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getString("STORAGE_DRIVER", DriverSQLite)),
			SQLitePath: getString("SQLITE_PATH", "./tasks.db"),
			BoltPath:   getString("BOLTDB_PATH", "./data/tasks.bolt"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "tasks"),
			User:            getString("DB_USER", "tasks"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 2),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
			TTL:      getDuration("CACHE_TTL", 30*time.Second),
		},
		Monitor: MonitorConfig{
			Interval: getDuration("MONITOR_INTERVAL", 10*time.Second),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
			Output:   getString("LOG_OUTPUT", "stdout"),
		},
	}

	cfg.Client.BaseURL = resolveBaseURL(os.Getenv("TASKS_API_URL"), cfg.Environment)

	switch cfg.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverBolt:
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// IsProduction reports whether the production defaults apply.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

// resolveBaseURL applies the override first, then the environment default.
func resolveBaseURL(override, environment string) string {
	if override = strings.TrimSpace(override); override != "" {
		return strings.TrimRight(override, "/")
	}
	if environment == EnvProduction {
		return DefaultProductionAPIURL
	}
	return DefaultDevelopmentAPIURL
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
