package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverDynamoDB = "dynamodb"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// ErrUnknownDriver is returned when STORE_DRIVER names no known backend.
var ErrUnknownDriver = errors.New("unknown store driver")

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Dashboard DashboardConfig
	Metrics   MetricsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	dashboard, err := loadDashboardConfig()
	if err != nil {
		return nil, err
	}

	var metrics MetricsConfig
	if err := env.Parse(&metrics); err != nil {
		return nil, fmt.Errorf("parse metrics env: %w", err)
	}

	return &Config{Server: server, Store: store, Dashboard: dashboard, Metrics: metrics}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr            string
	StaticDir       string        `env:"STATIC_DIR"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse server env: %w", err)
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":3000" 或 "127.0.0.1:3000"。
		cfg.Addr = port
		return cfg, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	cfg.Addr = ":" + port
	return cfg, nil
}

// StoreConfig describes where launch records are read from.
type StoreConfig struct {
	Driver          string        `env:"STORE_DRIVER" envDefault:"dynamodb"`
	Table           string        `env:"LAUNCHES_TABLE"`
	Region          string        `env:"AWS_REGION"`
	AccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string        `env:"AWS_SESSION_TOKEN"`
	Endpoint        string        `env:"DYNAMODB_ENDPOINT"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"launches.db"`
	FixturesPath    string        `env:"FIXTURES_PATH"`
	Timeout         time.Duration `env:"STORE_TIMEOUT"`
}

// StaticCredentials reports whether an explicit key pair was configured.
// Without one the AWS default credential chain applies.
func (c StoreConfig) StaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

func loadStoreConfig() (StoreConfig, error) {
	var cfg StoreConfig
	if err := env.Parse(&cfg); err != nil {
		return StoreConfig{}, fmt.Errorf("parse store env: %w", err)
	}

	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch cfg.Driver {
	case DriverDynamoDB, DriverSQLite, DriverMemory:
	default:
		return StoreConfig{}, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	if strings.TrimSpace(cfg.Table) == "" {
		cfg.Table = defaultTable(cfg.Driver)
	}
	if cfg.Timeout < 0 {
		return StoreConfig{}, fmt.Errorf("invalid STORE_TIMEOUT value: %s", cfg.Timeout)
	}
	return cfg, nil
}

func defaultTable(driver string) string {
	if driver == DriverSQLite {
		return "launches"
	}
	return launch.TableName
}

// DashboardConfig 描述前端仪表盘的展示配置。
type DashboardConfig struct {
	Title    string   `env:"DASHBOARD_TITLE" envDefault:"SpaceX launches"`
	Statuses []string `env:"DASHBOARD_STATUSES" envSeparator:","`
}

// TrackedStatuses returns the chart buckets in configured order.
func (c DashboardConfig) TrackedStatuses() []launch.Status {
	if len(c.Statuses) == 0 {
		return launch.DefaultStatuses()
	}
	out := make([]launch.Status, 0, len(c.Statuses))
	for _, s := range c.Statuses {
		out = append(out, launch.Status(s))
	}
	return out
}

// LoadDashboard reads only the dashboard section, for clients that chart
// launches the same way the server does.
func LoadDashboard() (DashboardConfig, error) {
	return loadDashboardConfig()
}

func loadDashboardConfig() (DashboardConfig, error) {
	var cfg DashboardConfig
	if err := env.Parse(&cfg); err != nil {
		return DashboardConfig{}, fmt.Errorf("parse dashboard env: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Statuses))
	statuses := cfg.Statuses[:0]
	for _, s := range cfg.Statuses {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		if s == "all" {
			return DashboardConfig{}, fmt.Errorf("invalid DASHBOARD_STATUSES value: %q is reserved", s)
		}
		seen[s] = true
		statuses = append(statuses, s)
	}
	cfg.Statuses = statuses
	return cfg, nil
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Addr string `env:"METRICS_ADDR"`
}

// Enabled 表示是否需要单独启动指标端口。
func (c MetricsConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}
