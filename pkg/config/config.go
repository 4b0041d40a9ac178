package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Render    RenderConfig    `mapstructure:"render"`
	Installer InstallerConfig `mapstructure:"installer"`
	AI        AIConfig        `mapstructure:"ai"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Executor  ExecutorConfig  `mapstructure:"executor"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
	BaseURL        string        `mapstructure:"base_url"`
	MediaRoot      string        `mapstructure:"media_root"`
}

type DatabaseConfig struct {
	Driver                string        `mapstructure:"driver"`
	DSN                   string        `mapstructure:"dsn"`
	Host                  string        `mapstructure:"host"`
	Port                  int           `mapstructure:"port"`
	Database              string        `mapstructure:"database"`
	User                  string        `mapstructure:"user"`
	Password              string        `mapstructure:"password"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RenderConfig describes how the orchestrator reaches the render executor.
type RenderConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	ExecutePath string        `mapstructure:"execute_path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	SceneBase   string        `mapstructure:"scene_base"`
}

type InstallerConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Container string        `mapstructure:"container"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type AIConfig struct {
	DebugProvider string           `mapstructure:"debug_provider"`
	Providers     []ProviderConfig `mapstructure:"providers"`
}

// ProviderConfig is a provider declared in the config file. It is seeded into
// the provider catalog on startup.
type ProviderConfig struct {
	Name       string `mapstructure:"name" yaml:"name"`
	Kind       string `mapstructure:"kind" yaml:"kind"`
	APIKey     string `mapstructure:"api_key" yaml:"api_key"`
	Endpoint   string `mapstructure:"endpoint" yaml:"endpoint"`
	Deployment string `mapstructure:"deployment" yaml:"deployment"`
	Model      string `mapstructure:"model" yaml:"model"`
	APIVersion string `mapstructure:"api_version" yaml:"api_version"`
	Active     *bool  `mapstructure:"active" yaml:"active"`
	Priority   int    `mapstructure:"priority" yaml:"priority"`

	// The *Env fields name environment variables that fill the matching
	// field when it is empty in the file.
	APIKeyEnv     string `mapstructure:"api_key_env" yaml:"api_key_env"`
	EndpointEnv   string `mapstructure:"endpoint_env" yaml:"endpoint_env"`
	DeploymentEnv string `mapstructure:"deployment_env" yaml:"deployment_env"`
}

// Resolved returns a copy with empty credentials filled from the
// environment variables the entry names.
func (p ProviderConfig) Resolved() ProviderConfig {
	p.APIKey = fromEnv(p.APIKey, p.APIKeyEnv)
	p.Endpoint = fromEnv(p.Endpoint, p.EndpointEnv)
	p.Deployment = fromEnv(p.Deployment, p.DeploymentEnv)
	return p
}

func fromEnv(value, name string) string {
	if value != "" || name == "" {
		return value
	}
	return strings.TrimSpace(os.Getenv(name))
}

type SchedulerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	HealthCheckSpec string        `mapstructure:"health_check_spec"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
	ReaperSpec      string        `mapstructure:"reaper_spec"`
	StaleAfter      time.Duration `mapstructure:"stale_after"`
}

// ExecutorConfig configures the render executor sidecar.
type ExecutorConfig struct {
	Port       int           `mapstructure:"port"`
	WorkDir    string        `mapstructure:"work_dir"`
	MediaDir   string        `mapstructure:"media_dir"`
	ScriptsDir string        `mapstructure:"scripts_dir"`
	Renderer   string        `mapstructure:"renderer"`
	Quality    string        `mapstructure:"quality"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "50m")
	v.SetDefault("server.max_header_bytes", 1048576)
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.media_root", "media")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "omega")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_idle_connections", 10)
	v.SetDefault("database.connection_max_lifetime", "1h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("render.base_url", "http://manim:5001")
	v.SetDefault("render.execute_path", "/execute-manim")
	v.SetDefault("render.timeout", "300s")
	v.SetDefault("render.max_attempts", 3)
	v.SetDefault("render.scene_base", "Scene")

	v.SetDefault("installer.enabled", true)
	v.SetDefault("installer.container", "omega-manim")
	v.SetDefault("installer.timeout", "5m")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.health_check_spec", "@every 30s")
	v.SetDefault("scheduler.health_timeout", "5s")
	v.SetDefault("scheduler.reaper_spec", "0 */5 * * * *")
	v.SetDefault("scheduler.stale_after", "30m")

	v.SetDefault("executor.port", 5001)
	v.SetDefault("executor.work_dir", "/manim")
	v.SetDefault("executor.media_dir", "/manim/media")
	v.SetDefault("executor.scripts_dir", "/manim/scripts")
	v.SetDefault("executor.renderer", "manim")
	v.SetDefault("executor.quality", "m")
	v.SetDefault("executor.timeout", "300s")
}

// Load reads the YAML file at configPath and applies OMEGA_* environment
// overrides. An empty configPath loads defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("omega")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the rest of the program relies on.
func (c *Config) Validate() error {
	if c.Render.MaxAttempts < 1 {
		return fmt.Errorf("render.max_attempts must be at least 1, got %d", c.Render.MaxAttempts)
	}
	if c.Render.BaseURL == "" {
		return fmt.Errorf("render.base_url is required")
	}
	if c.Render.SceneBase == "" {
		return fmt.Errorf("render.scene_base is required")
	}
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	return nil
}
