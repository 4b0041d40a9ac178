package main

import (
	"strings"
	"time"

	"github.com/omega/animator/internal/api"
	"github.com/omega/animator/internal/depinstall"
	"github.com/omega/animator/internal/generator"
	"github.com/omega/animator/internal/infra/persistence/commonrepo"
	"github.com/omega/animator/internal/llm"
	"github.com/omega/animator/internal/orchestrator"
	"github.com/omega/animator/internal/orm"
	"github.com/omega/animator/internal/render"
	"github.com/omega/animator/internal/renderer"
	"github.com/omega/animator/internal/sanitizer"
	"github.com/omega/animator/internal/service"
	"github.com/omega/animator/pkg/config"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// ProvideStorageConfig maps the database section onto orm.Config.
func ProvideStorageConfig(cfg config.Config) orm.Config {
	level := gormlogger.Warn
	if strings.EqualFold(cfg.Log.Level, "debug") {
		level = gormlogger.Info
	}
	return orm.Config{
		Driver:                cfg.Database.Driver,
		DSN:                   cfg.Database.DSN,
		Host:                  cfg.Database.Host,
		Port:                  cfg.Database.Port,
		Database:              cfg.Database.Database,
		User:                  cfg.Database.User,
		Password:              cfg.Database.Password,
		MaxConnections:        cfg.Database.MaxConnections,
		MaxIdleConnections:    cfg.Database.MaxIdleConnections,
		ConnectionMaxLifetime: cfg.Database.ConnectionMaxLifetime,
		LogLevel:              level,
	}
}

func ProvideDB(storage *orm.Storage) commonrepo.DB {
	return storage.DB()
}

func ProvideRenderConfig(cfg config.Config) render.Config {
	return render.Config{
		BaseURL:     cfg.Render.BaseURL,
		ExecutePath: cfg.Render.ExecutePath,
		Timeout:     cfg.Render.Timeout,
	}
}

func ProvideInstallerConfig(cfg config.Config) depinstall.Config {
	return depinstall.Config{
		Enabled:   cfg.Installer.Enabled,
		Container: cfg.Installer.Container,
		Timeout:   cfg.Installer.Timeout,
	}
}

func ProvideSanitizer(cfg config.Config, logger *zap.Logger) *sanitizer.Sanitizer {
	return sanitizer.New(logger, cfg.Render.SceneBase)
}

func ProvideOrchestratorConfig(cfg config.Config) orchestrator.Config {
	return orchestrator.Config{
		MaxAttempts: cfg.Render.MaxAttempts,
		SceneBase:   cfg.Render.SceneBase,
	}
}

func ProvideDebuggerConfig(cfg config.Config) generator.DebuggerConfig {
	return generator.DebuggerConfig{Kind: cfg.AI.DebugProvider}
}

func ProvideScriptServiceConfig(cfg config.Config) service.ScriptServiceConfig {
	return service.ScriptServiceConfig{
		BaseURL:   cfg.Server.BaseURL,
		SceneBase: cfg.Render.SceneBase,
	}
}

// runBudget is the longest a synchronous execute request can take: every
// attempt may render, install and call the debugger, after one generation.
func runBudget(cfg config.Config) time.Duration {
	perAttempt := cfg.Render.Timeout + cfg.Installer.Timeout + llm.CallTimeout
	return time.Duration(cfg.Render.MaxAttempts)*perAttempt + llm.CallTimeout
}

// ProvideServerConfig raises a non-zero write timeout to the run budget so
// responses to long executions are not dropped.
func ProvideServerConfig(cfg config.Config) api.ServerConfig {
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout > 0 {
		writeTimeout = max(writeTimeout, runBudget(cfg))
	}
	return api.ServerConfig{
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   writeTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		MediaRoot:      cfg.Server.MediaRoot,
	}
}

func ProvideExecutorConfig(cfg config.Config) renderer.Config {
	return renderer.Config{
		WorkDir:    cfg.Executor.WorkDir,
		MediaDir:   cfg.Executor.MediaDir,
		ScriptsDir: cfg.Executor.ScriptsDir,
		Renderer:   cfg.Executor.Renderer,
		Quality:    cfg.Executor.Quality,
		Timeout:    cfg.Executor.Timeout,
	}
}

func ProvideExecutorServerConfig(cfg config.Config) renderer.ServerConfig {
	return renderer.ServerConfig{
		Port:        cfg.Executor.Port,
		ExecutePath: cfg.Render.ExecutePath,
	}
}
