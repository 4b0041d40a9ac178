//go:build wireinject
// +build wireinject

package main

//go:generate go run -mod=mod github.com/google/wire/cmd/wire

import (
	"github.com/google/wire"
	"github.com/omega/animator/internal/api"
	"github.com/omega/animator/internal/depinstall"
	"github.com/omega/animator/internal/generator"
	"github.com/omega/animator/internal/infra/persistence/attemptrepo"
	"github.com/omega/animator/internal/infra/persistence/providerrepo"
	"github.com/omega/animator/internal/infra/persistence/scriptrepo"
	"github.com/omega/animator/internal/llm"
	"github.com/omega/animator/internal/orchestrator"
	"github.com/omega/animator/internal/orm"
	"github.com/omega/animator/internal/render"
	"github.com/omega/animator/internal/renderer"
	"github.com/omega/animator/internal/scheduler"
	"github.com/omega/animator/internal/service"
	"github.com/omega/animator/pkg/config"
	"go.uber.org/zap"
)

func InitializeApp(logger *zap.Logger, cfg config.Config, storage *orm.Storage) (*App, error) {
	wire.Build(
		NewApp,

		ProvideDB,
		ProvideRenderConfig,
		ProvideInstallerConfig,
		ProvideSanitizer,
		ProvideOrchestratorConfig,
		ProvideDebuggerConfig,
		ProvideScriptServiceConfig,
		ProvideServerConfig,

		// other
		scheduler.Provider,
		orchestrator.Provider,
		render.Provider,
		depinstall.Provider,
		generator.Provider,
		llm.ProviderSet,

		// http api providers
		api.Provider,

		// service providers
		service.Provider,

		// infra providers
		scriptrepo.Provider,
		attemptrepo.Provider,
		providerrepo.Provider,
	)
	return nil, nil
}

func InitializeExecutor(logger *zap.Logger, cfg config.Config) *renderer.Server {
	wire.Build(
		ProvideExecutorConfig,
		ProvideExecutorServerConfig,
		renderer.Provider,
	)
	return nil
}
