package service

import (
	"github.com/google/wire"
	"github.com/omega/animator/internal/generator"
	"github.com/omega/animator/internal/orchestrator"
)

var Provider = wire.NewSet(
	NewScriptService,
	NewProviderService,
	wire.Bind(new(ScriptGenerator), new(*generator.Generator)),
	wire.Bind(new(ScriptRunner), new(*orchestrator.Orchestrator)),
)
