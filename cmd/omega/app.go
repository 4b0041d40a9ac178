package main

import (
	"github.com/omega/animator/internal/api"
	"github.com/omega/animator/internal/scheduler"
	"github.com/omega/animator/internal/service"
)

type App struct {
	Server    *api.Server
	Scheduler *scheduler.Scheduler
	Scripts   service.IScriptService
	Providers service.IProviderService
}

func NewApp(
	server *api.Server,
	sched *scheduler.Scheduler,
	scripts service.IScriptService,
	providers service.IProviderService,
) *App {
	return &App{
		Server:    server,
		Scheduler: sched,
		Scripts:   scripts,
		Providers: providers,
	}
}
