package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/buildgraphgo/internal/builder"
	"github.com/vk/buildgraphgo/internal/config"
	"github.com/vk/buildgraphgo/internal/ctxlog"
	"github.com/vk/buildgraphgo/internal/inmemoryworkspace"
	"github.com/vk/buildgraphgo/internal/syncer"
	"github.com/vk/buildgraphgo/internal/workspace"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *config.Model
	ws     workspace.Workspace
	syncer *syncer.Syncer
	orch   syncer.Orchestrator
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, workspace, and
// reference cache.
func New(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.",
		"program", cfgModel.Toolchain.Program,
		"projects", len(cfgModel.Projects))

	orch := builder.New(cfgModel.Toolchain, cfgModel.Properties)
	cache := syncer.NewReferenceCache()

	return &App{
		outW:   outW,
		logger: logger,
		config: cfgModel,
		ws:     inmemoryworkspace.New(),
		syncer: syncer.New(cache, orch),
		orch:   orch,
	}
}

// Workspace returns the application's workspace. This is primarily for testing.
func (a *App) Workspace() workspace.Workspace {
	return a.ws
}
