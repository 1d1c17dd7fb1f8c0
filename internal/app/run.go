package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/buildgraphgo/internal/config"
	"github.com/vk/buildgraphgo/internal/ctxlog"
	"github.com/vk/buildgraphgo/internal/executor"
	"github.com/vk/buildgraphgo/internal/fsutil"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	projects, err := a.collectProjects(appConfig)
	if err != nil {
		return fmt.Errorf("failed to collect projects: %w", err)
	}

	if len(projects) == 0 {
		a.logger.Warn("No projects to load, nothing to do.")
		return nil
	}

	a.logger.Info("🚀 Starting project load.", "projects", len(projects), "workers", appConfig.WorkerCount)
	exec := executor.New(a.orch, a.syncer, a.ws, appConfig.WorkerCount)
	if err := exec.Run(ctx, projects); err != nil {
		return fmt.Errorf("project load failed: %w", err)
	}

	snapshot := a.ws.CurrentGraph()
	a.logger.Info("🏁 Project load finished.",
		"nodes", snapshot.Len(),
		"edges", snapshot.EdgeCount(),
		"documents", snapshot.DocumentCount())

	a.logger.Debug("App.Run method finished.")
	return nil
}

// collectProjects merges the configured projects with those named or
// discovered through the positional path argument.
func (a *App) collectProjects(appConfig *Config) ([]*config.Project, error) {
	projects := make([]*config.Project, 0, len(a.config.Projects))
	projects = append(projects, a.config.Projects...)

	if appConfig.ProjectPath == "" {
		return projects, nil
	}

	info, err := os.Stat(appConfig.ProjectPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		projects = append(projects, &config.Project{
			Path:    appConfig.ProjectPath,
			Recurse: appConfig.Recurse,
		})
		return projects, nil
	}

	found, err := fsutil.FindFilesByExtensions(appConfig.ProjectPath, ".csproj", ".vbproj")
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Project discovery finished.", "path", appConfig.ProjectPath, "found", len(found))
	for _, path := range found {
		projects = append(projects, &config.Project{Path: path, Recurse: appConfig.Recurse})
	}
	return projects, nil
}
