// Package executor runs project loads concurrently: a fixed worker pool
// builds each requested project through the orchestrator and inserts the
// results into the shared workspace via the synchronizer.
package executor

import (
	"context"
	"errors"
	"sync"

	"github.com/vk/buildgraphgo/internal/config"
	"github.com/vk/buildgraphgo/internal/ctxlog"
	"github.com/vk/buildgraphgo/internal/syncer"
	"github.com/vk/buildgraphgo/internal/workspace"
)

// applyRetryLimit bounds how often a worker re-proposes an insertion that
// lost an optimistic-concurrency race. The syncer itself stays
// atomic-fail; retrying a whole insertion is this layer's policy.
const applyRetryLimit = 32

// Executor loads many projects into one workspace in parallel.
type Executor struct {
	orchestrator syncer.Orchestrator
	syncer       *syncer.Syncer
	ws           workspace.Workspace
	workers      int
}

// New creates an executor with the given worker count (minimum 1).
func New(orchestrator syncer.Orchestrator, s *syncer.Syncer, ws workspace.Workspace, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		orchestrator: orchestrator,
		syncer:       s,
		ws:           ws,
		workers:      workers,
	}
}

// Run builds and inserts every project. All workers keep going when one
// project fails; the collected failures are joined into the returned error.
func (e *Executor) Run(ctx context.Context, projects []*config.Project) error {
	jobs := make(chan *config.Project)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			e.worker(ctx, workerID, jobs, func(err error) {
				mu.Lock()
				defer mu.Unlock()
				errs = append(errs, err)
			})
		}(i)
	}

dispatch:
	for _, project := range projects {
		select {
		case jobs <- project:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// worker is the processing loop for one concurrent worker.
func (e *Executor) worker(ctx context.Context, workerID int, jobs <-chan *config.Project, fail func(error)) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	logger.Debug("Worker started.")

	for project := range jobs {
		if ctx.Err() != nil {
			return
		}
		if _, ok := e.ws.NodeByPath(project.Path); ok {
			logger.Debug("Project already in workspace, skipping build.", "project", project.Path)
			continue
		}
		if err := e.load(ctx, project); err != nil {
			logger.Error("Project load failed.", "project", project.Path, "error", err)
			fail(err)
		}
	}
	logger.Debug("Worker finished.")
}

// load builds one project and inserts every produced result, retrying
// insertions that lose the optimistic apply race against other workers.
func (e *Executor) load(ctx context.Context, project *config.Project) error {
	results, err := e.orchestrator.Build(ctx, project.Path)
	if err != nil {
		return err
	}

	for _, res := range results {
		if _, ok := e.ws.NodeByPath(res.ProjectPath); ok {
			continue
		}
		for attempt := 0; ; attempt++ {
			_, err := e.syncer.AddResult(ctx, res, e.ws, project.Recurse)
			if err == nil {
				break
			}
			if !errors.Is(err, syncer.ErrWorkspaceApply) || attempt >= applyRetryLimit {
				return err
			}
			// The node may have committed before a later, recursion-phase
			// apply lost its race; re-proposing it would collide.
			if _, ok := e.ws.NodeByPath(res.ProjectPath); ok {
				break
			}
		}
	}
	return nil
}
