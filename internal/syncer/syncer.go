package syncer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vk/buildgraphgo/internal/ctxlog"
	"github.com/vk/buildgraphgo/internal/dialect"
	"github.com/vk/buildgraphgo/internal/graph"
	"github.com/vk/buildgraphgo/internal/model"
	"github.com/vk/buildgraphgo/internal/workspace"
)

var (
	// ErrInvalidArgument indicates a nil required input — a caller bug.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWorkspaceApply indicates the target workspace rejected the
	// proposed mutation; no partial state is visible afterwards.
	ErrWorkspaceApply = errors.New("workspace rejected mutation")
)

// Orchestrator builds a project on demand. The syncer calls it only when
// recursing into a referenced project that is not in the workspace yet.
type Orchestrator interface {
	Build(ctx context.Context, projectPath string) ([]*model.BuildResult, error)
}

// Syncer merges build results into a workspace graph. It is safe for
// concurrent use: the reference cache carries its own locking and every
// insertion works on snapshot clones.
type Syncer struct {
	cache        *ReferenceCache
	orchestrator Orchestrator
}

// New creates a syncer. The orchestrator may be nil if callers never
// request reference recursion.
func New(cache *ReferenceCache, orchestrator Orchestrator) *Syncer {
	if cache == nil {
		cache = NewReferenceCache()
	}
	return &Syncer{cache: cache, orchestrator: orchestrator}
}

// Cache exposes the injectable reference cache, mainly for sharing one
// cache across syncers operating on the same workspace.
func (s *Syncer) Cache() *ReferenceCache {
	return s.cache
}

// AddResult builds one graph node from a completed build result, merges it
// into the target workspace, and wires reference edges. With
// recurseReferences set, referenced projects missing from the workspace
// are built via the orchestrator and inserted recursively. It returns the
// committed node as looked up from the workspace after the commit.
func (s *Syncer) AddResult(ctx context.Context, res *model.BuildResult, ws workspace.Workspace, recurseReferences bool) (*graph.Node, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: build result must not be nil", ErrInvalidArgument)
	}
	if ws == nil {
		return nil, fmt.Errorf("%w: target workspace must not be nil", ErrInvalidArgument)
	}

	d, err := dialect.ForPath(res.ProjectPath)
	if err != nil {
		return nil, err
	}

	logger := ctxlog.FromContext(ctx)
	node := buildNode(res, d)

	// Overwrite the cache entry before edge discovery so that parallel
	// insertions of other projects in the same pass see this project's
	// current reference list.
	s.cache.Put(node.ID, res.ProjectReferences)

	proposed := ws.CurrentGraph()
	if err := proposed.AddNode(node); err != nil {
		return nil, fmt.Errorf("adding node for %s: %w", res.ProjectPath, err)
	}

	// Existing → new: any already-present project whose cached reference
	// list names this path gains an edge to the new node.
	for _, existing := range proposed.Nodes() {
		if existing.ID == node.ID {
			continue
		}
		if s.cache.Contains(existing.ID, node.Path) {
			if err := proposed.AddEdge(existing.ID, node.ID); err != nil {
				return nil, fmt.Errorf("wiring incoming edge: %w", err)
			}
		}
	}

	// New → existing: declared references resolved against projects
	// already present at insertion time.
	for _, refPath := range res.ProjectReferences {
		target, ok := proposed.NodeByPath(refPath)
		if !ok || target.ID == node.ID {
			continue
		}
		if err := proposed.AddEdge(node.ID, target.ID); err != nil {
			return nil, fmt.Errorf("wiring outgoing edge: %w", err)
		}
	}

	if !ws.TryApply(proposed) {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceApply, res.ProjectPath)
	}
	logger.Debug("Project committed to workspace.",
		"project", node.Path,
		"id", node.ID,
		"dialect", node.Dialect.String(),
		"documents", len(node.Documents),
		"references", len(node.References),
	)

	if recurseReferences {
		if err := s.recurse(ctx, res, ws); err != nil {
			return nil, err
		}
	}

	committed, ok := ws.NodeByID(node.ID)
	if !ok {
		return nil, fmt.Errorf("committed node %s vanished from workspace", node.ID)
	}
	return committed, nil
}

// recurseApplyRetryLimit bounds re-proposals of a recursive insertion that
// lost an optimistic apply race against a concurrent writer.
const recurseApplyRetryLimit = 32

// recurse builds and inserts every declared reference that is still absent
// from the workspace. Presence is re-checked immediately before each
// recursive insertion: an earlier recursion in the same pass may already
// have added the project transitively. By the time recursion runs, the
// originating node is already committed, so a recursive insertion that
// loses an apply race is re-proposed here instead of failing the whole
// insertion — callers retrying the outer AddResult would hit a duplicate
// node.
func (s *Syncer) recurse(ctx context.Context, res *model.BuildResult, ws workspace.Workspace) error {
	for _, refPath := range res.ProjectReferences {
		if _, ok := ws.NodeByPath(refPath); ok {
			continue
		}
		if s.orchestrator == nil {
			return fmt.Errorf("%w: reference recursion requires an orchestrator", ErrInvalidArgument)
		}
		results, err := s.orchestrator.Build(ctx, refPath)
		if err != nil {
			return fmt.Errorf("building referenced project %s: %w", refPath, err)
		}
		for _, refRes := range results {
			for attempt := 0; ; attempt++ {
				if _, ok := ws.NodeByPath(refRes.ProjectPath); ok {
					break
				}
				_, err := s.AddResult(ctx, refRes, ws, true)
				if err == nil {
					break
				}
				if !errors.Is(err, ErrWorkspaceApply) || attempt >= recurseApplyRetryLimit {
					return err
				}
			}
		}
	}
	return nil
}

// buildNode derives a graph node from a build result. Declared files that
// do not exist on disk are skipped silently — the build tool may declare
// conditionally excluded files.
func buildNode(res *model.BuildResult, d dialect.Dialect) *graph.Node {
	documents := make([]graph.Document, 0, len(res.SourceFiles))
	for _, path := range res.SourceFiles {
		text, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		documents = append(documents, graph.Document{Path: path, Text: string(text)})
	}

	metadataRefs := make([]string, 0, len(res.MetadataReferences))
	for _, path := range res.MetadataReferences {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		metadataRefs = append(metadataRefs, path)
	}

	return &graph.Node{
		ID:                 res.ProjectID,
		Name:               res.DisplayName(),
		Path:               res.ProjectPath,
		Dialect:            d,
		Documents:          documents,
		MetadataReferences: metadataRefs,
		DeclaredReferences: append([]string(nil), res.ProjectReferences...),
		Kind:               graph.KindForOutputType(res.Property(model.PropertyOutputType)),
		OutputPath:         res.Property(model.PropertyTargetPath),
		ParseConfig: dialect.NewParseConfig(d, dialect.Properties{
			DefineConstants: res.Property(model.PropertyDefineConstants),
			Features:        res.Property(model.PropertyFeatures),
			LangVersion:     res.Property(model.PropertyLangVersion),
		}),
	}
}
