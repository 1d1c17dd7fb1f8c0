package builder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vk/buildgraphgo/internal/model"
)

// markerPrefix introduces one machine-readable event on the toolchain's
// stdout.
const markerPrefix = "#graph:"

// event is one decoded marker payload. Fields are populated per kind.
type event struct {
	Event   string `json:"event"`
	Project string `json:"project,omitempty"` // begin
	Name    string `json:"name,omitempty"`    // property
	Value   string `json:"value,omitempty"`   // property, id
	Path    string `json:"path,omitempty"`    // source, metadata_reference, project_reference
}

// pending accumulates one begin..end block.
type pending struct {
	project      string
	id           string
	sources      []string
	metadataRefs []string
	projectRefs  []string
	properties   map[string]string
}

// parseResults extracts build results from captured output lines.
// Non-marker lines are skipped; a corrupt marker line or an ill-formed
// block structure is a hard error, since the protocol is load-bearing.
func parseResults(lines []string) ([]*model.BuildResult, error) {
	var (
		results []*model.BuildResult
		open    *pending
	)

	for i, line := range lines {
		payload, ok := strings.CutPrefix(strings.TrimSpace(line), markerPrefix)
		if !ok {
			continue
		}

		var ev event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("malformed marker on line %d: %w", i+1, err)
		}

		if ev.Event == "begin" {
			if open != nil {
				return nil, fmt.Errorf("line %d: begin inside an open block for %q", i+1, open.project)
			}
			if ev.Project == "" {
				return nil, fmt.Errorf("line %d: begin without a project path", i+1)
			}
			open = &pending{project: ev.Project, properties: make(map[string]string)}
			continue
		}
		if open == nil {
			return nil, fmt.Errorf("line %d: %q event outside a begin..end block", i+1, ev.Event)
		}

		switch ev.Event {
		case "id":
			open.id = ev.Value
		case "property":
			open.properties[ev.Name] = ev.Value
		case "source":
			open.sources = append(open.sources, ev.Path)
		case "metadata_reference":
			open.metadataRefs = append(open.metadataRefs, ev.Path)
		case "project_reference":
			open.projectRefs = append(open.projectRefs, ev.Path)
		case "end":
			results = append(results, model.NewBuildResult(
				open.project, open.id,
				open.sources, open.metadataRefs, open.projectRefs,
				open.properties,
			))
			open = nil
		default:
			return nil, fmt.Errorf("line %d: unknown event %q", i+1, ev.Event)
		}
	}

	if open != nil {
		return nil, fmt.Errorf("output ended inside an open block for %q", open.project)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("toolchain emitted no build results")
	}
	return results, nil
}
