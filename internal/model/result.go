package model

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Well-known build property names.
const (
	PropertyOutputType      = "OutputType"
	PropertyAssemblyName    = "AssemblyName"
	PropertyTargetPath      = "TargetPath"
	PropertyDefineConstants = "DefineConstants"
	PropertyLangVersion     = "LangVersion"
	PropertyFeatures        = "Features"
)

// BuildResult is an immutable snapshot of one completed build of one
// project file. Construct it with NewBuildResult and treat it as read-only
// afterwards.
type BuildResult struct {
	// ProjectPath is the cleaned path of the project file that was built.
	ProjectPath string

	// ProjectID is the project's stable identity. When the build did not
	// report one, a fresh identity is minted and IDGenerated is true; such
	// projects have no identity continuity across re-builds.
	ProjectID   uuid.UUID
	IDGenerated bool

	// SourceFiles are the compiler input files the build declared. They
	// may include conditionally excluded files that do not exist on disk.
	SourceFiles []string

	// MetadataReferences are paths to compiled binary dependencies.
	MetadataReferences []string

	// ProjectReferences are paths to other project files this one depends on.
	ProjectReferences []string

	// Properties maps build property names to their string values.
	Properties map[string]string
}

// NewBuildResult builds an immutable result snapshot. The reported id may
// be empty or malformed, in which case a fresh identity is minted. All
// slices and the property map are copied, and every path is cleaned so
// later graph lookups compare like with like. Absent collections become
// explicit empty slices, never nil.
func NewBuildResult(projectPath, reportedID string, sources, metadataRefs, projectRefs []string, properties map[string]string) *BuildResult {
	id, err := uuid.Parse(strings.TrimSpace(reportedID))
	generated := false
	if err != nil || id == uuid.Nil {
		id = uuid.New()
		generated = true
	}

	props := make(map[string]string, len(properties))
	for name, value := range properties {
		props[name] = value
	}

	return &BuildResult{
		ProjectPath:        filepath.Clean(projectPath),
		ProjectID:          id,
		IDGenerated:        generated,
		SourceFiles:        cleanAll(sources),
		MetadataReferences: cleanAll(metadataRefs),
		ProjectReferences:  cleanAll(projectRefs),
		Properties:         props,
	}
}

// Property returns the named build property value, or "" when absent.
func (r *BuildResult) Property(name string) string {
	return r.Properties[name]
}

// DisplayName is the project's human-readable name: the AssemblyName
// property when the build supplied one, otherwise the project file's base
// name without extension.
func (r *BuildResult) DisplayName() string {
	if name := strings.TrimSpace(r.Property(PropertyAssemblyName)); name != "" {
		return name
	}
	base := filepath.Base(r.ProjectPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func cleanAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Clean(p))
	}
	return out
}
