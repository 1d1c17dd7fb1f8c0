package graph

import (
	"github.com/google/uuid"

	"github.com/vk/buildgraphgo/internal/dialect"
)

// CompilationKind is the project's output kind, recovered from the
// OutputType build property.
type CompilationKind int

const (
	// CompilationKindUnspecified means the output type was missing or
	// unrecognized; analysis proceeds without enforced output-kind checks.
	CompilationKindUnspecified CompilationKind = iota
	DynamicLibrary
	ConsoleApp
	WindowsApp
	Module
)

// KindForOutputType maps the OutputType property value onto the closed
// compilation-kind set. Unknown values map to CompilationKindUnspecified.
func KindForOutputType(outputType string) CompilationKind {
	switch outputType {
	case "Library":
		return DynamicLibrary
	case "Exe":
		return ConsoleApp
	case "Winexe":
		return WindowsApp
	case "Module":
		return Module
	default:
		return CompilationKindUnspecified
	}
}

// Document is one compiler input file with its content loaded as text.
type Document struct {
	Path string
	Text string
}

// Node is one project in the graph.
type Node struct {
	// ID is the project identity the node was inserted under.
	ID uuid.UUID

	// Name is the display name (assembly name or file base name).
	Name string

	// Path is the cleaned project file path.
	Path string

	Dialect dialect.Dialect

	// Documents are the source files that existed on disk at insertion.
	Documents []Document

	// MetadataReferences are the binary dependency paths that existed on
	// disk at insertion.
	MetadataReferences []string

	// DeclaredReferences are the project-reference paths the build
	// declared, whether or not the referenced projects are in the graph.
	DeclaredReferences []string

	// References are outgoing edges, materialized only for referenced
	// projects present in the graph at (or retroactively after) insertion.
	References []uuid.UUID

	// Kind is CompilationKindUnspecified when the output type was
	// unrecognized.
	Kind CompilationKind

	// OutputPath is the built artifact path, when reported.
	OutputPath string

	ParseConfig dialect.ParseConfig
}

// Clone returns a deep copy; the ParseConfig is immutable and shared.
func (n *Node) Clone() *Node {
	c := *n
	c.Documents = append([]Document(nil), n.Documents...)
	c.MetadataReferences = append([]string(nil), n.MetadataReferences...)
	c.DeclaredReferences = append([]string(nil), n.DeclaredReferences...)
	c.References = append([]uuid.UUID(nil), n.References...)
	return &c
}

// HasReference reports whether the node already has an outgoing edge to
// the given project.
func (n *Node) HasReference(id uuid.UUID) bool {
	for _, ref := range n.References {
		if ref == id {
			return true
		}
	}
	return false
}
