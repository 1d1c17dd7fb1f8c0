// Package dialect resolves a project file to one of the two supported
// source dialects and builds the dialect-specific parse configuration
// (preprocessor symbols, feature flags, language version) from build
// properties.
package dialect

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedLanguage indicates a project file extension outside the
// recognized dialect set.
var ErrUnsupportedLanguage = errors.New("unsupported project language")

// Dialect is a closed tag identifying the source language of a project.
type Dialect int

const (
	CSharp Dialect = iota + 1
	VisualBasic
)

// String returns the dialect's display name.
func (d Dialect) String() string {
	switch d {
	case CSharp:
		return "csharp"
	case VisualBasic:
		return "visualbasic"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ForPath derives the dialect from the project file extension. Exactly two
// extensions are recognized; anything else is ErrUnsupportedLanguage.
func ForPath(path string) (Dialect, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csproj":
		return CSharp, nil
	case ".vbproj":
		return VisualBasic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, path)
	}
}
