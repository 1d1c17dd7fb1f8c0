package dialect

import (
	"math"
	"strconv"
	"strings"
)

// CSharpVersion is the C# language version code. Versions through 7 use
// the bare major number; point releases compose as major*100+minor
// (7.1 → 701, 8.0 → 800).
type CSharpVersion int

const (
	CSharpVersionDefault CSharpVersion = 0
	CSharpVersion7       CSharpVersion = 7
	CSharpVersionLatest  CSharpVersion = math.MaxInt32
)

// ParseCSharpVersion resolves a free-form LangVersion string. "latest"
// (case-insensitive) maps to the Latest sentinel; a numeric major.minor
// composes the version code, with 7.0 fixed up to the named CSharpVersion7
// alias; anything unparseable or absent falls back to the default version.
func ParseCSharpVersion(s string) CSharpVersion {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CSharpVersionDefault
	}
	if s == "latest" {
		return CSharpVersionLatest
	}

	majorStr, minorStr, ok := strings.Cut(s, ".")
	if !ok {
		return CSharpVersionDefault
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return CSharpVersionDefault
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil || minor < 0 {
		return CSharpVersionDefault
	}

	composed := CSharpVersion(major*100 + minor)
	if composed == 700 {
		// 7.0 predates composed codes and keeps its original value.
		return CSharpVersion7
	}
	return composed
}

// CSharpParseConfig is the C# parse configuration.
type CSharpParseConfig struct {
	Symbols  []string
	Features []string
	Version  CSharpVersion
}

func (CSharpParseConfig) Dialect() Dialect                { return CSharp }
func (c CSharpParseConfig) PreprocessorSymbols() []string { return c.Symbols }
func (c CSharpParseConfig) FeatureFlags() []string        { return c.Features }

type csharpBuilder struct{}

func (csharpBuilder) build(symbols, features []string, langVersion string) ParseConfig {
	return CSharpParseConfig{
		Symbols:  symbols,
		Features: features,
		Version:  ParseCSharpVersion(langVersion),
	}
}
