package dialect

import "strings"

// Properties carries the raw build property values the parse configuration
// is derived from. Absent properties are empty strings, never errors.
type Properties struct {
	DefineConstants string
	Features        string
	LangVersion     string
}

// ParseConfig is the dialect-specific parse configuration attached to a
// graph node.
type ParseConfig interface {
	Dialect() Dialect
	PreprocessorSymbols() []string
	FeatureFlags() []string
}

// configBuilder is the shared seam both dialects implement, so the two
// nearly identical option paths cannot silently diverge: symbol and
// feature splitting happens once, and only version parsing is per-dialect.
type configBuilder interface {
	build(symbols, features []string, langVersion string) ParseConfig
}

// NewParseConfig builds the parse configuration for the given dialect.
func NewParseConfig(d Dialect, props Properties) ParseConfig {
	symbols := splitSymbols(props.DefineConstants)
	features := splitFeatures(props.Features)

	var b configBuilder
	switch d {
	case VisualBasic:
		b = visualBasicBuilder{}
	default:
		b = csharpBuilder{}
	}
	return b.build(symbols, features, props.LangVersion)
}

// splitSymbols parses the semicolon-delimited preprocessor constant list.
// An absent value yields no symbols.
func splitSymbols(defineConstants string) []string {
	symbols := make([]string, 0)
	for _, part := range strings.Split(defineConstants, ";") {
		if part = strings.TrimSpace(part); part != "" {
			symbols = append(symbols, part)
		}
	}
	return symbols
}

// splitFeatures parses the free-form compiler feature flag list, which
// tools emit separated by whitespace, semicolons or commas.
func splitFeatures(features string) []string {
	flags := make([]string, 0)
	for _, part := range strings.FieldsFunc(features, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ';' || r == ','
	}) {
		if part = strings.TrimSpace(part); part != "" {
			flags = append(flags, part)
		}
	}
	return flags
}
