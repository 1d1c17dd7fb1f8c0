package dialect

import (
	"math"
	"strconv"
	"strings"
)

// VisualBasicVersion is the Visual Basic language version code.
type VisualBasicVersion int

const (
	VisualBasicVersionDefault VisualBasicVersion = 0
	VisualBasic9              VisualBasicVersion = 9
	VisualBasic10             VisualBasicVersion = 10
	VisualBasic11             VisualBasicVersion = 11
	VisualBasic12             VisualBasicVersion = 12
	VisualBasic14             VisualBasicVersion = 14
	VisualBasic15             VisualBasicVersion = 15
	VisualBasic15_3           VisualBasicVersion = 1503
	VisualBasic15_5           VisualBasicVersion = 1505
	VisualBasic16             VisualBasicVersion = 1600
	VisualBasic16_9           VisualBasicVersion = 1609
	VisualBasicVersionLatest  VisualBasicVersion = math.MaxInt32
)

// allVisualBasicVersions is the full enumeration the lookup table is built
// from. Order is irrelevant; display names must be unique.
var allVisualBasicVersions = []VisualBasicVersion{
	VisualBasicVersionDefault,
	VisualBasic9,
	VisualBasic10,
	VisualBasic11,
	VisualBasic12,
	VisualBasic14,
	VisualBasic15,
	VisualBasic15_3,
	VisualBasic15_5,
	VisualBasic16,
	VisualBasic16_9,
	VisualBasicVersionLatest,
}

// DisplayName returns the version string as it appears in project files.
func (v VisualBasicVersion) DisplayName() string {
	switch v {
	case VisualBasicVersionDefault:
		return "default"
	case VisualBasic15_3:
		return "15.3"
	case VisualBasic15_5:
		return "15.5"
	case VisualBasic16:
		return "16"
	case VisualBasic16_9:
		return "16.9"
	case VisualBasicVersionLatest:
		return "latest"
	default:
		// 9 through 15 carry their bare number.
		return strconv.Itoa(int(v))
	}
}

// visualBasicVersionTable maps lower-cased display names to version codes,
// precomputed once from the full enumeration.
var visualBasicVersionTable = func() map[string]VisualBasicVersion {
	table := make(map[string]VisualBasicVersion, len(allVisualBasicVersions))
	for _, v := range allVisualBasicVersions {
		table[strings.ToLower(v.DisplayName())] = v
	}
	return table
}()

// ParseVisualBasicVersion resolves a LangVersion string against the
// precomputed display-name table, falling back to the default version when
// absent or unrecognized.
func ParseVisualBasicVersion(s string) VisualBasicVersion {
	if v, ok := visualBasicVersionTable[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v
	}
	return VisualBasicVersionDefault
}

// VisualBasicParseConfig is the Visual Basic parse configuration.
type VisualBasicParseConfig struct {
	Symbols  []string
	Features []string
	Version  VisualBasicVersion
}

func (VisualBasicParseConfig) Dialect() Dialect                { return VisualBasic }
func (c VisualBasicParseConfig) PreprocessorSymbols() []string { return c.Symbols }
func (c VisualBasicParseConfig) FeatureFlags() []string        { return c.Features }

type visualBasicBuilder struct{}

func (visualBasicBuilder) build(symbols, features []string, langVersion string) ParseConfig {
	return VisualBasicParseConfig{
		Symbols:  symbols,
		Features: features,
		Version:  ParseVisualBasicVersion(langVersion),
	}
}
