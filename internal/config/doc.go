// Package config defines the unified, format-agnostic representation of
// the application configuration and the Loader interface that
// format-specific implementations (see internal/hcl) satisfy.
package config
