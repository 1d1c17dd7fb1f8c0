package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath points at a single .hcl file or a directory of .hcl
	// files describing the toolchain, global properties, and projects.
	ConfigPath string

	// ProjectPath optionally names an extra project file, or a directory
	// to scan for project files, loaded in addition to the configured
	// projects.
	ProjectPath string

	// Recurse applies to projects named via ProjectPath; projects from
	// the configuration carry their own per-project setting.
	Recurse bool

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return &cfg, nil
}
