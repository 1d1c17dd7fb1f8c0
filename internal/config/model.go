package config

// Model is the unified representation of the entire application
// configuration: the toolchain to invoke, global build properties, and the
// projects to load.
type Model struct {
	Toolchain  Toolchain
	Properties map[string]string
	Projects   []*Project
}

// Toolchain describes the external build program.
type Toolchain struct {
	// Program is the executable path or name.
	Program string

	// Arguments is the base shell-style argument string; per-project
	// arguments are appended to it.
	Arguments string

	// WorkingDir is the directory builds run in. Empty means inherit.
	WorkingDir string

	// Env holds environment overrides for the build process; overrides
	// win over the inherited environment.
	Env map[string]string
}

// Project is one project file to build and insert into the workspace.
type Project struct {
	// Path of the project file.
	Path string

	// Recurse requests transitive insertion of referenced projects that
	// are not loaded yet.
	Recurse bool
}
