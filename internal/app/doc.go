// Package app wires the application together: configuration loading, logger
// construction, workspace and syncer assembly, and the run lifecycle. It is
// decoupled from any specific entrypoint such as the CLI.
package app
