// Package builder is the build orchestrator: it invokes the external
// toolchain for one project under the process supervisor, captures the
// toolchain's stdout, and parses the machine-readable "#graph:" marker
// lines into immutable BuildResult snapshots.
//
// The marker protocol is line-oriented: every marker line is the prefix
// "#graph:" followed by one JSON event. A build emits one begin..end block
// per produced result (a multi-target build emits several). All other
// stdout lines are ordinary build noise and are ignored by the parser,
// though they are still captured and logged.
package builder
