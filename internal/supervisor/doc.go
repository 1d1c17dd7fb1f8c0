// Package supervisor manages the lifecycle of one external toolchain
// process: launch, ordered line-by-line capture of standard output, exit
// tracking, and deterministic teardown.
//
// A Supervisor owns exactly one OS process. Output capture is optional and
// best-effort: callers attach an OutputSink and/or a per-line observer
// before Start, and the supervisor guarantees that every captured line is
// delivered in the order the child wrote it. Exit is exposed as a blocking
// Wait rather than a callback, so callers never receive notifications on an
// arbitrary goroutine.
//
// Dispose is the synchronization point for teardown. It is safe to call in
// any state (never started, still running, already exited) and guarantees
// that buffered output has been drained before it returns — bounded by
// roughly one second if the process is still running, in which case the
// process keeps running detached from further observation.
package supervisor
