package supervisor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/vk/buildgraphgo/internal/ctxlog"
)

// ErrLaunch indicates the external program could not be started: missing
// binary, permission denied, or the OS refused to create the process.
var ErrLaunch = errors.New("failed to launch process")

// disposeDrainTimeout bounds how long Dispose waits for buffered output
// from a still-running process before abandoning it.
const disposeDrainTimeout = time.Second

// Option configures a Supervisor before Start.
type Option func(*Supervisor)

// WithSink attaches an ordered line sink. Attaching a sink enables output
// capture.
func WithSink(sink *OutputSink) Option {
	return func(s *Supervisor) { s.sink = sink }
}

// WithObserver attaches a per-line observer callback, invoked synchronously
// from the reader goroutine for each captured line. A panic inside the
// observer is swallowed: output capture is best-effort and must never take
// down the read loop. Attaching an observer enables output capture.
func WithObserver(fn func(line string)) Option {
	return func(s *Supervisor) { s.observer = fn }
}

// Supervisor owns one live OS process and its output stream. A Supervisor
// is single-use: construct, Start, Wait, Dispose.
type Supervisor struct {
	inv      Invocation
	sink     *OutputSink
	observer func(string)

	cmd     *exec.Cmd
	started bool
	pid     int

	// drained closes when the stdout reader has observed end-of-stream.
	// With capture disabled it closes at Start.
	drained chan struct{}
	// exited closes after the process has been reaped and exitCode is set.
	exited   chan struct{}
	exitCode int

	disposeOnce sync.Once
}

// New constructs a supervisor for the given invocation. The process is not
// started yet.
func New(inv Invocation, opts ...Option) *Supervisor {
	s := &Supervisor{
		inv:     inv,
		drained: make(chan struct{}),
		exited:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// captureOutput reports whether stdout should be redirected and read. When
// false the child inherits this process's stdout.
func (s *Supervisor) captureOutput() bool {
	return s.sink != nil || s.observer != nil
}

// Start launches the process and, if capture is configured, begins
// asynchronous line-oriented reading of its standard output. Launch
// failures wrap ErrLaunch and surface synchronously.
func (s *Supervisor) Start(ctx context.Context) error {
	if s.started {
		return errors.New("supervisor already started")
	}

	argv, err := s.inv.argv()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	cmd := exec.Command(s.inv.Program, argv...)
	cmd.Dir = s.inv.WorkingDir
	cmd.Env = s.inv.environ()
	cmd.Stderr = os.Stderr

	var pipe *bufio.Reader
	if s.captureOutput() {
		stdout, pipeErr := cmd.StdoutPipe()
		if pipeErr != nil {
			return fmt.Errorf("%w: %v", ErrLaunch, pipeErr)
		}
		pipe = bufio.NewReader(stdout)
	} else {
		cmd.Stdout = os.Stdout
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Launching process.", "program", s.inv.Program, "arguments", s.inv.Arguments, "dir", s.inv.WorkingDir)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	s.cmd = cmd
	s.started = true
	s.pid = cmd.Process.Pid
	logger.Debug("Process started.", "pid", s.pid)

	if pipe != nil {
		go s.readLines(pipe)
	} else {
		close(s.drained)
	}
	go s.reap(logger)

	return nil
}

// readLines pumps stdout lines to the sink and observer in arrival order.
// End-of-stream is terminal and is never delivered as data. Lines have no
// length cap: a fixed token limit would stall the pipe on oversized output
// and leave the child blocked on a write nobody drains.
func (s *Supervisor) readLines(r *bufio.Reader) {
	defer close(s.drained)
	for {
		line, err := r.ReadString('\n')
		if chunk := strings.TrimRight(line, "\r\n"); chunk != "" || err == nil {
			s.deliver(chunk)
		}
		if err != nil {
			return
		}
	}
}

// deliver hands one line to the sink and the observer.
func (s *Supervisor) deliver(line string) {
	if s.sink != nil {
		s.sink.append(line)
	}
	if s.observer != nil {
		s.observe(line)
	}
}

// observe invokes the observer, swallowing panics so a misbehaving callback
// cannot crash the read loop.
func (s *Supervisor) observe(line string) {
	defer func() { _ = recover() }()
	s.observer(line)
}

// reap waits for the output stream to drain, then collects the process exit
// status. Running after drain keeps Wait's guarantee that all output has
// been observed once the exit code is available.
func (s *Supervisor) reap(logger *slog.Logger) {
	<-s.drained
	err := s.cmd.Wait()
	switch {
	case err == nil:
		s.exitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ProcessState != nil {
			s.exitCode = exitErr.ProcessState.ExitCode()
		} else {
			s.exitCode = -1
		}
	}
	logger.Debug("Process exited.", "pid", s.pid, "exit_code", s.exitCode)
	close(s.exited)
}

// Wait blocks until the process has exited and all captured output has been
// delivered, then returns the exit code. It fails if the supervisor was
// never started or the context is canceled first.
func (s *Supervisor) Wait(ctx context.Context) (int, error) {
	if !s.started {
		return 0, errors.New("supervisor not started")
	}
	select {
	case <-s.exited:
		return s.exitCode, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// PID returns the process id, or 0 if the process was never started.
func (s *Supervisor) PID() int {
	return s.pid
}

// ExitCode returns the exit code and true once the process has exited.
func (s *Supervisor) ExitCode() (int, bool) {
	select {
	case <-s.exited:
		return s.exitCode, true
	default:
		return 0, false
	}
}

// Running reports whether the process was started and has not exited yet.
func (s *Supervisor) Running() bool {
	if !s.started {
		return false
	}
	select {
	case <-s.exited:
		return false
	default:
		return true
	}
}

// Dispose tears the supervisor down. It is safe to call in any state and
// never fails: calling it on a never-started or already-exited supervisor
// is expected. If the process has exited, Dispose blocks until buffered
// output has been fully drained. If the process is still running, Dispose
// waits a bounded interval for the drain and then returns regardless; the
// process keeps running detached and is reaped in the background whenever
// it finally exits.
func (s *Supervisor) Dispose() {
	s.disposeOnce.Do(func() {
		if !s.started {
			return
		}
		select {
		case <-s.drained:
		case <-time.After(disposeDrainTimeout):
		}
	})
}
