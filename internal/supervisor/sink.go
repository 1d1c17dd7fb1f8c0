package supervisor

import "sync"

// OutputSink is an ordered, append-only record of captured output lines.
// It is safe for concurrent use: the supervisor's reader goroutine appends
// while callers snapshot.
type OutputSink struct {
	mu    sync.Mutex
	lines []string
}

// NewOutputSink returns an empty sink.
func NewOutputSink() *OutputSink {
	return &OutputSink{}
}

func (s *OutputSink) append(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

// Lines returns a snapshot of the captured lines in arrival order.
func (s *OutputSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of captured lines.
func (s *OutputSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
