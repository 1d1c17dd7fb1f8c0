package supervisor

import (
	"fmt"
	"os"
	"strings"
)

// Invocation describes one launch of an external program. It is immutable
// once constructed: build it with struct literal syntax and do not mutate
// it after passing it to New.
type Invocation struct {
	// Program is the path or name of the executable. Names without a path
	// separator are resolved against PATH at Start.
	Program string

	// Arguments is a single shell-style argument string. The caller is
	// responsible for quoting; the supervisor tokenizes on unquoted
	// whitespace and honors single and double quotes, but performs no
	// variable expansion or globbing.
	Arguments string

	// WorkingDir is the child's working directory. Empty means inherit.
	WorkingDir string

	// Env holds environment variable overrides applied on top of the
	// parent environment. Overrides win over inherited entries.
	Env map[string]string
}

// argv tokenizes the shell-style argument string. It returns an error for
// an unterminated quote, which would otherwise silently swallow arguments.
func (inv Invocation) argv() ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		started bool
	)
	for _, r := range inv.Arguments {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == ' ' || r == '\t' || r == '\n':
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %q quote in arguments", quote)
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}

// environ merges the override map into the parent environment in the flat
// KEY=VALUE form expected by os/exec. Later entries win: an override
// replaces every inherited occurrence of the same key.
func (inv Invocation) environ() []string {
	base := os.Environ()
	if len(inv.Env) == 0 {
		return base
	}

	merged := make([]string, 0, len(base)+len(inv.Env))
	overridden := make(map[string]bool, len(inv.Env))
	for _, entry := range base {
		name, _, ok := strings.Cut(entry, "=")
		if ok {
			if _, hit := inv.Env[name]; hit {
				if !overridden[name] {
					merged = append(merged, name+"="+inv.Env[name])
					overridden[name] = true
				}
				continue
			}
		}
		merged = append(merged, entry)
	}
	for name, value := range inv.Env {
		if !overridden[name] {
			merged = append(merged, name+"="+value)
		}
	}
	return merged
}
