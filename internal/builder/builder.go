package builder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/buildgraphgo/internal/config"
	"github.com/vk/buildgraphgo/internal/ctxlog"
	"github.com/vk/buildgraphgo/internal/model"
	"github.com/vk/buildgraphgo/internal/supervisor"
)

// Builder runs the configured toolchain for one project at a time. It is
// stateless across builds and safe for concurrent use.
type Builder struct {
	toolchain  config.Toolchain
	properties map[string]string
}

// New creates a builder for the given toolchain. Global properties are
// passed to every invocation as -p:Name=Value arguments.
func New(toolchain config.Toolchain, globalProperties map[string]string) *Builder {
	props := make(map[string]string, len(globalProperties))
	for name, value := range globalProperties {
		props[name] = value
	}
	return &Builder{toolchain: toolchain, properties: props}
}

// Build invokes the toolchain for projectPath, blocks until it exits, and
// parses the captured marker lines into build results. Launch failures
// wrap supervisor.ErrLaunch; a non-zero exit is fatal to the invocation.
func (b *Builder) Build(ctx context.Context, projectPath string) ([]*model.BuildResult, error) {
	logger := ctxlog.FromContext(ctx).With("project", projectPath)

	inv := supervisor.Invocation{
		Program:    b.toolchain.Program,
		Arguments:  b.arguments(projectPath),
		WorkingDir: b.toolchain.WorkingDir,
		Env:        b.toolchain.Env,
	}

	sink := supervisor.NewOutputSink()
	sup := supervisor.New(inv,
		supervisor.WithSink(sink),
		supervisor.WithObserver(func(line string) {
			logger.Debug("Toolchain output.", "line", line)
		}),
	)
	defer sup.Dispose()

	logger.Info("Building project.", "program", inv.Program, "arguments", inv.Arguments)
	if err := sup.Start(ctx); err != nil {
		return nil, err
	}

	code, err := sup.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("waiting for toolchain: %w", err)
	}
	logger.Debug("Toolchain finished.", "pid", sup.PID(), "exit_code", code)
	if code != 0 {
		return nil, fmt.Errorf("toolchain exited with code %d for %s", code, projectPath)
	}

	results, err := parseResults(sink.Lines())
	if err != nil {
		return nil, fmt.Errorf("parsing toolchain output for %s: %w", projectPath, err)
	}
	return results, nil
}

// arguments appends the global properties and the project path to the base
// argument string, quoting values that carry whitespace.
func (b *Builder) arguments(projectPath string) string {
	var sb strings.Builder
	sb.WriteString(b.toolchain.Arguments)

	names := make([]string, 0, len(b.properties))
	for name := range b.properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteByte(' ')
		sb.WriteString(quoteArg("-p:" + name + "=" + b.properties[name]))
	}

	sb.WriteByte(' ')
	sb.WriteString(quoteArg(projectPath))
	return strings.TrimSpace(sb.String())
}

// quoteArg quotes an argument so the supervisor's tokenizer yields it back
// verbatim. Whitespace-free arguments without quote characters pass through
// unquoted; embedded quotes switch the wrapping style, and an argument
// carrying both kinds is spliced from alternating quoted chunks, which the
// tokenizer concatenates.
func quoteArg(arg string) string {
	switch {
	case !strings.ContainsAny(arg, " \t'\""):
		return arg
	case !strings.Contains(arg, `"`):
		return `"` + arg + `"`
	case !strings.Contains(arg, "'"):
		return "'" + arg + "'"
	default:
		return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
	}
}
