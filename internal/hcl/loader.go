package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/buildgraphgo/internal/config"
	"github.com/vk/buildgraphgo/internal/ctxlog"
	"github.com/vk/buildgraphgo/internal/fsutil"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file reachable from the given paths (files or
// directories) and merges them into one model. Exactly one toolchain block
// must appear across all files; properties merge with later files winning;
// project blocks accumulate.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := collectFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl configuration files found in %v", paths)
	}
	logger.Debug("Loading configuration.", "files", files)

	model := &config.Model{Properties: make(map[string]string)}
	parser := hclparse.NewParser()
	toolchainSeen := false

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var parsed fileSchema
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		if parsed.Toolchain != nil {
			if toolchainSeen {
				return nil, fmt.Errorf("%s: duplicate toolchain block", file)
			}
			toolchainSeen = true
			tc, err := translateToolchain(parsed.Toolchain)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Toolchain = tc
		}

		if parsed.Properties != nil {
			props, err := stringMapFromBody(parsed.Properties.Body)
			if err != nil {
				return nil, fmt.Errorf("%s: properties: %w", file, err)
			}
			for name, value := range props {
				model.Properties[name] = value
			}
		}

		for _, p := range parsed.Projects {
			model.Projects = append(model.Projects, &config.Project{
				Path:    p.Path,
				Recurse: p.Recurse,
			})
		}
	}

	if !toolchainSeen {
		return nil, fmt.Errorf("configuration declares no toolchain block")
	}
	if model.Toolchain.Program == "" {
		return nil, fmt.Errorf("toolchain program must not be empty")
	}

	logger.Debug("Configuration loaded.", "projects", len(model.Projects), "properties", len(model.Properties))
	return model, nil
}

// collectFiles expands each path into the .hcl files it names: a file
// stands for itself, a directory for every .hcl file under it.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("configuration path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// translateToolchain converts the HCL block into the agnostic model.
func translateToolchain(block *toolchainBlock) (config.Toolchain, error) {
	tc := config.Toolchain{
		Program:    block.Program,
		Arguments:  block.Arguments,
		WorkingDir: block.WorkingDir,
	}
	if block.Env != nil {
		env, err := stringMapFromExpression(block.Env)
		if err != nil {
			return tc, fmt.Errorf("env: %w", err)
		}
		tc.Env = env
	}
	return tc, nil
}

// stringMapFromExpression evaluates a map-typed attribute expression into
// a Go string map, converting non-string element values where possible.
func stringMapFromExpression(expr hcl.Expression) (map[string]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("expected a map, got %s", val.Type().FriendlyName())
	}

	out := make(map[string]string)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		value, err := stringFromCty(v)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", k.AsString(), err)
		}
		out[k.AsString()] = value
	}
	return out, nil
}

// stringMapFromBody reads every attribute of a free-form block body as a
// string-valued entry.
func stringMapFromBody(body hcl.Body) (map[string]string, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		value, err := stringFromCty(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		out[name] = value
	}
	return out, nil
}

// stringFromCty converts a cty value to string, allowing implicit
// conversion from numbers and bools.
func stringFromCty(val cty.Value) (string, error) {
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to string: %w", val.Type().FriendlyName(), err)
	}
	if converted.IsNull() {
		return "", nil
	}
	return converted.AsString(), nil
}
