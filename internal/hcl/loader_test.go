package hcl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgraphgo/internal/testutil"
)

const sampleConfig = `
toolchain {
  program     = "msbuild"
  arguments   = "-nologo -verbosity:quiet"
  working_dir = "/repo"
  env = {
    MSBuildExtensionsPath = "/opt/msbuild"
    BuildParallel         = true
  }
}

properties {
  Configuration = "Debug"
  Platform      = "AnyCPU"
}

project "src/App/App.csproj" {
  recurse = true
}

project "src/Lib/Lib.vbproj" {}
`

func TestLoad_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "buildgraph.hcl", sampleConfig)

	model, err := NewLoader().Load(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, "msbuild", model.Toolchain.Program)
	assert.Equal(t, "-nologo -verbosity:quiet", model.Toolchain.Arguments)
	assert.Equal(t, "/repo", model.Toolchain.WorkingDir)
	assert.Equal(t, map[string]string{
		"MSBuildExtensionsPath": "/opt/msbuild",
		"BuildParallel":         "true",
	}, model.Toolchain.Env)

	assert.Equal(t, map[string]string{
		"Configuration": "Debug",
		"Platform":      "AnyCPU",
	}, model.Properties)

	require.Len(t, model.Projects, 2)
	assert.Equal(t, "src/App/App.csproj", model.Projects[0].Path)
	assert.True(t, model.Projects[0].Recurse)
	assert.Equal(t, "src/Lib/Lib.vbproj", model.Projects[1].Path)
	assert.False(t, model.Projects[1].Recurse)
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "toolchain.hcl", `
toolchain {
  program = "dotnet"
  arguments = "msbuild"
}
`)
	testutil.WriteFile(t, dir, "nested/projects.hcl", `
project "a.csproj" {}
project "b.csproj" {}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "dotnet", model.Toolchain.Program)
	assert.Len(t, model.Projects, 2)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing toolchain", func(t *testing.T) {
		dir := t.TempDir()
		file := testutil.WriteFile(t, dir, "a.hcl", `project "a.csproj" {}`)
		_, err := NewLoader().Load(context.Background(), file)
		assert.ErrorContains(t, err, "no toolchain block")
	})

	t.Run("duplicate toolchain", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "a.hcl", `toolchain { program = "msbuild" }`)
		testutil.WriteFile(t, dir, "b.hcl", `toolchain { program = "dotnet" }`)
		_, err := NewLoader().Load(context.Background(), dir)
		assert.ErrorContains(t, err, "duplicate toolchain block")
	})

	t.Run("empty program", func(t *testing.T) {
		dir := t.TempDir()
		file := testutil.WriteFile(t, dir, "a.hcl", `toolchain { program = "" }`)
		_, err := NewLoader().Load(context.Background(), file)
		assert.ErrorContains(t, err, "program must not be empty")
	})

	t.Run("nonexistent path", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), "/does/not/exist.hcl")
		assert.Error(t, err)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		dir := t.TempDir()
		file := testutil.WriteFile(t, dir, "a.hcl", `toolchain { program = `)
		_, err := NewLoader().Load(context.Background(), file)
		assert.ErrorContains(t, err, "failed to parse")
	})
}
