package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgraphgo/internal/config"
	"github.com/vk/buildgraphgo/internal/supervisor"
	"github.com/vk/buildgraphgo/internal/testutil"
)

// fakeToolchainScript echoes a marker block for the project path it was
// handed as its last argument, surrounded by ordinary build noise.
const fakeToolchainScript = `#!/bin/sh
for last; do :; done
echo "Restore complete."
echo "#graph: {\"event\":\"begin\",\"project\":\"$last\"}"
echo "#graph: {\"event\":\"property\",\"name\":\"OutputType\",\"value\":\"Library\"}"
echo "#graph: {\"event\":\"source\",\"path\":\"src/Lib.cs\"}"
echo "#graph: {\"event\":\"end\"}"
echo "Build succeeded."
`

func TestBuild_ParsesMarkerOutput(t *testing.T) {
	dir := t.TempDir()
	program := testutil.WriteExecutable(t, dir, "fakebuild", fakeToolchainScript)

	b := New(config.Toolchain{Program: program, Arguments: "-nologo"}, nil)
	results, err := b.Build(context.Background(), "src/Lib.csproj")
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "src/Lib.csproj", res.ProjectPath)
	assert.Equal(t, "Library", res.Property("OutputType"))
	assert.Equal(t, []string{"src/Lib.cs"}, res.SourceFiles)
}

func TestBuild_NonZeroExitIsFatal(t *testing.T) {
	dir := t.TempDir()
	program := testutil.WriteExecutable(t, dir, "failbuild", "#!/bin/sh\necho broken >&2\nexit 2\n")

	b := New(config.Toolchain{Program: program}, nil)
	_, err := b.Build(context.Background(), "src/Lib.csproj")
	require.Error(t, err)
	assert.ErrorContains(t, err, "exited with code 2")
}

func TestBuild_MissingProgram(t *testing.T) {
	b := New(config.Toolchain{Program: "no-such-toolchain-xyz"}, nil)
	_, err := b.Build(context.Background(), "a.csproj")
	require.Error(t, err)
	assert.ErrorIs(t, err, supervisor.ErrLaunch)
}

func TestArguments(t *testing.T) {
	b := New(config.Toolchain{Arguments: "-nologo -t:Build"}, map[string]string{
		"Configuration": "Debug Strict",
		"Platform":      "AnyCPU",
	})

	got := b.arguments("src/My App.csproj")
	assert.Equal(t,
		`-nologo -t:Build "-p:Configuration=Debug Strict" -p:Platform=AnyCPU "src/My App.csproj"`,
		got)
}

func TestQuoteArg(t *testing.T) {
	cases := []struct {
		arg  string
		want string
	}{
		{"-p:Define=TRACE", "-p:Define=TRACE"},
		{"-p:Out=bin dir", `"-p:Out=bin dir"`},
		{`-p:X=a"b c`, `'-p:X=a"b c'`},
		{"-p:Y=it's fine", `"-p:Y=it's fine"`},
		{`-p:Z=a"b 'c'`, `'-p:Z=a"b '"'"'c'"'"''`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, quoteArg(tc.arg), tc.arg)
	}
}
