package builder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResults_SingleBlock(t *testing.T) {
	id := uuid.New()
	lines := []string{
		"Restoring packages...",
		`#graph: {"event":"begin","project":"src/App.csproj"}`,
		`#graph: {"event":"id","value":"` + id.String() + `"}`,
		`#graph: {"event":"property","name":"OutputType","value":"Exe"}`,
		`#graph: {"event":"property","name":"LangVersion","value":"latest"}`,
		`#graph: {"event":"source","path":"src/Program.cs"}`,
		`#graph: {"event":"metadata_reference","path":"deps/System.dll"}`,
		`#graph: {"event":"project_reference","path":"src/Lib.csproj"}`,
		`#graph: {"event":"end"}`,
		"Build succeeded.",
	}

	results, err := parseResults(lines)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "src/App.csproj", res.ProjectPath)
	assert.Equal(t, id, res.ProjectID)
	assert.False(t, res.IDGenerated)
	assert.Equal(t, "Exe", res.Property("OutputType"))
	assert.Equal(t, []string{"src/Program.cs"}, res.SourceFiles)
	assert.Equal(t, []string{"deps/System.dll"}, res.MetadataReferences)
	assert.Equal(t, []string{"src/Lib.csproj"}, res.ProjectReferences)
}

func TestParseResults_MintsIDWhenNotReported(t *testing.T) {
	results, err := parseResults([]string{
		`#graph: {"event":"begin","project":"a.csproj"}`,
		`#graph: {"event":"end"}`,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IDGenerated)
	assert.NotEqual(t, uuid.Nil, results[0].ProjectID)
}

func TestParseResults_MultipleBlocks(t *testing.T) {
	results, err := parseResults([]string{
		`#graph: {"event":"begin","project":"a.csproj"}`,
		`#graph: {"event":"end"}`,
		"intermediate noise",
		`#graph: {"event":"begin","project":"b.vbproj"}`,
		`#graph: {"event":"end"}`,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.csproj", results[0].ProjectPath)
	assert.Equal(t, "b.vbproj", results[1].ProjectPath)
}

func TestParseResults_Errors(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "no results",
			lines: []string{"just noise"},
			want:  "no build results",
		},
		{
			name:  "malformed json",
			lines: []string{`#graph: {event}`},
			want:  "malformed marker",
		},
		{
			name: "event outside block",
			lines: []string{
				`#graph: {"event":"source","path":"a.cs"}`,
			},
			want: "outside a begin..end block",
		},
		{
			name: "nested begin",
			lines: []string{
				`#graph: {"event":"begin","project":"a.csproj"}`,
				`#graph: {"event":"begin","project":"b.csproj"}`,
			},
			want: "inside an open block",
		},
		{
			name: "unterminated block",
			lines: []string{
				`#graph: {"event":"begin","project":"a.csproj"}`,
			},
			want: "ended inside an open block",
		},
		{
			name: "unknown event",
			lines: []string{
				`#graph: {"event":"begin","project":"a.csproj"}`,
				`#graph: {"event":"frobnicate"}`,
			},
			want: "unknown event",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseResults(tc.lines)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}
