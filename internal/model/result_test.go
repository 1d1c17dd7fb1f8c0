package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildResult_ReportedID(t *testing.T) {
	id := uuid.New()
	res := NewBuildResult("a/b.csproj", id.String(), nil, nil, nil, nil)
	assert.Equal(t, id, res.ProjectID)
	assert.False(t, res.IDGenerated)
}

func TestNewBuildResult_MintsIDWhenAbsent(t *testing.T) {
	first := NewBuildResult("a/b.csproj", "", nil, nil, nil, nil)
	second := NewBuildResult("a/b.csproj", "not-a-guid", nil, nil, nil, nil)

	require.NotEqual(t, uuid.Nil, first.ProjectID)
	require.NotEqual(t, uuid.Nil, second.ProjectID)
	assert.True(t, first.IDGenerated)
	assert.True(t, second.IDGenerated)
	// No continuity when the build reports no identifier.
	assert.NotEqual(t, first.ProjectID, second.ProjectID)
}

func TestNewBuildResult_ExplicitEmptyCollections(t *testing.T) {
	res := NewBuildResult("p.csproj", "", nil, nil, nil, nil)
	assert.NotNil(t, res.SourceFiles)
	assert.NotNil(t, res.MetadataReferences)
	assert.NotNil(t, res.ProjectReferences)
	assert.Empty(t, res.SourceFiles)
}

func TestNewBuildResult_CleansPaths(t *testing.T) {
	res := NewBuildResult("./x/../p.csproj", "", []string{"src//main.cs"}, nil, []string{"./dep.csproj"}, nil)
	assert.Equal(t, "p.csproj", res.ProjectPath)
	assert.Equal(t, []string{"src/main.cs"}, res.SourceFiles)
	assert.Equal(t, []string{"dep.csproj"}, res.ProjectReferences)
}

func TestDisplayName(t *testing.T) {
	t.Run("from AssemblyName property", func(t *testing.T) {
		res := NewBuildResult("src/App.csproj", "", nil, nil, nil, map[string]string{
			PropertyAssemblyName: "MyApp",
		})
		assert.Equal(t, "MyApp", res.DisplayName())
	})

	t.Run("falls back to file base name", func(t *testing.T) {
		res := NewBuildResult("src/App.csproj", "", nil, nil, nil, nil)
		assert.Equal(t, "App", res.DisplayName())
	})
}
