package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqtxt/internal/app"
	"reqtxt/internal/types"
	"reqtxt/tests/testutil"
)

// TestGoldenExport parses the development fixtures and compares the
// exported YAML report against a committed golden file. If the golden
// file does not exist yet (first run), it is written so it can be
// committed.
//
// To update the golden file after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenExport(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenDir := filepath.Join(root, "tests", "integration", "testdata", "golden")
	t.Chdir(root)

	service := newFixtureService(t)
	result, err := service.Export(t.Context(), app.ExportRequest{
		Path:   filepath.Join("fixtures", "requirements", "dev.txt"),
		Format: app.FormatYAML,
	})
	require.NoError(t, err)

	goldenPath := filepath.Join(goldenDir, "dev-report.yaml")
	if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
		// Golden file doesn't exist yet -- write it.
		require.NoError(t, os.MkdirAll(goldenDir, 0o755))
		require.NoError(t, os.WriteFile(goldenPath, result.Data, 0o644))
		t.Logf("golden file written: %s (commit it)", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(result.Data),
		"golden mismatch -- delete testdata/golden/ and re-run to regenerate")
}

// TestGoldenParseStructure verifies the structural properties of the
// fixture parse independent of exact serialization -- entry order,
// option accumulation, sources, diagnostics.
func TestGoldenParseStructure(t *testing.T) {
	root := testutil.RepoRoot(t)
	t.Chdir(root)

	service := newFixtureService(t)
	result, err := service.Parse(t.Context(), app.ParseRequest{
		Path: filepath.Join("fixtures", "requirements", "dev.txt"),
	})
	require.NoError(t, err)

	t.Run("requirements splice in document order", func(t *testing.T) {
		require.Len(t, result.Requirements, 7)
		names := make([]string, 0, len(result.Requirements))
		for _, entry := range result.Requirements {
			names = append(names, entry.Specifier.Name)
		}
		expected := []string{"flask", "requests", "click", "pytest", "pytest-cov", "", "black"}
		assert.Equal(t, expected, names)
	})

	t.Run("editable path requirement", func(t *testing.T) {
		entry := result.Requirements[5]
		assert.True(t, entry.Editable)
		assert.Equal(t, types.SpecifierPath, entry.Specifier.Kind)
		assert.Equal(t, "./tools/reqlint", entry.Specifier.Path)
	})

	t.Run("constraints come only from the constraint include", func(t *testing.T) {
		require.Len(t, result.Constraints, 3)
		names := make([]string, 0, len(result.Constraints))
		for _, entry := range result.Constraints {
			names = append(names, entry.Specifier.Name)
		}
		assert.Equal(t, []string{"urllib3", "idna", "certifi"}, names)
	})

	t.Run("options accumulate across the tree", func(t *testing.T) {
		assert.Equal(t, []string{"https://pypi.org/simple"}, result.Options.IndexURLs)
		assert.Equal(t, []string{"https://mirror.example.com/simple"}, result.Options.ExtraIndexURLs)
	})

	t.Run("inline hash pin forces hash checking", func(t *testing.T) {
		assert.True(t, result.HashesRequired)
		require.Len(t, result.Requirements[4].Hashes, 1)
		assert.Equal(t, "sha256", result.Requirements[4].Hashes[0].Algorithm)
	})

	t.Run("sources in depth-first order", func(t *testing.T) {
		expected := []types.Origin{
			types.Origin(filepath.Join("fixtures", "requirements", "dev.txt")),
			types.Origin(filepath.Join("fixtures", "requirements", "base.txt")),
			types.Origin(filepath.Join("fixtures", "requirements", "constraints.txt")),
		}
		assert.Equal(t, expected, result.Sources)
	})

	t.Run("deprecated option is ignored with a diagnostic", func(t *testing.T) {
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, types.DiagnosticDeprecatedOption, result.Diagnostics[0].Kind)
		assert.Equal(t, 10, result.Diagnostics[0].Span.StartLine)
	})
}

// TestGoldenHashedSet verifies the hash-checked fixture: every pin
// survives line continuations and --require-hashes marks the tree.
func TestGoldenHashedSet(t *testing.T) {
	root := testutil.RepoRoot(t)
	t.Chdir(root)

	service := newFixtureService(t)
	result, err := service.Parse(t.Context(), app.ParseRequest{
		Path: filepath.Join("fixtures", "requirements", "hashed.txt"),
	})
	require.NoError(t, err)

	assert.True(t, result.HashesRequired)
	assert.True(t, result.Options.RequireHashes)
	require.Len(t, result.Requirements, 2)
	assert.Len(t, result.Requirements[0].Hashes, 2)
	assert.Len(t, result.Requirements[1].Hashes, 1)
}

func newFixtureService(t *testing.T) app.Service {
	t.Helper()
	service, err := app.NewService(app.Config{})
	require.NoError(t, err)
	service.Clock = func() time.Time {
		return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	return service
}
