package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"reqtxt/internal/types"
)

func TestReportWriterRenderAndWrite(t *testing.T) {
	report := types.ParseReport{
		GeneratedAt: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		Result: types.ParseResult{
			Requirements: []types.RequirementEntry{{
				Specifier: types.Specifier{
					Kind:     types.SpecifierNamed,
					Name:     "flask",
					Versions: "==2.0",
				},
				Span: types.Span{Origin: "requirements.txt", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 10},
			}},
			Sources: []types.Origin{"requirements.txt"},
		},
	}

	adapter := NewReportWriterAdapter()

	yamlData, err := adapter.RenderYAML(report)
	require.NoError(t, err)
	require.Contains(t, string(yamlData), "name: flask")
	require.Contains(t, string(yamlData), "requirements.txt")

	jsonData, err := adapter.RenderJSON(report)
	require.NoError(t, err)
	require.Contains(t, string(jsonData), `"name": "flask"`)

	path := filepath.Join(t.TempDir(), "out", "report.yaml")
	require.NoError(t, adapter.Write(path, yamlData))
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(string(yamlData), string(written)); diff != "" {
		t.Fatalf("unexpected file content (-want +got):\n%s", diff)
	}
}

func TestReportWriterRejectsEmptyPath(t *testing.T) {
	err := NewReportWriterAdapter().Write("", []byte("x"))
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
