package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqtxt/internal/ports"
	"reqtxt/internal/types"
)

type ReportWriterAdapter struct{}

func NewReportWriterAdapter() ReportWriterAdapter {
	return ReportWriterAdapter{}
}

func (a ReportWriterAdapter) RenderYAML(report types.ParseReport) ([]byte, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal report to yaml").
			WithCause(err)
	}
	return data, nil
}

func (a ReportWriterAdapter) RenderJSON(report types.ParseReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal report to json").
			WithCause(err)
	}
	return append(data, '\n'), nil
}

func (a ReportWriterAdapter) Write(path string, data []byte) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create report directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write report file").
			WithCause(err)
	}
	return nil
}

var _ ports.ReportPort = ReportWriterAdapter{}
