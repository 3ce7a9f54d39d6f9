package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtxt/internal/types"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Export parses the file and renders the full result as YAML or JSON.
// When Output is set the rendering is also written there.
func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatYAML
	}
	if format != FormatYAML && format != FormatJSON {
		return ExportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported export format: %s", req.Format))
	}
	parsed, err := s.Parse(ctx, ParseRequest{Path: req.Path})
	if err != nil {
		return ExportResult{}, err
	}
	report := types.ParseReport{
		GeneratedAt: s.now(),
		Result:      *parsed,
	}
	var data []byte
	if format == FormatJSON {
		data, err = s.Report.RenderJSON(report)
	} else {
		data, err = s.Report.RenderYAML(report)
	}
	if err != nil {
		return ExportResult{}, err
	}
	output := strings.TrimSpace(req.Output)
	if output != "" {
		if err := s.Report.Write(output, data); err != nil {
			return ExportResult{}, err
		}
	}
	return ExportResult{Data: data, OutputPath: output}, nil
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}
