package ports

import "reqtxt/internal/types"

type ReportPort interface {
	RenderYAML(report types.ParseReport) ([]byte, error)
	RenderJSON(report types.ParseReport) ([]byte, error)
	Write(path string, data []byte) error
}
