package app

import "reqtxt/internal/types"

type ParseRequest struct {
	Path string
}

type CheckRequest struct {
	Paths []string
}

type CheckFileSummary struct {
	Path           string
	Requirements   int
	Constraints    int
	Sources        int
	HashesRequired bool
	Diagnostics    []types.Diagnostic
}

type CheckResult struct {
	Files []CheckFileSummary
}

type ExportRequest struct {
	Path   string
	Format string
	Output string
}

type ExportResult struct {
	Data       []byte
	OutputPath string
}

type ListRequest struct {
	Path         string
	Constraints  bool
	EditableOnly bool
}

type ListEntry struct {
	Text     string
	Name     string
	Editable bool
	Span     types.Span
}

type ListResult struct {
	Entries []ListEntry
}
