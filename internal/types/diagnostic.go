package types

// Diagnostic is a non-fatal finding (unknown flag, deprecated option).
// Diagnostics never abort a parse and are always delivered, both in the
// result and through the warnings sink as they occur.
type Diagnostic struct {
	Kind    DiagnosticKind `yaml:"kind" json:"kind"`
	Message string         `yaml:"message" json:"message"`
	Span    Span           `yaml:"span" json:"span"`
}
