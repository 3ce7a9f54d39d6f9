package types

type SpecifierKind string

const (
	SpecifierNamed SpecifierKind = "named"
	SpecifierURL   SpecifierKind = "url"
	SpecifierPath  SpecifierKind = "path"
	SpecifierVCS   SpecifierKind = "vcs"
)

type DiagnosticKind string

const (
	DiagnosticUnknownOption    DiagnosticKind = "unknown-option"
	DiagnosticDeprecatedOption DiagnosticKind = "deprecated-option"
	DiagnosticRedundantOption  DiagnosticKind = "redundant-option"
)
