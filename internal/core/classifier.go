package core

import (
	"fmt"
	"strings"

	"reqtxt/internal/types"
)

type LineKind int

const (
	LineRequirement LineKind = iota
	LineGlobalOption
	LinePerEntryOption
	LineInclude
	LineConstraintInclude
	LineIgnored
)

// Classified is the outcome of classifying one logical line. Remainder is
// the include target, the option value text, or the specifier text
// depending on Kind. Diagnostic is set only for LineIgnored.
type Classified struct {
	Kind       LineKind
	Flag       string
	Remainder  string
	Editable   bool
	Span       types.Span
	Diagnostic *types.Diagnostic
}

var globalFlags = map[string]struct{}{
	"index-url":       {},
	"extra-index-url": {},
	"find-links":      {},
	"no-index":        {},
	"no-binary":       {},
	"only-binary":     {},
	"prefer-binary":   {},
	"pre":             {},
	"trusted-host":    {},
	"require-hashes":  {},
	"use-feature":     {},
}

var perEntryFlags = map[string]struct{}{
	"hash": {},
}

var deprecatedFlags = map[string]struct{}{
	"use-wheel":                {},
	"no-use-wheel":             {},
	"allow-external":           {},
	"allow-all-external":       {},
	"allow-unverified":         {},
	"always-unzip":             {},
	"process-dependency-links": {},
	"install-option":           {},
	"global-option":            {},
}

var shortFlags = map[byte]string{
	'r': "requirement",
	'c': "constraint",
	'e': "editable",
	'i': "index-url",
	'f': "find-links",
}

// Classify maps one trimmed logical line to its kind. Lines not starting
// with a dash are requirement specifiers. Unknown and deprecated flags
// classify as LineIgnored with a soft diagnostic instead of failing.
func Classify(line Line) Classified {
	if !strings.HasPrefix(line.Text, "-") {
		return Classified{Kind: LineRequirement, Remainder: line.Text, Span: line.Span}
	}
	flag, value, known := splitFlag(line.Text)
	if known {
		switch flag {
		case "requirement":
			return Classified{Kind: LineInclude, Flag: flag, Remainder: value, Span: line.Span}
		case "constraint":
			return Classified{Kind: LineConstraintInclude, Flag: flag, Remainder: value, Span: line.Span}
		case "editable":
			return Classified{Kind: LineRequirement, Flag: flag, Remainder: value, Editable: true, Span: line.Span}
		}
		if _, ok := globalFlags[flag]; ok {
			return Classified{Kind: LineGlobalOption, Flag: flag, Remainder: value, Span: line.Span}
		}
		if _, ok := perEntryFlags[flag]; ok {
			return Classified{Kind: LinePerEntryOption, Flag: flag, Remainder: value, Span: line.Span}
		}
		if _, ok := deprecatedFlags[flag]; ok {
			return Classified{
				Kind: LineIgnored,
				Span: line.Span,
				Diagnostic: &types.Diagnostic{
					Kind:    types.DiagnosticDeprecatedOption,
					Message: fmt.Sprintf("option --%s is deprecated and ignored", flag),
					Span:    line.Span,
				},
			}
		}
	}
	return Classified{
		Kind: LineIgnored,
		Span: line.Span,
		Diagnostic: &types.Diagnostic{
			Kind:    types.DiagnosticUnknownOption,
			Message: fmt.Sprintf("unknown option: %s", flagToken(line.Text)),
			Span:    line.Span,
		},
	}
}

// splitFlag separates the flag name from its value text. Long flags take
// `=` or whitespace separation; short flags additionally take the value
// attached (`-rdev.txt`) with an optional leading `=` tolerated.
func splitFlag(text string) (string, string, bool) {
	if strings.HasPrefix(text, "--") {
		body := text[2:]
		name := body
		value := ""
		if idx := strings.IndexAny(body, "= \t"); idx >= 0 {
			name = body[:idx]
			value = body[idx:]
			if strings.HasPrefix(value, "=") {
				value = value[1:]
			}
		}
		if name == "" {
			return "", "", false
		}
		return name, strings.TrimSpace(value), true
	}
	if len(text) < 2 {
		return "", "", false
	}
	name, ok := shortFlags[text[1]]
	if !ok {
		return "", "", false
	}
	value := strings.TrimPrefix(text[2:], "=")
	return name, strings.TrimSpace(value), true
}

func flagToken(text string) string {
	if idx := strings.IndexAny(text, "= \t"); idx >= 0 {
		return text[:idx]
	}
	return text
}
