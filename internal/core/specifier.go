package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtxt/internal/ports"
	"reqtxt/internal/types"
)

// splitSpecifierOptions separates the specifier text from trailing
// per-entry option tokens: everything from the first whitespace-separated
// `--` token onward is option territory. The specifier side is rejoined
// with single spaces, which is insignificant to the grammar.
func splitSpecifierOptions(text string) (string, []string) {
	fields := strings.Fields(text)
	for idx, field := range fields {
		if strings.HasPrefix(field, "--") {
			return strings.Join(fields[:idx], " "), fields[idx:]
		}
	}
	return strings.Join(fields, " "), nil
}

// resolveSpecifier forwards specifier text to the grammar port and wraps a
// rejection with the logical line's span so the message names file and
// line.
func resolveSpecifier(grammar ports.SpecifierGrammar, text string, span types.Span) (types.Specifier, error) {
	if text == "" {
		return types.Specifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: missing requirement specifier", span))
	}
	specifier, err := grammar.ParseSpecifier(text)
	if err != nil {
		return types.Specifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: invalid requirement %q: %v", span, text, err)).
			WithCause(err)
	}
	return specifier, nil
}

// parseEntryOptions walks the trailing option tokens of one requirement
// line. `--hash` repeats and accepts attached or separated values. Unknown
// tokens produce soft diagnostics and, when they look like a valued long
// flag, swallow the following bare token as their value.
func parseEntryOptions(tokens []string, span types.Span) ([]types.HashPin, []types.Diagnostic, error) {
	var pins []types.HashPin
	var diagnostics []types.Diagnostic
	for idx := 0; idx < len(tokens); idx++ {
		token := tokens[idx]
		switch {
		case token == "--hash":
			if idx+1 >= len(tokens) || strings.HasPrefix(tokens[idx+1], "-") {
				return nil, nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("%s: option --hash requires a value", span))
			}
			idx++
			pin, err := parseHashPin(tokens[idx], span)
			if err != nil {
				return nil, nil, err
			}
			pins = append(pins, pin)
		case strings.HasPrefix(token, "--hash="):
			pin, err := parseHashPin(strings.TrimPrefix(token, "--hash="), span)
			if err != nil {
				return nil, nil, err
			}
			pins = append(pins, pin)
		default:
			diagnostics = append(diagnostics, types.Diagnostic{
				Kind:    types.DiagnosticUnknownOption,
				Message: fmt.Sprintf("unknown option on requirement line: %s", flagToken(token)),
				Span:    span,
			})
			if strings.HasPrefix(token, "--") && !strings.Contains(token, "=") &&
				idx+1 < len(tokens) && !strings.HasPrefix(tokens[idx+1], "-") {
				idx++
			}
		}
	}
	return pins, diagnostics, nil
}
