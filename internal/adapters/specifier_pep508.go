package adapters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"reqtxt/internal/ports"
	"reqtxt/internal/types"
)

// PEP508GrammarAdapter parses requirement specifier text into its
// structured form: a named requirement with extras, version set and
// marker, or a direct reference (URL, local path, VCS). Version sets
// are validated as PEP 440 specifiers; markers are syntax-checked only
// and never evaluated here.
type PEP508GrammarAdapter struct{}

func NewPEP508GrammarAdapter() PEP508GrammarAdapter {
	return PEP508GrammarAdapter{}
}

var distributionName = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

var vcsSchemes = map[string]struct{}{
	"git": {},
	"hg":  {},
	"svn": {},
	"bzr": {},
}

func (a PEP508GrammarAdapter) ParseSpecifier(text string) (types.Specifier, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.Specifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty requirement specifier")
	}
	if scheme, ok := vcsScheme(trimmed); ok {
		return parseVCSReference(trimmed, scheme, "", nil)
	}
	if strings.HasPrefix(trimmed, "file:") {
		return parseFileReference(trimmed, "", nil)
	}
	if isRemoteReference(trimmed) {
		return parseURLReference(trimmed, "", nil)
	}
	if isPathReference(trimmed) {
		return parsePathReference(trimmed)
	}
	if name, extras, reference, ok := splitDirectReference(trimmed); ok {
		if scheme, isVCS := vcsScheme(reference); isVCS {
			return parseVCSReference(reference, scheme, name, extras)
		}
		if strings.HasPrefix(reference, "file:") {
			return parseFileReference(reference, name, extras)
		}
		return parseURLReference(reference, name, extras)
	}
	return parseNamedRequirement(trimmed)
}

// parseNamedRequirement handles the name [extras] versions ; marker form.
func parseNamedRequirement(text string) (types.Specifier, error) {
	body, marker, err := cutMarker(text, ";")
	if err != nil {
		return types.Specifier{}, err
	}
	name, extras, rest, err := scanNameExtras(body)
	if err != nil {
		return types.Specifier{}, err
	}
	if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
		rest = strings.TrimSpace(rest[1 : len(rest)-1])
	}
	if rest != "" {
		if _, err := pep440.NewSpecifiers(rest); err != nil {
			return types.Specifier{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid version specifier %q", rest)).
				WithCause(err)
		}
	}
	return types.Specifier{
		Kind:     types.SpecifierNamed,
		Name:     name,
		Extras:   extras,
		Versions: rest,
		Marker:   marker,
	}, nil
}

func parseVCSReference(text string, scheme string, name string, extras []string) (types.Specifier, error) {
	body, marker, err := cutMarker(text, "; ")
	if err != nil {
		return types.Specifier{}, err
	}
	if !strings.Contains(body[len(scheme)+1:], "://") {
		return types.Specifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid VCS reference %q", body))
	}
	if name == "" {
		name, extras, err = eggName(body)
		if err != nil {
			return types.Specifier{}, err
		}
	}
	return types.Specifier{
		Kind:   types.SpecifierVCS,
		Name:   name,
		Extras: extras,
		URL:    body,
		VCS:    scheme,
		Marker: marker,
	}, nil
}

func parseURLReference(text string, name string, extras []string) (types.Specifier, error) {
	body, marker, err := cutMarker(text, "; ")
	if err != nil {
		return types.Specifier{}, err
	}
	if name == "" {
		name, extras, err = eggName(body)
		if err != nil {
			return types.Specifier{}, err
		}
	}
	return types.Specifier{
		Kind:   types.SpecifierURL,
		Name:   name,
		Extras: extras,
		URL:    body,
		Marker: marker,
	}, nil
}

func parsePathReference(text string) (types.Specifier, error) {
	body, marker, err := cutMarker(text, "; ")
	if err != nil {
		return types.Specifier{}, err
	}
	return types.Specifier{
		Kind:   types.SpecifierPath,
		Path:   body,
		Marker: marker,
	}, nil
}

// parseFileReference keeps file: references in the path shape; the raw
// reference text is preserved so callers can resolve it themselves.
func parseFileReference(text string, name string, extras []string) (types.Specifier, error) {
	body, marker, err := cutMarker(text, "; ")
	if err != nil {
		return types.Specifier{}, err
	}
	if name == "" {
		name, extras, err = eggName(body)
		if err != nil {
			return types.Specifier{}, err
		}
	}
	return types.Specifier{
		Kind:   types.SpecifierPath,
		Name:   name,
		Extras: extras,
		Path:   body,
		Marker: marker,
	}, nil
}

// splitDirectReference recognizes the "name [extras] @ reference" form.
// It reports false when the text left of "@" is not a bare name, so the
// caller falls through to named parsing and its diagnostics.
func splitDirectReference(text string) (string, []string, string, bool) {
	idx := strings.Index(text, "@")
	if idx <= 0 {
		return "", nil, "", false
	}
	name, extras, err := parseNameWithExtras(text[:idx])
	if err != nil {
		return "", nil, "", false
	}
	reference := strings.TrimSpace(text[idx+1:])
	if _, ok := vcsScheme(reference); !ok && !isRemoteReference(reference) {
		return "", nil, "", false
	}
	return name, extras, reference, true
}

// parseNameWithExtras parses text that must be exactly a distribution
// name with optional extras, as found left of "@" and in #egg fragments.
func parseNameWithExtras(text string) (string, []string, error) {
	name, extras, rest, err := scanNameExtras(strings.TrimSpace(text))
	if err != nil {
		return "", nil, err
	}
	if rest != "" {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unexpected text %q after distribution name", rest))
	}
	return name, extras, nil
}

// scanNameExtras consumes a leading distribution name and optional
// extras list and returns whatever follows, trimmed.
func scanNameExtras(text string) (string, []string, string, error) {
	i := 0
	for i < len(text) && isNameByte(text[i]) {
		i++
	}
	name := text[:i]
	if !distributionName.MatchString(name) {
		return "", nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid distribution name in %q", text))
	}
	rest := strings.TrimSpace(text[i:])
	if !strings.HasPrefix(rest, "[") {
		return name, nil, rest, nil
	}
	end := strings.Index(rest, "]")
	if end < 0 {
		return "", nil, "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("missing closing bracket in extras of %q", text))
	}
	extras, err := parseExtras(rest[1:end])
	if err != nil {
		return "", nil, "", err
	}
	return name, extras, strings.TrimSpace(rest[end+1:]), nil
}

func parseExtras(inner string) ([]string, error) {
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}
	var extras []string
	for _, part := range strings.Split(inner, ",") {
		extra := strings.TrimSpace(part)
		if !distributionName.MatchString(extra) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid extra name %q", extra))
		}
		extras = append(extras, extra)
	}
	return extras, nil
}

// eggName extracts the distribution name (and optional extras) from a
// #egg= URL fragment. References without the fragment carry no name.
func eggName(reference string) (string, []string, error) {
	idx := strings.Index(reference, "#")
	if idx < 0 {
		return "", nil, nil
	}
	for _, part := range strings.Split(reference[idx+1:], "&") {
		value, ok := strings.CutPrefix(part, "egg=")
		if !ok {
			continue
		}
		name, extras, err := parseNameWithExtras(value)
		if err != nil {
			return "", nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid #egg fragment %q", value)).
				WithCause(err)
		}
		return name, extras, nil
	}
	return "", nil, nil
}

// cutMarker splits the environment marker off at the first separator
// and syntax-checks it. Direct references use "; " so semicolons inside
// URLs survive; named requirements use ";".
func cutMarker(text string, separator string) (string, string, error) {
	idx := strings.Index(text, separator)
	if idx < 0 {
		return strings.TrimSpace(text), "", nil
	}
	body := strings.TrimSpace(text[:idx])
	marker := strings.TrimSpace(text[idx+len(separator):])
	if marker == "" {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("empty environment marker in %q", text))
	}
	if err := checkMarker(marker); err != nil {
		return "", "", err
	}
	return body, marker, nil
}

// checkMarker verifies quotes and parentheses balance. Marker
// evaluation against an environment happens elsewhere.
func checkMarker(marker string) error {
	depth := 0
	var quote byte
	for i := 0; i < len(marker); i++ {
		c := marker[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("unbalanced parentheses in marker %q", marker))
			}
		}
	}
	if quote != 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unterminated string in marker %q", marker))
	}
	if depth != 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unbalanced parentheses in marker %q", marker))
	}
	return nil
}

func vcsScheme(text string) (string, bool) {
	idx := strings.Index(text, "+")
	if idx <= 0 {
		return "", false
	}
	scheme := text[:idx]
	if _, ok := vcsSchemes[scheme]; !ok {
		return "", false
	}
	return scheme, true
}

func isRemoteReference(text string) bool {
	token := text
	if idx := strings.IndexAny(token, " \t"); idx >= 0 {
		token = token[:idx]
	}
	return strings.Contains(token, "://")
}

func isPathReference(text string) bool {
	return text == "." || text == ".." ||
		strings.HasPrefix(text, "./") || strings.HasPrefix(text, "../") ||
		strings.HasPrefix(text, "/") || strings.HasPrefix(text, "~/")
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '.' || c == '-' || c == '_'
}

var _ ports.SpecifierGrammar = PEP508GrammarAdapter{}
