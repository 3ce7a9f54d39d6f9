package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtxt/internal/ports"
	"reqtxt/internal/types"
)

// Strong hash algorithms accepted for --hash pins. Digest length is not
// checked at parse time; verification happens at download time.
var strongHashes = map[string]struct{}{
	"sha256": {},
	"sha384": {},
	"sha512": {},
}

var booleanFlags = map[string]struct{}{
	"no-index":       {},
	"pre":            {},
	"prefer-binary":  {},
	"require-hashes": {},
}

// applyGlobalOption folds one classified global option line into the
// accumulator. URL-like lists merge through the policy, booleans OR. A
// boolean flag that is already in effect yields a redundant-option
// diagnostic instead of mutating anything.
func applyGlobalOption(options *types.GlobalOptions, classified Classified, merge ports.OptionMergePort, names ports.NameNormalizer) (*types.Diagnostic, error) {
	flag := classified.Flag
	value := classified.Remainder
	span := classified.Span

	if _, ok := booleanFlags[flag]; ok {
		if value != "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s: option --%s takes no value", span, flag))
		}
		target := booleanTarget(options, flag)
		if *target {
			return &types.Diagnostic{
				Kind:    types.DiagnosticRedundantOption,
				Message: fmt.Sprintf("option --%s is already in effect", flag),
				Span:    span,
			}, nil
		}
		*target = true
		return nil, nil
	}

	if value == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: option --%s requires a value", span, flag))
	}
	// One option per logical line: a second token means a second option or
	// an unquoted value, both malformed.
	if strings.ContainsAny(value, " \t") {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: option --%s takes a single value, got %q", span, flag, value))
	}

	switch flag {
	case "index-url":
		options.IndexURLs = merge.MergeIndexURLs(options.IndexURLs, value)
	case "extra-index-url":
		options.ExtraIndexURLs = merge.MergeIndexURLs(options.ExtraIndexURLs, value)
	case "find-links":
		options.FindLinks = merge.MergeIndexURLs(options.FindLinks, value)
	case "trusted-host":
		options.TrustedHosts = merge.MergeIndexURLs(options.TrustedHosts, value)
	case "use-feature":
		options.UseFeatures = appendUnique(options.UseFeatures, value)
	case "no-binary":
		return nil, applyFormatControl(&options.NoBinary, &options.OnlyBinary, classified, names)
	case "only-binary":
		return nil, applyFormatControl(&options.OnlyBinary, &options.NoBinary, classified, names)
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("%s: unhandled global option --%s", span, flag))
	}
	return nil, nil
}

// applyFormatControl updates one side of the no-binary/only-binary pair.
// `:all:` selects everything and clears the opposite side, `:none:` clears
// the target side, and plain names move between sides so the two stay
// mutually exclusive per package.
func applyFormatControl(target *[]string, other *[]string, classified Classified, names ports.NameNormalizer) error {
	value := classified.Remainder
	if strings.HasPrefix(value, "-") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: option --%s expects package names, :all: or :none:", classified.Span, classified.Flag))
	}
	selections := strings.Split(value, ",")
	for indexOf(selections, ":all:") >= 0 {
		*target = []string{":all:"}
		*other = nil
		selections = selections[indexOf(selections, ":all:")+1:]
		if indexOf(selections, ":none:") < 0 {
			return nil
		}
	}
	for _, name := range selections {
		if name == "" {
			continue
		}
		if name == ":none:" {
			*target = nil
			continue
		}
		normalized := names.Normalize(name)
		*other = removeValue(*other, normalized)
		*target = appendUnique(*target, normalized)
	}
	return nil
}

// parseHashPin validates a `algorithm:digest` hash option value.
func parseHashPin(value string, span types.Span) (types.HashPin, error) {
	if value == "" {
		return types.HashPin{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: option --hash requires a value", span))
	}
	algorithm, digest, found := strings.Cut(value, ":")
	if !found {
		return types.HashPin{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: hash must take the form algorithm:digest, got %q", span, value))
	}
	algorithm = strings.ToLower(algorithm)
	if _, ok := strongHashes[algorithm]; !ok {
		return types.HashPin{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: unsupported hash algorithm %q (use sha256, sha384 or sha512)", span, algorithm))
	}
	if !isHex(digest) {
		return types.HashPin{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: invalid %s digest %q", span, algorithm, digest))
	}
	return types.HashPin{Algorithm: algorithm, Digest: digest}, nil
}

func booleanTarget(options *types.GlobalOptions, flag string) *bool {
	switch flag {
	case "no-index":
		return &options.NoIndex
	case "pre":
		return &options.Pre
	case "prefer-binary":
		return &options.PreferBinary
	default:
		return &options.RequireHashes
	}
}

func isHex(value string) bool {
	if value == "" {
		return false
	}
	for idx := 0; idx < len(value); idx++ {
		c := value[idx]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func appendUnique(values []string, value string) []string {
	for _, entry := range values {
		if entry == value {
			return values
		}
	}
	return append(values, value)
}

func removeValue(values []string, value string) []string {
	kept := values[:0]
	for _, entry := range values {
		if entry != value {
			kept = append(kept, entry)
		}
	}
	return kept
}

func indexOf(values []string, value string) int {
	for idx, entry := range values {
		if entry == value {
			return idx
		}
	}
	return -1
}
