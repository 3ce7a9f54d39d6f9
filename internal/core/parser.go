package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtxt/internal/ports"
	"reqtxt/internal/types"
)

// Parser drives one recursive descent over a requirements-file tree and
// aggregates requirements, constraints, global options and diagnostics
// into a single ParseResult. Env overrides the environment lookup used for
// ${NAME} interpolation; nil means os.LookupEnv.
type Parser struct {
	Content  ports.ContentProvider
	Grammar  ports.SpecifierGrammar
	Names    ports.NameNormalizer
	Warnings ports.WarningsSink
	Merge    ports.OptionMergePort
	Env      func(string) (string, bool)
}

func NewParser(content ports.ContentProvider, grammar ports.SpecifierGrammar, names ports.NameNormalizer, warnings ports.WarningsSink, merge ports.OptionMergePort) Parser {
	return Parser{
		Content:  content,
		Grammar:  grammar,
		Names:    names,
		Warnings: warnings,
		Merge:    merge,
	}
}

type visitState int

const (
	visitInProgress visitState = iota + 1
	visitDone
)

type parseState struct {
	visited map[types.Origin]visitState
	chain   []types.Origin
	result  *types.ParseResult
	sawHash bool
}

// Parse reads the include tree rooted at origin. Fail-fast: the first
// fatal error aborts the whole parse and no partial result is returned.
func (p Parser) Parse(ctx context.Context, origin types.Origin) (*types.ParseResult, error) {
	assert.NotEmpty(ctx, string(origin), "parse origin must not be empty")
	if p.Content == nil || p.Grammar == nil || p.Names == nil || p.Merge == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("parser requires content, grammar, normalizer and merge ports")
	}
	state := &parseState{
		visited: map[types.Origin]visitState{},
		result:  &types.ParseResult{},
	}
	if err := p.parseFile(ctx, state, canonicalOrigin(origin), types.Span{}, false); err != nil {
		return nil, err
	}
	state.result.HashesRequired = state.result.Options.RequireHashes || state.sawHash
	log.Ctx(ctx).Debug().
		Int("requirements", len(state.result.Requirements)).
		Int("constraints", len(state.result.Constraints)).
		Int("sources", len(state.result.Sources)).
		Msg("requirements parse completed")
	return state.result, nil
}

func (p Parser) parseFile(ctx context.Context, state *parseState, origin types.Origin, includeSpan types.Span, constraint bool) error {
	content, err := p.Content.Fetch(ctx, string(origin))
	if err != nil {
		return resolutionError(includeSpan, origin, err)
	}
	state.visited[origin] = visitInProgress
	state.chain = append(state.chain, origin)
	state.result.Sources = append(state.result.Sources, origin)
	log.Ctx(ctx).Debug().Str("origin", string(origin)).Bool("constraints", constraint).Msg("parsing requirements file")

	scanner := NewScannerWithEnv(origin, content, p.Env)
	lastRequirement := -1
	for {
		line, ok := scanner.Next()
		if !ok {
			break
		}
		classified := Classify(line)
		if classified.Diagnostic != nil {
			p.emit(ctx, state, *classified.Diagnostic)
			continue
		}
		switch classified.Kind {
		case LineInclude, LineConstraintInclude:
			if err := p.include(ctx, state, classified, origin, constraint); err != nil {
				return err
			}
		case LineGlobalOption:
			diagnostic, err := applyGlobalOption(&state.result.Options, classified, p.Merge, p.Names)
			if err != nil {
				return err
			}
			if diagnostic != nil {
				p.emit(ctx, state, *diagnostic)
			}
		case LinePerEntryOption:
			if err := p.standaloneHash(state, classified, constraint, lastRequirement); err != nil {
				return err
			}
		case LineRequirement:
			index, err := p.requirement(ctx, state, classified, constraint)
			if err != nil {
				return err
			}
			if index >= 0 {
				lastRequirement = index
			}
		}
	}
	state.chain = state.chain[:len(state.chain)-1]
	state.visited[origin] = visitDone
	return nil
}

func (p Parser) standaloneHash(state *parseState, classified Classified, constraint bool, lastRequirement int) error {
	if constraint {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: constraints cannot have hashes", classified.Span))
	}
	if lastRequirement < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: option --hash must follow a requirement in the same file", classified.Span))
	}
	pin, err := parseHashPin(classified.Remainder, classified.Span)
	if err != nil {
		return err
	}
	entry := &state.result.Requirements[lastRequirement]
	entry.Hashes = append(entry.Hashes, pin)
	state.sawHash = true
	return nil
}

// requirement parses one specifier line into a requirement or, in
// constraint context, a constraint entry. The returned index points into
// result.Requirements so a later standalone --hash in the same file can
// attach; -1 means no requirement was appended.
func (p Parser) requirement(ctx context.Context, state *parseState, classified Classified, constraint bool) (int, error) {
	specText, optionTokens := splitSpecifierOptions(classified.Remainder)
	specifier, err := resolveSpecifier(p.Grammar, specText, classified.Span)
	if err != nil {
		return -1, err
	}
	pins, diagnostics, err := parseEntryOptions(optionTokens, classified.Span)
	if err != nil {
		return -1, err
	}
	if constraint {
		if classified.Editable {
			return -1, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s: editable requirements are not allowed as constraints", classified.Span))
		}
		if len(specifier.Extras) > 0 {
			return -1, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s: constraints cannot have extras", classified.Span))
		}
		if len(pins) > 0 {
			return -1, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("%s: constraints cannot have hashes", classified.Span))
		}
		for _, diagnostic := range diagnostics {
			p.emit(ctx, state, diagnostic)
		}
		state.result.Constraints = append(state.result.Constraints, types.ConstraintEntry{
			Specifier: specifier,
			Span:      classified.Span,
		})
		return -1, nil
	}
	for _, diagnostic := range diagnostics {
		p.emit(ctx, state, diagnostic)
	}
	if len(pins) > 0 {
		state.sawHash = true
	}
	state.result.Requirements = append(state.result.Requirements, types.RequirementEntry{
		Specifier: specifier,
		Editable:  classified.Editable,
		Hashes:    pins,
		Span:      classified.Span,
	})
	return len(state.result.Requirements) - 1, nil
}

func (p Parser) emit(ctx context.Context, state *parseState, diagnostic types.Diagnostic) {
	state.result.Diagnostics = append(state.result.Diagnostics, diagnostic)
	if p.Warnings != nil {
		p.Warnings.Emit(ctx, diagnostic)
	}
}
