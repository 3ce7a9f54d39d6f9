package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqtxt/internal/types"
)

// include resolves one -r/-c target and recurses. An InProgress target is
// a cycle; a Done target was already spliced once and is skipped. The
// constraint context sticks: every entry beneath a -c include is a
// constraint, straight -r includes inside it too.
func (p Parser) include(ctx context.Context, state *parseState, classified Classified, parent types.Origin, constraint bool) error {
	if classified.Remainder == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s: option --%s requires a value", classified.Span, classified.Flag))
	}
	target := resolveTarget(parent, classified.Remainder)
	switch state.visited[target] {
	case visitInProgress:
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s: cyclic include: %s", classified.Span, formatChain(state.chain, target)))
	case visitDone:
		log.Ctx(ctx).Debug().Str("target", string(target)).Msg("include target already parsed, skipping")
		return nil
	}
	nested := constraint || classified.Kind == LineConstraintInclude
	return p.parseFile(ctx, state, target, classified.Span, nested)
}

// resolveTarget canonicalizes an include target. URLs stand alone,
// relative targets resolve against the including file's directory, and a
// relative target under a remote parent resolves by URL reference.
func resolveTarget(parent types.Origin, target string) types.Origin {
	if isRemote(target) {
		return types.Origin(target)
	}
	if isRemote(string(parent)) {
		base, err := url.Parse(string(parent))
		if err != nil {
			return types.Origin(target)
		}
		ref, err := url.Parse(target)
		if err != nil {
			return types.Origin(target)
		}
		return types.Origin(base.ResolveReference(ref).String())
	}
	if filepath.IsAbs(target) {
		return types.Origin(filepath.Clean(target))
	}
	return types.Origin(filepath.Join(filepath.Dir(string(parent)), target))
}

func canonicalOrigin(origin types.Origin) types.Origin {
	if isRemote(string(origin)) {
		return origin
	}
	return types.Origin(filepath.Clean(string(origin)))
}

func isRemote(identity string) bool {
	return strings.HasPrefix(identity, "http://") || strings.HasPrefix(identity, "https://")
}

func resolutionError(span types.Span, target types.Origin, err error) error {
	message := fmt.Sprintf("cannot read requirements file %s: %v", target, err)
	if span != (types.Span{}) {
		message = fmt.Sprintf("%s: %s", span, message)
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return errbuilder.New().
			WithCode(errbuilder.CodeOf(err)).
			WithMsg(message).
			WithCause(err)
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(message).
		WithCause(err)
}

func formatChain(chain []types.Origin, repeat types.Origin) string {
	names := make([]string, 0, len(chain)+1)
	for _, origin := range chain {
		names = append(names, string(origin))
	}
	names = append(names, string(repeat))
	return strings.Join(names, " -> ")
}
