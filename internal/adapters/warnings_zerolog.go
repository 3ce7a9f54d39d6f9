package adapters

import (
	"context"

	"github.com/rs/zerolog/log"

	"reqtxt/internal/ports"
	"reqtxt/internal/types"
)

// ZerologWarningsAdapter forwards parse diagnostics to the zerolog
// logger carried by the context, one warning per diagnostic.
type ZerologWarningsAdapter struct{}

func NewZerologWarningsAdapter() ZerologWarningsAdapter {
	return ZerologWarningsAdapter{}
}

func (a ZerologWarningsAdapter) Emit(ctx context.Context, diagnostic types.Diagnostic) {
	log.Ctx(ctx).Warn().
		Str("kind", string(diagnostic.Kind)).
		Str("span", diagnostic.Span.String()).
		Msg(diagnostic.Message)
}

var _ ports.WarningsSink = ZerologWarningsAdapter{}
