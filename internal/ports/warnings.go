package ports

import (
	"context"

	"reqtxt/internal/types"
)

type WarningsSink interface {
	Emit(ctx context.Context, diagnostic types.Diagnostic)
}
