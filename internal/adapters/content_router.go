package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtxt/internal/ports"
)

// ContentRouterAdapter dispatches fetches by identity scheme: http and
// https identities go to Remote, everything else to Files. Remote may be
// nil when remote includes are disabled.
type ContentRouterAdapter struct {
	Files  ports.ContentProvider
	Remote ports.ContentProvider
}

func NewContentRouterAdapter(files ports.ContentProvider, remote ports.ContentProvider) ContentRouterAdapter {
	return ContentRouterAdapter{Files: files, Remote: remote}
}

func (a ContentRouterAdapter) Fetch(ctx context.Context, identity string) (string, error) {
	if strings.HasPrefix(identity, "http://") || strings.HasPrefix(identity, "https://") {
		if a.Remote == nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("remote requirements are not enabled: %s", identity))
		}
		return a.Remote.Fetch(ctx, identity)
	}
	if a.Files == nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("content router requires a file provider")
	}
	return a.Files.Fetch(ctx, identity)
}

var _ ports.ContentProvider = ContentRouterAdapter{}
