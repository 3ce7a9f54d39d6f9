package ports

import "context"

type ContentProvider interface {
	Fetch(ctx context.Context, identity string) (string, error)
}
