package adapters

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtxt/internal/ports"
)

type FileContentAdapter struct{}

func NewFileContentAdapter() FileContentAdapter {
	return FileContentAdapter{}
}

func (a FileContentAdapter) Fetch(_ context.Context, identity string) (string, error) {
	data, err := os.ReadFile(identity)
	if err != nil {
		if os.IsPermission(err) {
			return "", errbuilder.New().
				WithCode(errbuilder.CodePermissionDenied).
				WithMsg(fmt.Sprintf("requirements file not readable: %s", identity)).
				WithCause(err)
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("requirements file not found: %s", identity)).
			WithCause(err)
	}
	return string(data), nil
}

var _ ports.ContentProvider = FileContentAdapter{}
