package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqtxt/internal/core"
	"reqtxt/internal/types"
)

// Parse runs one recursive parse rooted at the requested path or URL.
func (s Service) Parse(ctx context.Context, req ParseRequest) (*types.ParseResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("requirements file path is required")
	}
	parser := core.NewParser(s.Content, s.Grammar, s.Names, s.Warnings, s.Merge)
	return parser.Parse(ctx, types.Origin(path))
}
