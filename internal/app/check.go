package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Check parses each file and reports per-file counts and diagnostics.
// The first fatal parse error aborts the whole check.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	if len(req.Paths) == 0 {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one requirements file is required")
	}
	var result CheckResult
	for _, path := range req.Paths {
		parsed, err := s.Parse(ctx, ParseRequest{Path: path})
		if err != nil {
			return CheckResult{}, err
		}
		result.Files = append(result.Files, CheckFileSummary{
			Path:           path,
			Requirements:   len(parsed.Requirements),
			Constraints:    len(parsed.Constraints),
			Sources:        len(parsed.Sources),
			HashesRequired: parsed.HashesRequired,
			Diagnostics:    parsed.Diagnostics,
		})
	}
	return result, nil
}
