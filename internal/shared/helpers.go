// Package shared provides common utility functions used across multiple
// packages in the reqtxt codebase.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var pipNameRuns = regexp.MustCompile(`[-_.]+`)

// NormalizePipName lowercases a Python package name and collapses runs of
// hyphens, underscores and dots into a single hyphen, following PEP 503
// normalization.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	return pipNameRuns.ReplaceAllString(lower, "-")
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}
