package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	StrategyAccumulate = "accumulate"
	StrategyLastWins   = "last-wins"
)

// OptionMergePolicy combines repeated URL-like option values (index URLs,
// find-links, trusted hosts) into one ordered list. The accumulate strategy
// appends unseen values and keeps the first occurrence of duplicates; the
// last-wins strategy moves a repeated value to the end of the list.
type OptionMergePolicy struct {
	strategy string
}

func NewOptionMergePolicy(strategy string) (OptionMergePolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(strategy))
	if normalized == "" {
		normalized = StrategyAccumulate
	}
	switch normalized {
	case StrategyAccumulate, StrategyLastWins:
		return OptionMergePolicy{strategy: normalized}, nil
	default:
		return OptionMergePolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown option merge strategy: %s", strategy))
	}
}

func (p OptionMergePolicy) Strategy() string {
	return p.strategy
}

func (p OptionMergePolicy) MergeIndexURLs(existing []string, value string) []string {
	if p.strategy == StrategyLastWins {
		merged := make([]string, 0, len(existing)+1)
		for _, entry := range existing {
			if entry == value {
				continue
			}
			merged = append(merged, entry)
		}
		return append(merged, value)
	}
	for _, entry := range existing {
		if entry == value {
			return existing
		}
	}
	return append(existing, value)
}
