package ports

import "reqtxt/internal/types"

type SpecifierGrammar interface {
	ParseSpecifier(text string) (types.Specifier, error)
}
