package adapters

import (
	"reqtxt/internal/ports"
	"reqtxt/internal/shared"
)

// PEP503NormalizerAdapter canonicalizes distribution names the way
// package indexes do: lowercase, with runs of ".", "-" and "_" collapsed
// to a single "-".
type PEP503NormalizerAdapter struct{}

func NewPEP503NormalizerAdapter() PEP503NormalizerAdapter {
	return PEP503NormalizerAdapter{}
}

func (a PEP503NormalizerAdapter) Normalize(name string) string {
	return shared.NormalizePipName(name)
}

var _ ports.NameNormalizer = PEP503NormalizerAdapter{}
