package types

import "time"

// ParseResult is the complete outcome of one recursive parse. Entry
// order is document order across the full expansion: entries from an
// included file sit at the point of the include directive, interleaved
// with the parent's own later entries.
type ParseResult struct {
	Requirements []RequirementEntry `yaml:"requirements,omitempty" json:"requirements,omitempty"`
	Constraints  []ConstraintEntry  `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	Options      GlobalOptions      `yaml:"options" json:"options"`
	Diagnostics  []Diagnostic       `yaml:"diagnostics,omitempty" json:"diagnostics,omitempty"`

	// HashesRequired is true when hash-checking mode applies to the
	// whole tree: either --require-hashes was set or any entry anywhere
	// declared a hash pin.
	HashesRequired bool `yaml:"hashes_required" json:"hashes_required"`

	// Sources lists every origin parsed, root first, in depth-first
	// order. A deduplicated include appears once.
	Sources []Origin `yaml:"sources,omitempty" json:"sources,omitempty"`
}

// ParseReport is the serialized export envelope around a ParseResult.
type ParseReport struct {
	GeneratedAt time.Time   `yaml:"generated_at" json:"generated_at"`
	Result      ParseResult `yaml:"result" json:"result"`
}
