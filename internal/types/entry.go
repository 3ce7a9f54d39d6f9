package types

// HashPin is one integrity pin an installer must verify before
// accepting an artifact. Only strong algorithms are accepted at parse
// time (sha256, sha384, sha512).
type HashPin struct {
	Algorithm string `yaml:"algorithm" json:"algorithm"`
	Digest    string `yaml:"digest" json:"digest"`
}

type RequirementEntry struct {
	Specifier Specifier `yaml:"specifier" json:"specifier"`
	Editable  bool      `yaml:"editable,omitempty" json:"editable,omitempty"`
	Hashes    []HashPin `yaml:"hashes,omitempty" json:"hashes,omitempty"`
	Span      Span      `yaml:"span" json:"span"`
}

// ConstraintEntry narrows allowed versions without triggering an
// install. Constraints carry no extras, no editable flag, and no
// hashes; violations are rejected during parsing.
type ConstraintEntry struct {
	Specifier Specifier `yaml:"specifier" json:"specifier"`
	Span      Span      `yaml:"span" json:"span"`
}
