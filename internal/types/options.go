package types

// GlobalOptions accumulates tree-wide options across every file in the
// include tree. URL-like lists merge through the option merge policy,
// first-seen accumulation by default; boolean flags are OR-combined.
type GlobalOptions struct {
	IndexURLs      []string `yaml:"index_urls,omitempty" json:"index_urls,omitempty"`
	ExtraIndexURLs []string `yaml:"extra_index_urls,omitempty" json:"extra_index_urls,omitempty"`
	FindLinks      []string `yaml:"find_links,omitempty" json:"find_links,omitempty"`
	TrustedHosts   []string `yaml:"trusted_hosts,omitempty" json:"trusted_hosts,omitempty"`
	UseFeatures    []string `yaml:"use_features,omitempty" json:"use_features,omitempty"`

	// NoBinary and OnlyBinary hold normalized package names, or the
	// ":all:" sentinel. A ":none:" value clears the list it targets.
	NoBinary   []string `yaml:"no_binary,omitempty" json:"no_binary,omitempty"`
	OnlyBinary []string `yaml:"only_binary,omitempty" json:"only_binary,omitempty"`

	NoIndex       bool `yaml:"no_index,omitempty" json:"no_index,omitempty"`
	Pre           bool `yaml:"pre,omitempty" json:"pre,omitempty"`
	PreferBinary  bool `yaml:"prefer_binary,omitempty" json:"prefer_binary,omitempty"`
	RequireHashes bool `yaml:"require_hashes,omitempty" json:"require_hashes,omitempty"`
}
