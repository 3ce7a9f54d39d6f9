package types

// Specifier is the parsed form of one requirement's source text.
// Exactly one shape is populated, selected by Kind; consumers switch
// exhaustively on Kind so a new shape cannot be dropped silently.
type Specifier struct {
	Kind SpecifierKind `yaml:"kind" json:"kind"`

	// Name is the distribution name when one is known. Always set for
	// named specifiers; set for direct references only when the text
	// carried one (a "name @ url" form or an #egg= fragment).
	Name   string   `yaml:"name,omitempty" json:"name,omitempty"`
	Extras []string `yaml:"extras,omitempty" json:"extras,omitempty"`

	// Versions is the raw PEP 440 specifier set (e.g. ">=2.0,<3"),
	// validated but never evaluated at this layer.
	Versions string `yaml:"versions,omitempty" json:"versions,omitempty"`

	// Marker is the raw environment marker text, syntax-checked only.
	Marker string `yaml:"marker,omitempty" json:"marker,omitempty"`

	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// VCS is the version-control scheme (git, hg, svn, bzr) of a VCS
	// reference; URL holds the full reference including the scheme.
	VCS string `yaml:"vcs,omitempty" json:"vcs,omitempty"`
}
