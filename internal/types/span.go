package types

import "fmt"

// Origin identifies the source a piece of text came from: a cleaned
// local path or a URL. It is opaque beyond equality, which drives
// include deduplication and cycle detection.
type Origin string

// Span locates a logical line inside its source. Lines and columns are
// 1-based byte positions. A logical line joined from several physical
// lines spans all of them.
type Span struct {
	Origin    Origin `yaml:"origin" json:"origin"`
	StartLine int    `yaml:"start_line" json:"start_line"`
	StartCol  int    `yaml:"start_col" json:"start_col"`
	EndLine   int    `yaml:"end_line" json:"end_line"`
	EndCol    int    `yaml:"end_col" json:"end_col"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.Origin, s.StartLine, s.StartCol)
}
