package ast

import (
	"strings"

	"ghostc/internal/source"
)

// Name is a non-empty dotted path such as std.fs.open.
type Name struct {
	Segments []string
	Loc      source.Location
	// Phantom marks compiler-synthesized names without a reliable location.
	Phantom bool
}

// NewName builds a name from its segments.
func NewName(loc source.Location, segments ...string) Name {
	return Name{Segments: segments, Loc: loc}
}

// PhantomName synthesizes a single-segment name.
func PhantomName(segment string) Name {
	return Name{Segments: []string{segment}, Phantom: true}
}

func (n Name) String() string {
	return strings.Join(n.Segments, ".")
}

// Last returns the final segment.
func (n Name) Last() string {
	if len(n.Segments) == 0 {
		return ""
	}
	return n.Segments[len(n.Segments)-1]
}

// Head returns every segment but the last, joined with dots.
func (n Name) Head() string {
	if len(n.Segments) < 2 {
		return ""
	}
	return strings.Join(n.Segments[:len(n.Segments)-1], ".")
}

// IsSimple reports whether the name has exactly one segment.
func (n Name) IsSimple() bool { return len(n.Segments) == 1 }
