package source

import (
	"fmt"
)

type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Rows is the 1-based (start-row, end-row) pair of a Location.
type Rows struct {
	Start uint32
	End   uint32
}

// Location is a byte span plus the rows it covers.
// Attached to every AST/IR node that can carry a diagnostic.
type Location struct {
	Span Span
	Rows Rows
}

func (l Location) String() string {
	return fmt.Sprintf("%s@%d-%d", l.Span, l.Rows.Start, l.Rows.End)
}

// Cover merges two locations of the same file.
func (l Location) Cover(other Location) Location {
	if l.Span.File != other.Span.File {
		return l
	}
	out := Location{Span: l.Span.Cover(other.Span), Rows: l.Rows}
	if other.Rows.Start != 0 && (out.Rows.Start == 0 || other.Rows.Start < out.Rows.Start) {
		out.Rows.Start = other.Rows.Start
	}
	if other.Rows.End > out.Rows.End {
		out.Rows.End = other.Rows.End
	}
	return out
}

// IsZero reports whether the location carries no position (phantom names).
func (l Location) IsZero() bool {
	return l == Location{}
}
