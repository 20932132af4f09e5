// Package diagfmt renders diagnostics for humans: a header line, the
// offending source line and a caret/tilde underline under the span.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures Pretty and Short.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// TabWidth is the display width of a tab in source lines; 0 means 4.
	TabWidth int
}
