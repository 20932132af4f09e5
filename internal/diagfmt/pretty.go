package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ghostc/internal/diag"
	"ghostc/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(on bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes every diagnostic of bag with its source line. The bag is
// printed in its current order; callers sort it first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	var sb strings.Builder
	sb.WriteString(header(d, fs, opts, p))
	sb.WriteByte('\n')
	snippet(&sb, d.Primary, fs, opts, p)
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(&sb, "  %s %s%s\n", p.note.Sprint("note:"), position(n.Loc, fs, opts), n.Msg)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Short writes one line per diagnostic.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if _, err := fmt.Fprintln(w, header(d, fs, opts, p)); err != nil {
			return err
		}
	}
	return nil
}

// Summary writes "N errors, M warnings" or nothing for an empty bag.
func Summary(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	if errs == 0 && warns == 0 {
		return nil
	}
	p := newPalette(opts.Color)
	parts := make([]string, 0, 2)
	if errs > 0 {
		parts = append(parts, p.err.Sprint(plural(errs, "error")))
	}
	if warns > 0 {
		parts = append(parts, p.warn.Sprint(plural(warns, "warning")))
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, ", "))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// header: path:line:col: SEV CODE: message
func header(d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) string {
	return fmt.Sprintf("%s%s %s: %s",
		position(d.Primary, fs, opts),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)
}

// position renders "path:line:col: ", or nothing for a location that was
// never attached to a source row.
func position(loc source.Location, fs *source.FileSet, opts PrettyOpts) string {
	if fs == nil || loc.Rows.Start == 0 {
		return ""
	}
	f := fs.Get(loc.Span.File)
	if f == nil {
		return ""
	}
	start, _ := fs.Resolve(loc.Span)
	return fmt.Sprintf("%s:%d:%d: ", f.FormatPath(opts.PathMode.String(), fs.BaseDir()), start.Line, start.Col)
}

// snippet prints the first line of the span and underlines it. Spans that
// run past the line are underlined to its end.
func snippet(sb *strings.Builder, loc source.Location, fs *source.FileSet, opts PrettyOpts, p palette) {
	if fs == nil || loc.Rows.Start == 0 {
		return
	}
	f := fs.Get(loc.Span.File)
	if f == nil {
		return
	}
	start, _ := fs.Resolve(loc.Span)
	line := f.Line(start.Line)
	lineStart := f.LineStart(start.Line)

	from := int(loc.Span.Start - lineStart)
	to := int(loc.Span.End) - int(lineStart)
	from = min(max(from, 0), len(line))
	to = min(max(to, from), len(line))

	tab := strings.Repeat(" ", tabWidth(opts))
	expand := func(s string) string { return strings.ReplaceAll(s, "\t", tab) }
	pad := runewidth.StringWidth(expand(line[:from]))
	width := max(runewidth.StringWidth(expand(line[from:to])), 1)

	num := strconv.FormatUint(uint64(start.Line), 10)
	blank := strings.Repeat(" ", len(num))
	fmt.Fprintf(sb, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), expand(line))
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, " %s %s %s%s\n", blank, p.gutter.Sprint("|"), strings.Repeat(" ", pad), p.caret.Sprint(underline))
}

func tabWidth(opts PrettyOpts) int {
	if opts.TabWidth > 0 {
		return opts.TabWidth
	}
	return 4
}
