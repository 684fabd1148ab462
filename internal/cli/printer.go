package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// printer renders CLI output in the bujo-like pretty style.
type printer struct {
	w io.Writer
}

func (p printer) title(format string, a ...any) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintf(p.w, format+"\n", a...)
}

func (p printer) faint(format string, a ...any) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(p.w, format+"\n", a...)
}

func (p printer) ok(format string, a ...any) {
	g := color.New(color.FgGreen)
	_, _ = g.Fprint(p.w, "✓ ")
	_, _ = fmt.Fprintf(p.w, format+"\n", a...)
}

func (p printer) fail(format string, a ...any) {
	r := color.New(color.FgRed, color.Bold)
	_, _ = r.Fprint(p.w, "✗ ")
	_, _ = fmt.Fprintf(p.w, format+"\n", a...)
}

func (p printer) newline() {
	_, _ = fmt.Fprintln(p.w)
}

func (p printer) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(p.w, "  none\n\n")
}

// table starts a table with a bold header row.
func (p printer) table(header ...string) *uitable.Table {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = bold.Sprint(h)
	}
	tbl.AddRow(row...)
	return tbl
}

func (p printer) print(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(p.w, tbl)
	p.newline()
}

func joinInts(xs []int) string {
	s := make([]string, len(xs))
	for i, x := range xs {
		s[i] = fmt.Sprint(x)
	}
	return strings.Join(s, ",")
}
