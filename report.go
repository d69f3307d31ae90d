package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// reporter prints evaluation findings and mesh statistics, coloured when
// the output is a terminal.
type reporter struct {
	out *termenv.Output
}

func newReporter(w io.Writer, opts ...termenv.OutputOption) *reporter {
	return &reporter{out: termenv.NewOutput(w, opts...)}
}

func (r *reporter) label(text string, c termenv.Color) string {
	return r.out.String(text).Foreground(c).Bold().String()
}

// findings prints errors then warnings.
func (r *reporter) findings(res EvalResult) {
	for _, e := range res.Errors {
		loc := ""
		if e.Line > 0 {
			loc = fmt.Sprintf("line %d: ", e.Line)
		}
		fmt.Fprintf(r.out, "%s %s%s\n", r.label("error", termenv.ANSIRed), loc, e.Message)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(r.out, "%s %s\n", r.label("warning", termenv.ANSIYellow), w.Message)
	}
}

// meshes prints one line of statistics per mesh.
func (r *reporter) meshes(res EvalResult) {
	for _, m := range res.Meshes {
		fmt.Fprintf(r.out, "%s %-16s %6d vertices %6d triangles  %s indices\n",
			r.label("mesh", termenv.ANSIGreen), m.Name,
			len(m.Positions)/3, len(m.Indices)/3, m.IndexFormat)
	}
}

// summary prints the closing line of a check.
func (r *reporter) summary(res EvalResult) {
	if res.OK() {
		fmt.Fprintf(r.out, "%s %d meshes, %d warnings\n",
			r.label("ok", termenv.ANSIGreen), len(res.Meshes), len(res.Warnings))
		return
	}
	fmt.Fprintf(r.out, "%s %d errors, %d warnings\n",
		r.label("failed", termenv.ANSIRed), len(res.Errors), len(res.Warnings))
}
