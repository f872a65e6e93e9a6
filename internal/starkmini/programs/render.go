package programs

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/starkmini/starkmini/internal/starkmini/core"
)

// RenderTrace writes the step-by-step table of a trace, one row per step.
// The CLI and the examples print this before proving so the sequence being
// attested is visible next to the outcome.
func RenderTrace(w io.Writer, trace *core.Trace) error {
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "step")
	if trace.Columns() == 1 {
		fmt.Fprint(tw, "\tvalue")
	} else {
		for c := 0; c < trace.Columns(); c++ {
			fmt.Fprintf(tw, "\tcol %d", c)
		}
	}
	fmt.Fprintln(tw)

	for step := 0; step < trace.Length(); step++ {
		fmt.Fprintf(tw, "%d", step)
		for c := 0; c < trace.Columns(); c++ {
			fmt.Fprintf(tw, "\t%s", trace.At(step, c))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
