package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/term"
)

type printer struct {
	w    io.Writer
	json bool
}

// newPrinter picks JSON unless w is an interactive terminal.
func newPrinter(w io.Writer, forceJSON bool) *printer {
	return &printer{w: w, json: forceJSON || !isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type field struct {
	name  string
	value any
}

// print writes v as JSON, or fields as aligned name/value lines.
func (p *printer) print(v any, fields ...field) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, f := range fields {
		value := f.value
		if t, ok := value.(time.Time); ok {
			value = t.Local().Format(time.RFC1123)
		}
		fmt.Fprintf(tw, "%s:\t%v\n", f.name, value)
	}
	return tw.Flush()
}
