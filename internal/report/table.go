package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// RenderTable writes the aligned player table to w.
func RenderTable(w io.Writer, header []string, rows []Row) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r.columns(), "\t"))
	}
	tw.Flush()
}
