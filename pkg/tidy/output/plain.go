package output

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/tabwriter"
)

// PlainFormatter formats reports as unstyled text suitable for
// scripting and piping. No colors or boxes are applied.
type PlainFormatter struct{}

// FormatPlan writes the scan report to the buffer.
func (f *PlainFormatter) FormatPlan(w *bytes.Buffer, r *Report) error {
	fmt.Fprintf(w, "target: %s\n", r.Plan.Root)
	fmt.Fprintf(w, "found: %d files, %d skipped, %d unknown\n",
		r.Plan.TotalFiles(), len(r.Plan.Skipped), len(r.Plan.Unknown))

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, b := range r.Plan.Buckets {
		if _, err := fmt.Fprintf(tw, "%s\t%d\n", b.Category, len(b.Files)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range r.Plan.Unknown {
		fmt.Fprintf(w, "unknown: %s\n", name)
	}

	return nil
}

// FormatResult writes the run outcome to the buffer.
func (f *PlainFormatter) FormatResult(w *bytes.Buffer, r *Report) error {
	switch {
	case r.Cancelled:
		fmt.Fprintln(w, "cancelled")
	case r.DryRun:
		fmt.Fprintln(w, "dry run")
	case r.Summary != nil:
		for _, o := range r.Summary.Outcomes {
			if o.OK() {
				fmt.Fprintf(w, "moved: %s -> %s\n", filepath.Base(o.Source), o.Dest)
			} else {
				fmt.Fprintf(w, "failed: %s: %s\n", filepath.Base(o.Source), o.Error)
			}
		}
		fmt.Fprintf(w, "done: %d moved, %d failed\n", r.Summary.Moved, r.Summary.Failed)
	}
	return nil
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
