package output

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// PrettyFormatter formats reports with colors and styling using
// lipgloss, suitable for terminal display.
type PrettyFormatter struct{}

// FormatPlan writes the styled scan report to the buffer.
func (f *PrettyFormatter) FormatPlan(w *bytes.Buffer, r *Report) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")

	if r.Plan.Empty() {
		w.WriteString(MutedStyle.Render("No files to organize."))
		w.WriteString("\n")
	} else {
		w.WriteString(f.formatBuckets(r))
	}

	if len(r.Plan.Unknown) > 0 {
		w.WriteString(f.formatUnknown(r))
	}

	return nil
}

// FormatResult writes the run outcome: per-file move lines and the
// final tally, or a cancellation / dry-run notice.
func (f *PrettyFormatter) FormatResult(w *bytes.Buffer, r *Report) error {
	switch {
	case r.Cancelled:
		w.WriteString(MutedStyle.Render("Cancelled. Nothing was changed."))
		w.WriteString("\n")
	case r.DryRun:
		w.WriteString(MutedStyle.Render("Dry run. Nothing was changed."))
		w.WriteString("\n")
	case r.Summary != nil:
		w.WriteString(f.formatSummary(r))
	}
	return nil
}

// formatHeader builds the header box with scan metadata.
func (f *PrettyFormatter) formatHeader(r *Report) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Target:"),
		ValueStyle.Render(r.Plan.Root)))

	info := fmt.Sprintf("%d files (%s) in %d categories",
		r.Plan.TotalFiles(), r.Plan.HumanTotal(), len(r.Plan.Buckets))
	if n := len(r.Plan.Skipped); n > 0 {
		info += fmt.Sprintf(", %d skipped", n)
	}
	lines = append(lines, fmt.Sprintf("%s %s",
		LabelStyle.Render("Found:"),
		ValueStyle.Render(info)))

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatBuckets renders the per-category breakdown.
func (f *PrettyFormatter) formatBuckets(r *Report) string {
	var b strings.Builder
	for _, bucket := range r.Plan.Buckets {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			CategoryStyle.Render(bucket.Category+":"),
			ValueStyle.Render(fmt.Sprintf("%d files", len(bucket.Files)))))
	}
	return b.String()
}

// formatUnknown renders the unknown-extension warnings.
func (f *PrettyFormatter) formatUnknown(r *Report) string {
	var b strings.Builder
	for _, name := range r.Plan.Unknown {
		b.WriteString(WarningStyle.Render("  ? " + name))
		b.WriteString(MutedStyle.Render("  (unknown type, left in place)"))
		b.WriteString("\n")
	}
	return b.String()
}

// formatSummary renders per-file move results and the final tally.
func (f *PrettyFormatter) formatSummary(r *Report) string {
	var b strings.Builder

	for _, o := range r.Summary.Outcomes {
		name := filepath.Base(o.Source)
		if o.OK() {
			b.WriteString(SuccessStyle.Render(fmt.Sprintf("  ✓ %s → %s/", name, o.Category)))
		} else {
			b.WriteString(ErrorStyle.Render(fmt.Sprintf("  ✗ %s: %s", name, o.Error)))
		}
		b.WriteString("\n")
	}

	tally := fmt.Sprintf("%s %d moved",
		LabelStyle.Render("Done:"), r.Summary.Moved)
	if r.Summary.Failed > 0 {
		tally += ErrorStyle.Render(fmt.Sprintf(", %d failed", r.Summary.Failed))
	}
	if r.Summary.Skipped > 0 {
		tally += MutedStyle.Render(fmt.Sprintf(", %d skipped", r.Summary.Skipped))
	}
	b.WriteString(FooterBox.Render(tally))
	b.WriteString("\n")
	return b.String()
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
