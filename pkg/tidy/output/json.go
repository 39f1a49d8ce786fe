package output

import (
	"bytes"
	"encoding/json"
)

// jsonOutput represents the full JSON output structure.
type jsonOutput struct {
	Target     string         `json:"target"`
	Categories []jsonCategory `json:"categories"`
	Skipped    []string       `json:"skipped,omitempty"`
	Unknown    []string       `json:"unknown,omitempty"`
	TotalFiles int            `json:"total_files"`
	TotalSize  int64          `json:"total_size"`
	Result     *jsonRunResult `json:"result,omitempty"`
	Cancelled  bool           `json:"cancelled,omitempty"`
	DryRun     bool           `json:"dry_run,omitempty"`
}

// jsonCategory represents one category bucket in JSON output.
type jsonCategory struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Files []string `json:"files"`
}

// jsonRunResult represents the move-phase outcome in JSON output.
type jsonRunResult struct {
	Moved    int        `json:"moved"`
	Failed   int        `json:"failed"`
	Elapsed  string     `json:"elapsed"`
	Outcomes []jsonMove `json:"outcomes,omitempty"`
}

// jsonMove represents one attempted move in JSON output.
type jsonMove struct {
	Source   string `json:"source"`
	Dest     string `json:"dest,omitempty"`
	Category string `json:"category"`
	Error    string `json:"error,omitempty"`
}

// JSONFormatter formats the report as a single indented JSON document.
// Nothing is emitted at the plan stage so an organize run produces
// exactly one document on stdout.
type JSONFormatter struct{}

// FormatPlan writes nothing; the full document comes from FormatResult.
func (f *JSONFormatter) FormatPlan(_ *bytes.Buffer, _ *Report) error {
	return nil
}

// FormatResult writes the complete report as one JSON document.
func (f *JSONFormatter) FormatResult(w *bytes.Buffer, r *Report) error {
	out := jsonOutput{
		Target:     r.Plan.Root,
		Skipped:    r.Plan.Skipped,
		Unknown:    r.Plan.Unknown,
		TotalFiles: r.Plan.TotalFiles(),
		TotalSize:  r.Plan.TotalBytes,
		Cancelled:  r.Cancelled,
		DryRun:     r.DryRun,
	}

	out.Categories = make([]jsonCategory, 0, len(r.Plan.Buckets))
	for _, b := range r.Plan.Buckets {
		names := make([]string, 0, len(b.Files))
		for _, f := range b.Files {
			names = append(names, f.Name)
		}
		out.Categories = append(out.Categories, jsonCategory{
			Name:  b.Category,
			Count: len(b.Files),
			Files: names,
		})
	}

	if r.Summary != nil {
		res := &jsonRunResult{
			Moved:   r.Summary.Moved,
			Failed:  r.Summary.Failed,
			Elapsed: r.Summary.Elapsed.String(),
		}
		for _, o := range r.Summary.Outcomes {
			res.Outcomes = append(res.Outcomes, jsonMove{
				Source:   o.Source,
				Dest:     o.Dest,
				Category: o.Category,
				Error:    o.Error,
			})
		}
		out.Result = res
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
