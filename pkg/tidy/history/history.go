// Package history records organize runs so they can be reviewed later
// with the history command. Entries are stored in a Badger database
// under the XDG data directory; recording is best-effort and never
// fails an organize run.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/types"
)

// FileRecord describes one attempted move within a recorded run.
type FileRecord struct {
	Source   string `json:"source"`
	Dest     string `json:"dest,omitempty"`
	Category string `json:"category"`
	Error    string `json:"error,omitempty"`
}

// Entry is one recorded organize run.
type Entry struct {
	// ID is a unique identifier for the run.
	ID string `json:"id"`

	// Timestamp is when the run completed, in UTC.
	Timestamp time.Time `json:"timestamp"`

	// Root is the directory that was organized.
	Root string `json:"root"`

	// PerCategory maps category name to attempted move count.
	PerCategory map[string]int `json:"per_category,omitempty"`

	// Moved is the number of successful moves.
	Moved int `json:"moved"`

	// Failed is the number of failed moves.
	Failed int `json:"failed"`

	// Skipped is the number of system and hidden files excluded.
	Skipped int `json:"skipped"`

	// Files lists every attempted move.
	Files []FileRecord `json:"files,omitempty"`
}

// FromSummary builds a history entry from a completed run summary.
// A fresh ID and the current UTC time are assigned.
func FromSummary(s *types.Summary) *Entry {
	e := &Entry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Root:        s.Root,
		PerCategory: s.PerCategory,
		Moved:       s.Moved,
		Failed:      s.Failed,
		Skipped:     s.Skipped,
	}
	for _, o := range s.Outcomes {
		e.Files = append(e.Files, FileRecord{
			Source:   o.Source,
			Dest:     o.Dest,
			Category: o.Category,
			Error:    o.Error,
		})
	}
	return e
}
