// Package types provides core data types for the tidy file organizer.
// It includes structures for scanned files, organize plans, and run
// summaries shared between the scanner, mover, and output formatters.
package types

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FileEntry describes a single file discovered in the target directory.
type FileEntry struct {
	// Path is the absolute path to the file.
	Path string `json:"path"`

	// Name is the base name of the file.
	Name string `json:"name"`

	// Ext is the lowercase extension without the leading dot.
	// Empty when the name has no extension.
	Ext string `json:"ext,omitempty"`

	// Category is the resolved destination category.
	Category string `json:"category"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// HumanSize returns the file size formatted as a human-readable string.
func (f *FileEntry) HumanSize() string {
	return humanize.IBytes(uint64(f.Size))
}

// Bucket groups the files destined for one category subfolder.
// Files keep the order in which the directory enumeration produced them.
type Bucket struct {
	// Category is the destination subfolder name.
	Category string `json:"category"`

	// Files are the members of this bucket.
	Files []FileEntry `json:"files"`
}

// Plan is the outcome of scanning a directory: everything needed to
// report what an organize run would do, produced before any mutation.
type Plan struct {
	// Root is the absolute path of the scanned directory.
	Root string `json:"root"`

	// Buckets holds the per-category groups, in first-seen order.
	Buckets []Bucket `json:"buckets"`

	// Skipped lists the names excluded as system or hidden files.
	Skipped []string `json:"skipped,omitempty"`

	// Unknown lists file names whose extension matched no category.
	// These files are reported but never moved.
	Unknown []string `json:"unknown,omitempty"`

	// TotalBytes is the combined size of all files in Buckets.
	TotalBytes int64 `json:"total_bytes"`
}

// TotalFiles returns the number of files across all buckets.
func (p *Plan) TotalFiles() int {
	var n int
	for _, b := range p.Buckets {
		n += len(b.Files)
	}
	return n
}

// Categories returns the category names in bucket order.
func (p *Plan) Categories() []string {
	names := make([]string, 0, len(p.Buckets))
	for _, b := range p.Buckets {
		names = append(names, b.Category)
	}
	return names
}

// Bucket returns the bucket for the given category, or nil.
func (p *Plan) Bucket(category string) *Bucket {
	for i := range p.Buckets {
		if p.Buckets[i].Category == category {
			return &p.Buckets[i]
		}
	}
	return nil
}

// Empty reports whether the plan contains no files to organize.
func (p *Plan) Empty() bool {
	return p.TotalFiles() == 0
}

// HumanTotal returns the combined bucket size as a human-readable string.
func (p *Plan) HumanTotal() string {
	return humanize.IBytes(uint64(p.TotalBytes))
}

// MoveOutcome records the result of one attempted file move.
type MoveOutcome struct {
	// Source is the original absolute path.
	Source string `json:"source"`

	// Dest is the destination path, including any collision suffix.
	// Empty when the move failed before a destination was chosen.
	Dest string `json:"dest,omitempty"`

	// Category is the destination category.
	Category string `json:"category"`

	// Error holds the failure message for a failed move, empty on success.
	Error string `json:"error,omitempty"`
}

// OK reports whether the move succeeded.
func (m *MoveOutcome) OK() bool {
	return m.Error == ""
}

// Summary aggregates the results of a completed organize run.
type Summary struct {
	// Root is the directory that was organized.
	Root string `json:"root"`

	// Scanned is the total number of files found in buckets.
	Scanned int `json:"scanned"`

	// Skipped is the number of system and hidden files excluded.
	Skipped int `json:"skipped"`

	// Unknown is the number of files with no matching category.
	Unknown int `json:"unknown"`

	// Moved is the number of files successfully moved.
	Moved int `json:"moved"`

	// Failed is the number of files whose move failed.
	Failed int `json:"failed"`

	// PerCategory maps category name to the number of moves attempted.
	PerCategory map[string]int `json:"per_category,omitempty"`

	// Outcomes lists every attempted move in execution order.
	Outcomes []MoveOutcome `json:"outcomes,omitempty"`

	// Elapsed is the total runtime of the move phase.
	Elapsed time.Duration `json:"elapsed"`
}
