// Package photos sorts photos into a YEAR/MONTH/DAY folder structure
// based on their EXIF capture date, falling back to the file
// modification time when no usable EXIF data is present.
package photos

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/config"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/logging"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/organize"
)

var logger = logging.Get("photos")

// DateSource identifies where a photo's date came from.
type DateSource string

// Date sources.
const (
	SourceEXIF    DateSource = "exif"
	SourceModTime DateSource = "mtime"
)

// Options configures a photo sorting run.
type Options struct {
	// Source is the directory containing photos to sort.
	Source string

	// Dest is where the YEAR/MONTH/DAY tree is built.
	// Empty means sort in place under Source.
	Dest string

	// Copy leaves originals in place instead of moving them.
	Copy bool

	// DryRun reports what would happen without touching anything.
	DryRun bool

	// Extensions are the lowercase photo extensions to process.
	// Empty means the default set (jpg, jpeg, raf).
	Extensions []string
}

// Outcome records the handling of one photo.
type Outcome struct {
	// Source is the original path.
	Source string `json:"source"`

	// Dest is the chosen destination path.
	Dest string `json:"dest,omitempty"`

	// Date is the resolved capture date.
	Date time.Time `json:"date"`

	// From says whether Date came from EXIF or the file mtime.
	From DateSource `json:"from"`

	// Error holds the failure message, empty on success.
	Error string `json:"error,omitempty"`
}

// Summary aggregates a photo sorting run.
type Summary struct {
	Total     int       `json:"total"`
	Sorted    int       `json:"sorted"`
	ByEXIF    int       `json:"by_exif"`
	ByModTime int       `json:"by_mtime"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes,omitempty"`
}

// Sort processes the immediate files of the source directory. Files
// with unsupported extensions are counted as skipped; per-file failures
// are recorded and the run continues.
func Sort(opts Options) (*Summary, error) {
	src, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", opts.Source, err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("cannot access %q: %w", opts.Source, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", opts.Source)
	}

	dest := opts.Dest
	if dest == "" {
		dest = src
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", opts.Dest, err)
	}

	supported := opts.Extensions
	if len(supported) == 0 {
		supported = config.DefaultPhotoExtensions
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", src, err)
	}

	summary := &Summary{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		summary.Total++

		if !hasExtension(name, supported) {
			summary.Skipped++
			continue
		}

		path := filepath.Join(src, name)
		outcome := sortOne(path, dest, opts)
		if outcome.Error == "" {
			summary.Sorted++
			if outcome.From == SourceEXIF {
				summary.ByEXIF++
			} else {
				summary.ByModTime++
			}
		} else {
			summary.Failed++
			logger.Error("sort failed", "name", name, "error", outcome.Error)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	return summary, nil
}

// sortOne resolves a date and places a single photo.
func sortOne(path, destRoot string, opts Options) Outcome {
	date, from := photoDate(path)

	dayDir := filepath.Join(destRoot,
		date.Format("2006"), date.Format("01"), date.Format("02"))

	outcome := Outcome{Source: path, Date: date, From: from}

	if opts.DryRun {
		outcome.Dest = filepath.Join(dayDir, filepath.Base(path))
		return outcome
	}

	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	dest := organize.FreeDestination(dayDir, filepath.Base(path))
	var err error
	if opts.Copy {
		err = copyFile(path, dest)
	} else {
		err = moveFile(path, dest)
	}
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Dest = dest
	return outcome
}

// moveFile renames, falling back to copy-and-remove across devices.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies contents and preserves the modification time.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}

// hasExtension reports whether the name ends in one of the supported
// extensions, case-insensitively.
func hasExtension(name string, supported []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	for _, s := range supported {
		if ext == s {
			return true
		}
	}
	return false
}
