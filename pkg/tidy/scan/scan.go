// Package scan enumerates the immediate children of a target directory
// and partitions them into an organize plan. Scanning never mutates the
// filesystem; the plan it produces is what the confirmation prompt
// shows before any move happens.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/classify"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/logging"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/types"
)

// ErrNotDirectory indicates the target path is missing or not a directory.
var ErrNotDirectory = errors.New("not a directory")

var logger = logging.Get("scan")

// Scan reads the immediate children of dir and builds a Plan.
//
// Subdirectories are listed but never entered or included. Skipped
// names (hidden and system files) and unknown extensions are recorded
// on the plan; everything else lands in a per-category bucket in the
// order the directory enumeration produced it. Buckets appear in
// first-seen order.
//
// Returns ErrNotDirectory (wrapped with the path) when dir does not
// exist or is not a directory.
func Scan(dir string, c *classify.Classifier) (*types.Plan, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", dir, ErrNotDirectory)
		}
		return nil, fmt.Errorf("cannot access %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", abs, err)
	}

	plan := &types.Plan{Root: abs}
	buckets := make(map[string]int)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		if c.ShouldSkip(name) {
			plan.Skipped = append(plan.Skipped, name)
			continue
		}

		category := c.Classify(name)
		if category == classify.Unknown {
			plan.Unknown = append(plan.Unknown, name)
			continue
		}

		var size int64
		if fi, err := entry.Info(); err == nil {
			size = fi.Size()
		} else {
			logger.Warn("stat failed", "name", name, "error", err)
		}

		fe := types.FileEntry{
			Path:     filepath.Join(abs, name),
			Name:     name,
			Ext:      c.Ext(name),
			Category: category,
			Size:     size,
		}

		idx, ok := buckets[category]
		if !ok {
			idx = len(plan.Buckets)
			buckets[category] = idx
			plan.Buckets = append(plan.Buckets, types.Bucket{Category: category})
		}
		plan.Buckets[idx].Files = append(plan.Buckets[idx].Files, fe)
		plan.TotalBytes += size
	}

	logger.Debug("scan complete",
		"root", abs,
		"files", plan.TotalFiles(),
		"skipped", len(plan.Skipped),
		"unknown", len(plan.Unknown))

	return plan, nil
}
