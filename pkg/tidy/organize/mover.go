// Package organize executes a scan plan: it creates the category
// subfolders and moves files into them with collision-safe renaming.
// This is the only package in the pipeline that mutates the target
// directory.
package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/logging"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/types"
)

var logger = logging.Get("organize")

// dirPerm is the mode for created category folders.
const dirPerm = 0o755

// Run executes the plan: category folders first, then every file.
//
// A folder creation failure aborts the run before any file has moved,
// since no file in that category could be placed safely. A single move
// failure is recorded on the summary and the run continues; there is no
// retry and no rollback. Pre-existing category folders are left as-is.
func Run(plan *types.Plan) (*types.Summary, error) {
	start := time.Now()

	for _, b := range plan.Buckets {
		dir := filepath.Join(plan.Root, b.Category)
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("creating category folder %q: %w", b.Category, err)
		}
	}

	summary := &types.Summary{
		Root:        plan.Root,
		Scanned:     plan.TotalFiles(),
		Skipped:     len(plan.Skipped),
		Unknown:     len(plan.Unknown),
		PerCategory: make(map[string]int, len(plan.Buckets)),
	}

	for _, b := range plan.Buckets {
		dir := filepath.Join(plan.Root, b.Category)
		for _, f := range b.Files {
			summary.PerCategory[b.Category]++
			outcome := moveFile(f, dir, b.Category)
			if outcome.OK() {
				summary.Moved++
			} else {
				summary.Failed++
				logger.Error("move failed", "name", f.Name, "error", outcome.Error)
			}
			summary.Outcomes = append(summary.Outcomes, outcome)
		}
	}

	summary.Elapsed = time.Since(start)
	logger.Info("run complete",
		"root", plan.Root,
		"moved", summary.Moved,
		"failed", summary.Failed,
		"elapsed", summary.Elapsed)

	return summary, nil
}

// moveFile moves one file into dir, picking a collision-free name.
func moveFile(f types.FileEntry, dir, category string) types.MoveOutcome {
	dest := FreeDestination(dir, f.Name)
	if err := os.Rename(f.Path, dest); err != nil {
		return types.MoveOutcome{
			Source:   f.Path,
			Category: category,
			Error:    err.Error(),
		}
	}
	return types.MoveOutcome{
		Source:   f.Path,
		Dest:     dest,
		Category: category,
	}
}

// FreeDestination returns dir/name if nothing exists there, otherwise
// the first free dir/name_N variant with N counting up from 1. The
// numeric suffix goes before the (last) extension: "photo.jpg" becomes
// "photo_1.jpg", a name without a dot simply gets "_1" appended.
// Existing files are never chosen, so a move can never overwrite.
func FreeDestination(dir, name string) string {
	dest := filepath.Join(dir, name)
	if !exists(dest) {
		return dest
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
