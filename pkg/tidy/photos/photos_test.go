package photos

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePhoto creates a file with a fixed modification time. The content
// carries no EXIF data, so dates resolve from mtime.
func writePhoto(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not a real jpeg"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestSortByModTime(t *testing.T) {
	dir := t.TempDir()
	taken := time.Date(2025, 3, 7, 15, 4, 5, 0, time.Local)
	writePhoto(t, dir, "holiday.jpg", taken)

	summary, err := Sort(Options{Source: dir})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Sorted)
	assert.Equal(t, 1, summary.ByModTime)
	assert.Zero(t, summary.ByEXIF)
	assert.Zero(t, summary.Failed)

	want := filepath.Join(dir, "2025", "03", "07", "holiday.jpg")
	assert.FileExists(t, want)
	assert.NoFileExists(t, filepath.Join(dir, "holiday.jpg"))

	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, SourceModTime, summary.Outcomes[0].From)
	assert.Equal(t, want, summary.Outcomes[0].Dest)
}

func TestSortSeparateDestination(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	taken := time.Date(2024, 12, 31, 23, 59, 0, 0, time.Local)
	writePhoto(t, src, "nye.jpeg", taken)

	summary, err := Sort(Options{Source: src, Dest: dest})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sorted)
	assert.FileExists(t, filepath.Join(dest, "2024", "12", "31", "nye.jpeg"))
	assert.NoFileExists(t, filepath.Join(src, "nye.jpeg"))
}

func TestSortCopyKeepsOriginal(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	taken := time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)
	original := writePhoto(t, src, "keep.jpg", taken)

	summary, err := Sort(Options{Source: src, Dest: dest, Copy: true})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sorted)
	assert.FileExists(t, original)

	copied := filepath.Join(dest, "2025", "06", "01", "keep.jpg")
	require.FileExists(t, copied)

	// Copy preserves the modification time.
	info, err := os.Stat(copied)
	require.NoError(t, err)
	assert.WithinDuration(t, taken, info.ModTime(), time.Second)
}

func TestSortDryRun(t *testing.T) {
	dir := t.TempDir()
	taken := time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)
	original := writePhoto(t, dir, "plan.jpg", taken)

	summary, err := Sort(Options{Source: dir, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sorted)
	assert.FileExists(t, original)
	assert.NoDirExists(t, filepath.Join(dir, "2025"))

	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, filepath.Join(dir, "2025", "01", "02", "plan.jpg"), summary.Outcomes[0].Dest)
}

func TestSortSkipsUnsupported(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, dir, "photo.jpg", time.Now())
	writePhoto(t, dir, "notes.txt", time.Now())
	writePhoto(t, dir, "movie.mp4", time.Now())

	summary, err := Sort(Options{Source: dir})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Sorted)
	assert.Equal(t, 2, summary.Skipped)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestSortCustomExtensions(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, dir, "scan.png", time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local))
	writePhoto(t, dir, "photo.jpg", time.Now())

	summary, err := Sort(Options{Source: dir, Extensions: []string{"png"}})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sorted)
	assert.Equal(t, 1, summary.Skipped)
	assert.FileExists(t, filepath.Join(dir, "2025", "02", "03", "scan.png"))
	assert.FileExists(t, filepath.Join(dir, "photo.jpg"))
}

func TestSortCaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, dir, "UPPER.JPG", time.Date(2025, 4, 5, 0, 0, 0, 0, time.Local))

	summary, err := Sort(Options{Source: dir})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sorted)
	assert.FileExists(t, filepath.Join(dir, "2025", "04", "05", "UPPER.JPG"))
}

func TestSortCollisionSuffix(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	taken := time.Date(2025, 7, 8, 0, 0, 0, 0, time.Local)

	dayDir := filepath.Join(dest, "2025", "07", "08")
	require.NoError(t, os.MkdirAll(dayDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dayDir, "dupe.jpg"), []byte("first"), 0o644))

	writePhoto(t, src, "dupe.jpg", taken)

	summary, err := Sort(Options{Source: src, Dest: dest})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Sorted)
	assert.FileExists(t, filepath.Join(dayDir, "dupe_1.jpg"))
}

func TestSortMissingSource(t *testing.T) {
	_, err := Sort(Options{Source: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestSortIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2024"), 0o755))
	writePhoto(t, dir, "one.jpg", time.Date(2025, 9, 10, 0, 0, 0, 0, time.Local))

	summary, err := Sort(Options{Source: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
}
