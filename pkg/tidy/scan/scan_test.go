package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/classify"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestScanPartitionsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "photo.JPG", "binary")
	writeFile(t, dir, "notes.md", "# notes")
	writeFile(t, dir, ".DS_Store", "")
	writeFile(t, dir, "video.mp4", "frames")
	writeFile(t, dir, "unknownfile.xyz", "?")

	plan, err := Scan(dir, classify.MustNew())
	require.NoError(t, err)

	assert.Equal(t, 3, plan.TotalFiles())
	assert.Equal(t, []string{".DS_Store"}, plan.Skipped)
	assert.Equal(t, []string{"unknownfile.xyz"}, plan.Unknown)

	images := plan.Bucket("Images")
	require.NotNil(t, images)
	require.Len(t, images.Files, 1)
	assert.Equal(t, "photo.JPG", images.Files[0].Name)
	assert.Equal(t, "jpg", images.Files[0].Ext)
	assert.Equal(t, int64(len("binary")), images.Files[0].Size)
	assert.Equal(t, filepath.Join(plan.Root, "photo.JPG"), images.Files[0].Path)

	require.NotNil(t, plan.Bucket("Documents"))
	require.NotNil(t, plan.Bucket("Videos"))
	assert.Nil(t, plan.Bucket("Audio"))
}

func TestScanIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "inside.jpg", "hidden from scan")
	writeFile(t, dir, "top.jpg", "seen")

	plan, err := Scan(dir, classify.MustNew())
	require.NoError(t, err)

	assert.Equal(t, 1, plan.TotalFiles())
	assert.Empty(t, plan.Skipped)
	assert.Equal(t, "top.jpg", plan.Bucket("Images").Files[0].Name)
}

func TestScanEmptyDirectory(t *testing.T) {
	plan, err := Scan(t.TempDir(), classify.MustNew())
	require.NoError(t, err)

	assert.True(t, plan.Empty())
	assert.Empty(t, plan.Buckets)
	assert.Empty(t, plan.Unknown)
}

func TestScanMissingTarget(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), classify.MustNew())
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestScanTargetIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain.txt", "not a dir")

	_, err := Scan(filepath.Join(dir, "plain.txt"), classify.MustNew())
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestScanBucketsFirstSeenOrder(t *testing.T) {
	dir := t.TempDir()
	// ReadDir returns lexical order, so aaa.mp4 is seen before bbb.jpg.
	writeFile(t, dir, "aaa.mp4", "v")
	writeFile(t, dir, "bbb.jpg", "i")
	writeFile(t, dir, "ccc.mp4", "v")

	plan, err := Scan(dir, classify.MustNew())
	require.NoError(t, err)

	assert.Equal(t, []string{"Videos", "Images"}, plan.Categories())
	assert.Len(t, plan.Bucket("Videos").Files, 2)
}

func TestScanTotalBytesExcludesUnmoved(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jpg", "1234")
	writeFile(t, dir, "mystery.xyz", "larger than everything else")

	plan, err := Scan(dir, classify.MustNew())
	require.NoError(t, err)

	assert.Equal(t, int64(4), plan.TotalBytes)
	assert.Equal(t, "4 B", plan.HumanTotal())
}
