package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entryAt(id string, ts time.Time) *Entry {
	return &Entry{
		ID:        id,
		Timestamp: ts,
		Root:      "/home/user/Downloads",
		Moved:     2,
		PerCategory: map[string]int{
			"Images": 2,
		},
		Files: []FileRecord{
			{Source: "/home/user/Downloads/a.jpg", Dest: "/home/user/Downloads/Images/a.jpg", Category: "Images"},
			{Source: "/home/user/Downloads/b.jpg", Dest: "/home/user/Downloads/Images/b.jpg", Category: "Images"},
		},
	}
}

func TestRecordAndGet(t *testing.T) {
	s := openStore(t)

	e := entryAt("aaaa1111-0000-0000-0000-000000000000", time.Now().UTC())
	require.NoError(t, s.Record(e))

	got, err := s.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Root, got.Root)
	assert.Equal(t, e.Moved, got.Moved)
	assert.Equal(t, e.PerCategory, got.PerCategory)
	require.Len(t, got.Files, 2)
	assert.Equal(t, e.Files[0].Dest, got.Files[0].Dest)
}

func TestGetByPrefix(t *testing.T) {
	s := openStore(t)
	now := time.Now().UTC()

	require.NoError(t, s.Record(entryAt("aaaa1111-0000-0000-0000-000000000000", now)))
	require.NoError(t, s.Record(entryAt("bbbb2222-0000-0000-0000-000000000000", now.Add(time.Second))))

	got, err := s.Get("aaaa")
	require.NoError(t, err)
	assert.Equal(t, "aaaa1111-0000-0000-0000-000000000000", got.ID)
}

func TestGetAmbiguousPrefix(t *testing.T) {
	s := openStore(t)
	now := time.Now().UTC()

	require.NoError(t, s.Record(entryAt("aaaa1111-0000-0000-0000-000000000000", now)))
	require.NoError(t, s.Record(entryAt("aaaa2222-0000-0000-0000-000000000000", now.Add(time.Second))))

	_, err := s.Get("aaaa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestGetNotFound(t *testing.T) {
	s := openStore(t)

	_, err := s.Get("deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(entryAt("aaaa1111-0000-0000-0000-000000000000", base)))
	require.NoError(t, s.Record(entryAt("bbbb2222-0000-0000-0000-000000000000", base.Add(time.Hour))))
	require.NoError(t, s.Record(entryAt("cccc3333-0000-0000-0000-000000000000", base.Add(2*time.Hour))))

	entries, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "cccc3333-0000-0000-0000-000000000000", entries[0].ID)
	assert.Equal(t, "aaaa1111-0000-0000-0000-000000000000", entries[2].ID)
}

func TestListLimit(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{
		"aaaa1111-0000-0000-0000-000000000000",
		"bbbb2222-0000-0000-0000-000000000000",
		"cccc3333-0000-0000-0000-000000000000",
	} {
		require.NoError(t, s.Record(entryAt(id, base.Add(time.Duration(i)*time.Hour))))
	}

	entries, err := s.List(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "cccc3333-0000-0000-0000-000000000000", entries[0].ID)
}

func TestListEmpty(t *testing.T) {
	s := openStore(t)

	entries, err := s.List(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPrune(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(entryAt("aaaa1111-0000-0000-0000-000000000000", base)))
	require.NoError(t, s.Record(entryAt("bbbb2222-0000-0000-0000-000000000000", base.Add(24*time.Hour))))
	require.NoError(t, s.Record(entryAt("cccc3333-0000-0000-0000-000000000000", base.Add(48*time.Hour))))

	removed, err := s.Prune(base.Add(25 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cccc3333-0000-0000-0000-000000000000", entries[0].ID)
}

func TestPruneNothingOld(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.Record(entryAt("aaaa1111-0000-0000-0000-000000000000", time.Now().UTC())))

	removed, err := s.Prune(time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFromSummary(t *testing.T) {
	sum := &types.Summary{
		Root:        "/tmp/target",
		Moved:       1,
		Failed:      1,
		Skipped:     2,
		PerCategory: map[string]int{"Images": 2},
		Outcomes: []types.MoveOutcome{
			{Source: "/tmp/target/a.jpg", Dest: "/tmp/target/Images/a.jpg", Category: "Images"},
			{Source: "/tmp/target/b.jpg", Category: "Images", Error: "permission denied"},
		},
	}

	e := FromSummary(sum)
	assert.NotEmpty(t, e.ID)
	assert.WithinDuration(t, time.Now().UTC(), e.Timestamp, time.Minute)
	assert.Equal(t, sum.Root, e.Root)
	assert.Equal(t, 1, e.Moved)
	assert.Equal(t, 1, e.Failed)
	assert.Equal(t, 2, e.Skipped)
	require.Len(t, e.Files, 2)
	assert.Equal(t, "permission denied", e.Files[1].Error)
}
