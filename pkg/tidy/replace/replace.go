// Package replace performs recursive literal string replacement in
// file contents, file names, and directory names under a root
// directory. Binary files are detected and left alone.
package replace

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charlievieth/fastwalk"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/logging"
)

var logger = logging.Get("replace")

// sniffLen is how many leading bytes are examined to decide whether a
// file is text.
const sniffLen = 512

// Kind classifies a replacement action.
type Kind string

// Action kinds.
const (
	KindContent  Kind = "content"
	KindFileName Kind = "file"
	KindDirName  Kind = "dir"
)

// Action records one replacement, performed or planned.
type Action struct {
	// Kind says what was changed.
	Kind Kind `json:"kind"`

	// Path is the affected path (the old path for renames).
	Path string `json:"path"`

	// NewPath is the renamed path, empty for content changes.
	NewPath string `json:"new_path,omitempty"`

	// Error holds the failure message, empty on success.
	Error string `json:"error,omitempty"`
}

// Options configures a replacement run.
type Options struct {
	// Root is the directory walked recursively.
	Root string

	// Search is the literal string to find. Must be non-empty.
	Search string

	// Replace is the literal replacement.
	Replace string

	// DryRun reports planned actions without touching anything.
	DryRun bool
}

// Summary aggregates a replacement run.
type Summary struct {
	ContentsChanged int      `json:"contents_changed"`
	FilesRenamed    int      `json:"files_renamed"`
	DirsRenamed     int      `json:"dirs_renamed"`
	Failed          int      `json:"failed"`
	Actions         []Action `json:"actions,omitempty"`
}

// Run walks the root and applies replacements: contents of text files
// first, then file renames, then directory renames deepest-first so a
// parent rename never invalidates a child path that still needs one.
func Run(opts Options) (*Summary, error) {
	if opts.Search == "" {
		return nil, fmt.Errorf("search string cannot be empty")
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %q: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", opts.Root)
	}

	// Collect first, mutate after: renaming during the walk would pull
	// paths out from under the walker.
	var mu sync.Mutex
	var files, dirs []string

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("walk error", "path", path, "error", err)
			return nil
		}
		if path == root {
			return nil
		}
		mu.Lock()
		if d.IsDir() {
			dirs = append(dirs, path)
		} else if d.Type().IsRegular() {
			files = append(files, path)
		}
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", root, err)
	}

	sort.Strings(files)

	summary := &Summary{}

	for _, path := range files {
		if a, changed := replaceContents(path, opts); changed {
			summary.record(a)
			if a.Error == "" {
				summary.ContentsChanged++
			}
		}
	}

	for _, path := range files {
		if a, renamed := renamePath(path, KindFileName, opts); renamed {
			summary.record(a)
			if a.Error == "" {
				summary.FilesRenamed++
			}
		}
	}

	// Deepest directories first.
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(os.PathSeparator)) >
			strings.Count(dirs[j], string(os.PathSeparator))
	})
	for _, path := range dirs {
		if a, renamed := renamePath(path, KindDirName, opts); renamed {
			summary.record(a)
			if a.Error == "" {
				summary.DirsRenamed++
			}
		}
	}

	return summary, nil
}

func (s *Summary) record(a Action) {
	if a.Error != "" {
		s.Failed++
	}
	s.Actions = append(s.Actions, a)
}

// replaceContents rewrites a text file when it contains the search
// string. The second return value is false when the file needed no
// change (binary, or no occurrence).
func replaceContents(path string, opts Options) (Action, bool) {
	a := Action{Kind: KindContent, Path: path}

	isText, err := isTextFile(path)
	if err != nil {
		a.Error = err.Error()
		return a, true
	}
	if !isText {
		return a, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.Error = err.Error()
		return a, true
	}
	if !bytes.Contains(data, []byte(opts.Search)) {
		return a, false
	}

	if opts.DryRun {
		return a, true
	}

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	updated := bytes.ReplaceAll(data, []byte(opts.Search), []byte(opts.Replace))
	if err := os.WriteFile(path, updated, perm); err != nil {
		a.Error = err.Error()
	}
	return a, true
}

// renamePath renames a file or directory whose base name contains the
// search string. The second return value is false when the name
// doesn't contain it.
func renamePath(path string, kind Kind, opts Options) (Action, bool) {
	base := filepath.Base(path)
	if !strings.Contains(base, opts.Search) {
		return Action{}, false
	}

	newBase := strings.ReplaceAll(base, opts.Search, opts.Replace)
	newPath := filepath.Join(filepath.Dir(path), newBase)
	a := Action{Kind: kind, Path: path, NewPath: newPath}

	if newBase == "" || newBase == "." {
		a.Error = "replacement produces an empty name"
		return a, true
	}

	if opts.DryRun {
		return a, true
	}

	if _, err := os.Lstat(newPath); err == nil {
		a.Error = fmt.Sprintf("target already exists: %s", newPath)
		return a, true
	}

	if err := os.Rename(path, newPath); err != nil {
		a.Error = err.Error()
	}
	return a, true
}

// isTextFile sniffs the leading bytes for a NUL byte and valid UTF-8.
func isTextFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		// Empty files count as text.
		return true, nil
	}
	chunk := buf[:n]

	if bytes.IndexByte(chunk, 0) >= 0 {
		return false, nil
	}

	// The sniff window may end mid-rune; drop at most a trailing
	// partial rune before validating.
	for trim := 0; trim < utf8.UTFMax-1 && len(chunk) > 0 && !utf8.Valid(chunk); trim++ {
		chunk = chunk[:len(chunk)-1]
	}
	return utf8.Valid(chunk), nil
}
