package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when a history entry doesn't exist.
var ErrNotFound = errors.New("history entry not found")

// keyPrefix namespaces run entries inside the database.
const keyPrefix = "run/"

// Store wraps Badger for history operations.
type Store struct {
	db *badger.DB
}

// Open opens or creates a history store at the given path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// makeKey builds a key that sorts chronologically: the RFC 3339
// timestamp orders lexicographically, the ID breaks ties.
func makeKey(e *Entry) []byte {
	return []byte(keyPrefix + e.Timestamp.UTC().Format(time.RFC3339Nano) + "/" + e.ID)
}

// Record persists an entry.
func (s *Store) Record(e *Entry) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding history entry: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(makeKey(e), value)
	})
}

// List returns up to limit entries, newest first. A limit of 0 or
// less returns everything.
func (s *Store) List(limit int) ([]*Entry, error) {
	var entries []*Entry
	prefix := []byte(keyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts just past the prefix range.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			entries = append(entries, &e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	return entries, nil
}

// Get returns the entry whose ID matches, or has the given string as a
// unique prefix. Returns ErrNotFound when nothing matches.
func (s *Store) Get(id string) (*Entry, error) {
	entries, err := s.List(0)
	if err != nil {
		return nil, err
	}

	var found *Entry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			if found != nil {
				return nil, fmt.Errorf("ambiguous id prefix %q", id)
			}
			found = e
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return found, nil
}

// Prune deletes entries older than the cutoff and reports how many
// were removed.
func (s *Store) Prune(cutoff time.Time) (int, error) {
	prefix := []byte(keyPrefix)
	var removed int

	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		// Keys sort chronologically, so collect until the cutoff.
		boundary := keyPrefix + cutoff.UTC().Format(time.RFC3339Nano)
		var doomed [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if string(key) >= boundary {
				break
			}
			doomed = append(doomed, key)
		}
		it.Close()

		for _, key := range doomed {
			if err := txn.Delete(key); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}

	return removed, nil
}
