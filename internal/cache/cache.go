// Package cache holds a short-lived single-slot cache of fetched issues.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"ib/internal/github"
)

// TTL is the maximum age before a cached entry is considered stale.
const TTL = 30 * time.Second

// Entry is the persisted cache slot. A write overwrites the slot
// regardless of key; an entry only serves requests whose assignee and
// limit match.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Assignee  string         `json:"assignee"`
	Limit     int            `json:"limit"`
	Issues    []github.Issue `json:"issues"`
}

// FetchFunc performs a live issue fetch.
type FetchFunc func(assignee string, limit int) ([]github.Issue, error)

// Store reads and writes the cache slot at Path.
type Store struct {
	Path string
	TTL  time.Duration

	now func() time.Time
}

// NewStore returns a Store backed by a file in the temp directory.
func NewStore() *Store {
	return &Store{
		Path: filepath.Join(os.TempDir(), "ib", "issues.json"),
		TTL:  TTL,
		now:  time.Now,
	}
}

// Fetch returns cached issues when the slot matches assignee and limit
// and is fresher than the TTL, otherwise performs the live fetch and
// overwrites the slot. Cache write failures are swallowed: a cache that
// cannot be written degrades to always fetching, never to an error.
func (s *Store) Fetch(assignee string, limit int, live FetchFunc) ([]github.Issue, bool, error) {
	if issues, ok := s.load(assignee, limit); ok {
		return issues, true, nil
	}

	issues, err := live(assignee, limit)
	if err != nil {
		return nil, false, err
	}

	_ = s.save(assignee, limit, issues)
	return issues, false, nil
}

// load reads the slot. Missing, corrupt, mismatched, or stale entries
// are all treated as a miss.
func (s *Store) load(assignee string, limit int) ([]github.Issue, bool) {
	fileLock := flock.New(s.Path + ".lock")
	if err := fileLock.RLock(); err != nil {
		return nil, false
	}
	defer fileLock.Unlock()

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if entry.Assignee != assignee || entry.Limit != limit {
		return nil, false
	}
	if s.now().Sub(entry.Timestamp) >= s.TTL {
		return nil, false
	}

	return entry.Issues, true
}

// save overwrites the slot with a fresh entry.
func (s *Store) save(assignee string, limit int, issues []github.Issue) error {
	entry := Entry{
		Timestamp: s.now(),
		Assignee:  assignee,
		Limit:     limit,
		Issues:    issues,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}

	fileLock := flock.New(s.Path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return err
	}
	defer fileLock.Unlock()

	// Write atomically: write to temp file then rename.
	tmpPath := s.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.Path)
}
