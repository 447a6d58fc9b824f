package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ib/internal/github"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return &Store{
		Path: filepath.Join(t.TempDir(), "issues.json"),
		TTL:  TTL,
		now:  time.Now,
	}
}

func countingFetch(issues []github.Issue) (FetchFunc, *int) {
	calls := 0
	return func(assignee string, limit int) ([]github.Issue, error) {
		calls++
		return issues, nil
	}, &calls
}

func TestFetchRoundTrip(t *testing.T) {
	s := testStore(t)
	want := []github.Issue{
		{Number: 1, Title: "First"},
		{Number: 2, Title: "Second", Labels: []github.Label{{Name: "bug"}}},
	}
	live, calls := countingFetch(want)

	issues, fromCache, err := s.Fetch("a", 10, live)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, want, issues)
	assert.Equal(t, 1, *calls)

	issues, fromCache, err = s.Fetch("a", 10, live)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, want, issues)
	assert.Equal(t, 1, *calls, "second fetch within TTL must not hit the live source")
}

func TestFetchKeyMismatch(t *testing.T) {
	s := testStore(t)
	live, calls := countingFetch([]github.Issue{{Number: 1, Title: "First"}})

	_, _, err := s.Fetch("a", 10, live)
	require.NoError(t, err)

	// Different limit misses.
	_, fromCache, err := s.Fetch("a", 20, live)
	require.NoError(t, err)
	assert.False(t, fromCache)

	// Different assignee misses.
	_, fromCache, err = s.Fetch("b", 20, live)
	require.NoError(t, err)
	assert.False(t, fromCache)

	assert.Equal(t, 3, *calls)
}

func TestFetchStaleEntry(t *testing.T) {
	s := testStore(t)
	live, calls := countingFetch([]github.Issue{{Number: 1, Title: "First"}})

	_, _, err := s.Fetch("a", 10, live)
	require.NoError(t, err)

	// Move the clock past the TTL.
	s.now = func() time.Time { return time.Now().Add(TTL) }

	_, fromCache, err := s.Fetch("a", 10, live)
	require.NoError(t, err)
	assert.False(t, fromCache, "stale entry must be a miss even with matching parameters")
	assert.Equal(t, 2, *calls)
}

func TestFetchCorruptFile(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.Path, []byte("not json{{"), 0600))

	live, _ := countingFetch([]github.Issue{{Number: 5, Title: "Fresh"}})
	issues, fromCache, err := s.Fetch("a", 10, live)
	require.NoError(t, err, "corrupt cache must degrade to a miss, not an error")
	assert.False(t, fromCache)
	assert.Len(t, issues, 1)
}

func TestFetchUnwritablePath(t *testing.T) {
	s := testStore(t)
	// Point the slot below a regular file so MkdirAll fails.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))
	s.Path = filepath.Join(blocker, "issues.json")

	live, _ := countingFetch([]github.Issue{{Number: 9, Title: "Ninth"}})
	issues, fromCache, err := s.Fetch("a", 10, live)
	require.NoError(t, err, "cache write failures are swallowed")
	assert.False(t, fromCache)
	assert.Len(t, issues, 1)
}

func TestFetchLiveError(t *testing.T) {
	s := testStore(t)
	live := func(assignee string, limit int) ([]github.Issue, error) {
		return nil, os.ErrDeadlineExceeded
	}

	_, _, err := s.Fetch("a", 10, live)
	require.Error(t, err)
}
