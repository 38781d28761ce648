package cases

import "sync"

// SnapshotStore orders full-list refetches against local mutations. Every
// local mutation bumps the revision; a refetch whose snapshot was taken
// before the latest mutation is stale and is discarded instead of
// reverting newer local state.
type SnapshotStore struct {
	mu       sync.Mutex
	revision uint64
	cases    []*Case
}

// NewSnapshotStore returns an empty store at revision zero.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Revision returns the revision a refetch must stamp its snapshot with.
func (s *SnapshotStore) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Bump records a local mutation and returns the new revision.
func (s *SnapshotStore) Bump() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	return s.revision
}

// Replace installs a snapshot taken at rev. It reports false and keeps the
// current state when a mutation happened after the snapshot was taken.
func (s *SnapshotStore) Replace(loaded []*Case, rev uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rev < s.revision {
		return false
	}

	s.cases = loaded
	return true
}

// Snapshot returns the currently installed list.
func (s *SnapshotStore) Snapshot() []*Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cases
}
