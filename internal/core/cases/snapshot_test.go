package cases

import (
	"testing"
	"time"
)

func TestSnapshotStore_ReplaceCurrentRevision(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	rev := store.Revision()

	loaded := []*Case{{ID: "case-1", CreatedAt: time.Now().UTC()}}
	if !store.Replace(loaded, rev) {
		t.Fatalf("snapshot at the current revision must be installed")
	}

	got := store.Snapshot()
	if len(got) != 1 || got[0].ID != "case-1" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestSnapshotStore_DiscardsStaleRefetch(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()

	current := []*Case{{ID: "case-1"}, {ID: "case-2"}}
	if !store.Replace(current, store.Revision()) {
		t.Fatalf("initial snapshot must be installed")
	}

	// A refetch starts, then a local mutation lands before it returns.
	staleRev := store.Revision()
	store.Bump()

	stale := []*Case{{ID: "case-1"}}
	if store.Replace(stale, staleRev) {
		t.Fatalf("stale snapshot must be discarded")
	}

	got := store.Snapshot()
	if len(got) != 2 {
		t.Fatalf("stale snapshot reverted local state: %+v", got)
	}
}

func TestSnapshotStore_RefetchAfterMutationWins(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	store.Bump()

	fresh := []*Case{{ID: "case-9"}}
	if !store.Replace(fresh, store.Revision()) {
		t.Fatalf("snapshot taken after the mutation must be installed")
	}

	got := store.Snapshot()
	if len(got) != 1 || got[0].ID != "case-9" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}
