package taxonomy

import (
	"context"
	"sync"

	"github.com/ngocxb/caseflow/internal/core/cases"
)

// Directory is a read-through cache of the full taxonomy keyed by id,
// shared by the case creation paths. Invalidation is manual: taxonomy
// mutations must call Invalidate (or Refetch) afterwards.
type Directory struct {
	repo Repository

	mu     sync.Mutex
	loaded bool
	types  map[string]*Type
}

// NewDirectory wraps a taxonomy repository.
func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

// ActiveType implements cases.TypeDirectory: it resolves an id against the
// cached taxonomy, rejecting unknown and inactive entries.
func (d *Directory) ActiveType(ctx context.Context, id string) (*cases.TypeSnapshot, error) {
	types, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	t, ok := types[id]
	if !ok {
		return nil, cases.ErrCaseTypeNotFound
	}
	if !t.Active {
		return nil, cases.ErrCaseTypeInactive
	}

	return &cases.TypeSnapshot{ID: t.ID, Name: t.Name, Active: t.Active}, nil
}

// Invalidate drops the cached taxonomy; the next lookup loads again.
func (d *Directory) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.loaded = false
	d.types = nil
}

// Refetch reloads the taxonomy immediately.
func (d *Directory) Refetch(ctx context.Context) error {
	d.Invalidate()
	_, err := d.load(ctx)
	return err
}

func (d *Directory) load(ctx context.Context) (map[string]*Type, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return d.types, nil
	}

	listed, err := d.repo.List(ctx, ListTypesFilter{})
	if err != nil {
		return nil, err
	}

	types := make(map[string]*Type, len(listed))
	for _, t := range listed {
		types[t.ID] = t
	}

	d.types = types
	d.loaded = true
	return d.types, nil
}
