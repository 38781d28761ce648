package taxonomy

import "context"

// Repository abstracts taxonomy persistence.
type Repository interface {
	Create(ctx context.Context, t *Type) (*Type, error)
	Update(ctx context.Context, t *Type) (*Type, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Type, error)
	List(ctx context.Context, filter ListTypesFilter) ([]*Type, error)
}

// ListTypesFilter narrows taxonomy listings. ActiveOnly is how "active"
// entries are filtered at fetch time; storage keeps inactive rows.
type ListTypesFilter struct {
	Kind       *Kind
	ActiveOnly bool
}
