package cases

import "context"

// Repository abstracts case persistence.
type Repository interface {
	Create(ctx context.Context, c *Case) (*Case, error)
	Update(ctx context.Context, c *Case) (*Case, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Case, error)
	ListByKind(ctx context.Context, kind Kind) ([]*Case, error)
}
