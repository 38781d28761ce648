package employee

import "context"

// Repository abstracts employee persistence.
type Repository interface {
	Create(ctx context.Context, e *Employee) (*Employee, error)
	Update(ctx context.Context, e *Employee) (*Employee, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]*Employee, error)
}

// ListEmployeesFilter narrows employee listings. The reference list is
// small enough that the application loads it whole; there is no paging.
type ListEmployeesFilter struct {
	Status *Status
}
