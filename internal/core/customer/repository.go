package customer

import "context"

// Repository abstracts customer persistence.
type Repository interface {
	Create(ctx context.Context, c *Customer) (*Customer, error)
	Update(ctx context.Context, c *Customer) (*Customer, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByCode(ctx context.Context, code string) (*Customer, error)
	List(ctx context.Context, filter ListCustomersFilter) ([]*Customer, error)
}

// ListCustomersFilter narrows customer listings.
type ListCustomersFilter struct {
	Status *Status
}
