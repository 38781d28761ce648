package customer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

var codePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Service implements the customer registry use cases.
type Service struct {
	repo  Repository
	clock Clock
}

// UseCase is the public surface of the customer registry.
type UseCase interface {
	CreateCustomer(ctx context.Context, in CreateCustomerInput) (*Customer, error)
	UpdateCustomer(ctx context.Context, in UpdateCustomerInput) (*Customer, error)
	DeleteCustomer(ctx context.Context, in DeleteCustomerInput) error
	GetCustomer(ctx context.Context, in GetCustomerInput) (*Customer, error)
	ListCustomers(ctx context.Context, in ListCustomersInput) ([]*Customer, error)
}

// NewService wires the customer service.
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// CreateCustomerInput carries a new customer record.
type CreateCustomerInput struct {
	Name         string
	Code         string
	Status       *Status
	ContactEmail *string
}

// UpdateCustomerInput is a partial patch of a customer record.
type UpdateCustomerInput struct {
	ID              string
	Name            *string
	Code            *string
	Status          *Status
	ContactEmail    *string
	ContactEmailSet bool
}

// DeleteCustomerInput identifies a customer to delete.
type DeleteCustomerInput struct {
	ID string
}

// GetCustomerInput identifies a customer to fetch.
type GetCustomerInput struct {
	ID string
}

// ListCustomersInput narrows the customer listing.
type ListCustomersInput struct {
	Status *Status
}

// CreateCustomer validates and persists a new customer.
func (s *Service) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	code, err := normalizeCode(in.Code)
	if err != nil {
		return nil, err
	}

	status := StatusActive
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	if err := s.ensureCodeNotExists(ctx, code); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	c := &Customer{
		Name:         name,
		Code:         code,
		Status:       status,
		ContactEmail: cloneString(in.ContactEmail),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, c)
}

// UpdateCustomer applies a partial patch.
func (s *Service) UpdateCustomer(ctx context.Context, in UpdateCustomerInput) (*Customer, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	existing, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		existing.Name = name
	}

	if in.Code != nil {
		code, err := normalizeCode(*in.Code)
		if err != nil {
			return nil, err
		}
		if code != existing.Code {
			if err := s.ensureCodeNotExists(ctx, code); err != nil {
				return nil, err
			}
			existing.Code = code
		}
	}

	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		existing.Status = *in.Status
	}

	if in.ContactEmailSet {
		existing.ContactEmail = cloneString(in.ContactEmail)
	}

	existing.UpdatedAt = s.clock.Now()

	return s.repo.Update(ctx, existing)
}

// DeleteCustomer removes a customer.
func (s *Service) DeleteCustomer(ctx context.Context, in DeleteCustomerInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.Delete(ctx, in.ID)
}

// GetCustomer fetches a customer by id.
func (s *Service) GetCustomer(ctx context.Context, in GetCustomerInput) (*Customer, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.FindByID(ctx, in.ID)
}

// ListCustomers lists the registry, optionally by status.
func (s *Service) ListCustomers(ctx context.Context, in ListCustomersInput) ([]*Customer, error) {
	if in.Status != nil && !isValidStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, ListCustomersFilter{Status: in.Status})
}

func (s *Service) ensureCodeNotExists(ctx context.Context, code string) error {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, ErrCustomerNotFound) {
		return err
	}
	if existing != nil {
		return ErrCodeAlreadyExists
	}
	return nil
}

func normalizeCode(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidCode
	}

	lower := strings.ToLower(trimmed)
	if !codePattern.MatchString(lower) {
		return "", ErrInvalidCode
	}
	return lower, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
