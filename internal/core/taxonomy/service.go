package taxonomy

import (
	"context"
	"fmt"
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

// Service implements taxonomy administration.
type Service struct {
	repo  Repository
	clock Clock
}

// UseCase is the public surface of taxonomy administration.
type UseCase interface {
	CreateType(ctx context.Context, in CreateTypeInput) (*Type, error)
	UpdateType(ctx context.Context, in UpdateTypeInput) (*Type, error)
	DeleteType(ctx context.Context, in DeleteTypeInput) error
	GetType(ctx context.Context, in GetTypeInput) (*Type, error)
	ListTypes(ctx context.Context, in ListTypesInput) ([]*Type, error)
}

// NewService wires the taxonomy service.
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// CreateTypeInput carries a new taxonomy entry.
type CreateTypeInput struct {
	Kind        Kind
	Name        string
	Description *string
	Active      *bool
}

// UpdateTypeInput is a partial patch of a taxonomy entry.
type UpdateTypeInput struct {
	ID             string
	Name           *string
	Description    *string
	DescriptionSet bool
	Active         *bool
}

// DeleteTypeInput identifies an entry to delete.
type DeleteTypeInput struct {
	ID string
}

// GetTypeInput identifies an entry to fetch.
type GetTypeInput struct {
	ID string
}

// ListTypesInput selects a kind and whether inactive entries are included.
type ListTypesInput struct {
	Kind       *Kind
	ActiveOnly bool
}

// CreateType adds a taxonomy entry, active by default.
func (s *Service) CreateType(ctx context.Context, in CreateTypeInput) (*Type, error) {
	if !isValidKind(in.Kind) {
		return nil, ErrInvalidKind
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := s.clock.Now()
	t := &Type{
		Kind:        in.Kind,
		Name:        name,
		Description: cloneString(in.Description),
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.repo.Create(ctx, t)
}

// UpdateType applies a partial patch.
func (s *Service) UpdateType(ctx context.Context, in UpdateTypeInput) (*Type, error) {
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

	if in.DescriptionSet {
		existing.Description = cloneString(in.Description)
	}

	if in.Active != nil {
		existing.Active = *in.Active
	}

	existing.UpdatedAt = s.clock.Now()

	return s.repo.Update(ctx, existing)
}

// DeleteType removes an entry.
func (s *Service) DeleteType(ctx context.Context, in DeleteTypeInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.Delete(ctx, in.ID)
}

// GetType fetches an entry by id.
func (s *Service) GetType(ctx context.Context, in GetTypeInput) (*Type, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.FindByID(ctx, in.ID)
}

// ListTypes lists entries, filtering inactive ones at fetch time when
// ActiveOnly is set.
func (s *Service) ListTypes(ctx context.Context, in ListTypesInput) ([]*Type, error) {
	if in.Kind != nil && !isValidKind(*in.Kind) {
		return nil, ErrInvalidKind
	}
	return s.repo.List(ctx, ListTypesFilter{Kind: in.Kind, ActiveOnly: in.ActiveOnly})
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
