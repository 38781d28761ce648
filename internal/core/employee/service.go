package employee

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
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

// Service implements the employee directory use cases.
type Service struct {
	repo  Repository
	clock Clock
}

// UseCase is the public surface of the employee directory.
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error)
}

// NewService wires the employee service.
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// CreateEmployeeInput carries a new employee record.
type CreateEmployeeInput struct {
	FullName   string
	Email      string
	Department *string
	Status     *Status
}

// UpdateEmployeeInput is a partial patch of an employee record.
type UpdateEmployeeInput struct {
	ID            string
	FullName      *string
	Email         *string
	Department    *string
	DepartmentSet bool
	Status        *Status
}

// DeleteEmployeeInput identifies an employee to delete.
type DeleteEmployeeInput struct {
	ID string
}

// GetEmployeeInput identifies an employee to fetch.
type GetEmployeeInput struct {
	ID string
}

// ListEmployeesInput narrows the employee listing.
type ListEmployeesInput struct {
	Status *Status
}

// CreateEmployee validates and persists a new employee.
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, ErrInvalidFullName
	}

	email, err := normalizeEmail(in.Email)
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

	if err := s.ensureEmailNotExists(ctx, email); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	e := &Employee{
		FullName:   fullName,
		Email:      email,
		Department: cloneString(in.Department),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return s.repo.Create(ctx, e)
}

// UpdateEmployee applies a partial patch.
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	existing, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		fullName := strings.TrimSpace(*in.FullName)
		if fullName == "" {
			return nil, ErrInvalidFullName
		}
		existing.FullName = fullName
	}

	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if email != existing.Email {
			if err := s.ensureEmailNotExists(ctx, email); err != nil {
				return nil, err
			}
			existing.Email = email
		}
	}

	if in.DepartmentSet {
		existing.Department = cloneString(in.Department)
	}

	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		existing.Status = *in.Status
	}

	existing.UpdatedAt = s.clock.Now()

	return s.repo.Update(ctx, existing)
}

// DeleteEmployee removes an employee.
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.Delete(ctx, in.ID)
}

// GetEmployee fetches an employee by id.
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.FindByID(ctx, in.ID)
}

// ListEmployees lists the directory, optionally by status.
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error) {
	if in.Status != nil && !isValidStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, ListEmployeesFilter{Status: in.Status})
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if existing != nil {
		return ErrEmailAlreadyExists
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(trimmed), nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
