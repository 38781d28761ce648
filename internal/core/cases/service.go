package cases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ngocxb/caseflow/internal/core/evaluation"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager abstracts transaction control.
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// TypeDirectory resolves a case type against the active taxonomy. It must
// return ErrCaseTypeNotFound for unknown ids and ErrCaseTypeInactive for
// types that exist but are switched off.
type TypeDirectory interface {
	ActiveType(ctx context.Context, id string) (*TypeSnapshot, error)
}

// Service implements the case lifecycle use cases.
type Service struct {
	repo  Repository
	types TypeDirectory
	clock Clock
	tx    TransactionManager
}

// UseCase is the public surface of the case lifecycle.
type UseCase interface {
	CreateCase(ctx context.Context, in CreateCaseInput) (*Case, error)
	GetCase(ctx context.Context, in GetCaseInput) (*Case, error)
	ListCases(ctx context.Context, in ListCasesInput) ([]*Case, error)
	UpdateCase(ctx context.Context, in UpdateCaseInput) (*Case, error)
	CloseCase(ctx context.Context, in CloseCaseInput) (*Case, error)
	DeleteCase(ctx context.Context, in DeleteCaseInput) error
}

// NewService wires the case lifecycle service.
func NewService(repo Repository, types TypeDirectory, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, types: types, clock: clock, tx: tx}
}

// CreateCaseInput carries the fields of a new case.
type CreateCaseInput struct {
	Kind           Kind
	Title          string
	Description    string
	RequesterID    string
	HandlerID      string
	CaseTypeID     string
	CustomerID     *string
	Status         *Status
	StartDate      *time.Time
	EndDate        *time.Time
	Notes          *string
	ReferenceCode  *string
	UserAssessment *evaluation.Assessment
}

// UpdateCaseInput is a partial patch. Pointer fields are applied when
// non-nil; the Set flags distinguish "clear" from "leave untouched" for
// clearable fields.
type UpdateCaseInput struct {
	ID               string
	Title            *string
	Description      *string
	HandlerID        *string
	CaseTypeID       *string
	CustomerID       *string
	CustomerIDSet    bool
	Status           *Status
	StartDate        *time.Time
	EndDate          *time.Time
	EndDateSet       bool
	Notes            *string
	NotesSet         bool
	ReferenceCode    *string
	ReferenceCodeSet bool
	UserAssessment   *evaluation.Assessment
	AdminAssessment  *evaluation.Assessment
}

// GetCaseInput identifies a case to fetch.
type GetCaseInput struct {
	ID string
}

// CloseCaseInput identifies a case to close.
type CloseCaseInput struct {
	ID string
}

// DeleteCaseInput identifies a case to delete.
type DeleteCaseInput struct {
	ID string
}

// ListCasesInput selects one kind and applies the optional list filter.
type ListCasesInput struct {
	Kind   Kind
	Filter ListFilter
}

// CreateCase validates and persists a new case. Status defaults to
// received and the start date to the current time; backdating is allowed.
func (s *Service) CreateCase(ctx context.Context, in CreateCaseInput) (*Case, error) {
	if !isValidKind(in.Kind) {
		return nil, ErrInvalidKind
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, ErrInvalidDescription
	}

	requesterID := strings.TrimSpace(in.RequesterID)
	if requesterID == "" {
		return nil, ErrInvalidRequester
	}

	handlerID := strings.TrimSpace(in.HandlerID)
	if handlerID == "" {
		return nil, ErrInvalidHandler
	}

	caseTypeID := strings.TrimSpace(in.CaseTypeID)
	if caseTypeID == "" {
		return nil, ErrInvalidCaseType
	}

	caseType, err := s.types.ActiveType(ctx, caseTypeID)
	if err != nil {
		return nil, err
	}

	status := StatusReceived
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	startDate := s.clock.Now()
	if in.StartDate != nil {
		startDate = *in.StartDate
	}

	if err := validateDates(startDate, in.EndDate); err != nil {
		return nil, err
	}

	var userAssessment evaluation.Assessment
	if in.UserAssessment != nil {
		userAssessment = *in.UserAssessment
	}

	var created *Case
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		c := &Case{
			Kind:           in.Kind,
			Title:          title,
			Description:    description,
			RequesterID:    requesterID,
			HandlerID:      handlerID,
			CaseTypeID:     caseType.ID,
			CustomerID:     cloneString(in.CustomerID),
			Status:         status,
			StartDate:      startDate,
			EndDate:        cloneTime(in.EndDate),
			Notes:          cloneString(in.Notes),
			ReferenceCode:  cloneString(in.ReferenceCode),
			UserAssessment: userAssessment,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		result, err := s.repo.Create(txCtx, c)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetCase fetches a case by id.
func (s *Service) GetCase(ctx context.Context, in GetCaseInput) (*Case, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Case
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListCases loads the kind's full collection and applies the filter facade
// in memory. The result is ordered newest first by creation time.
func (s *Service) ListCases(ctx context.Context, in ListCasesInput) ([]*Case, error) {
	if !isValidKind(in.Kind) {
		return nil, ErrInvalidKind
	}

	var loaded []*Case
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByKind(txCtx, in.Kind)
		if err != nil {
			return err
		}
		loaded = result
		return nil
	}); err != nil {
		return nil, err
	}

	return in.Filter.Apply(loaded), nil
}

// UpdateCase applies a partial patch. Date order is re-validated whenever
// either date is touched. Setting the status to completed without an end
// date fills it with the current time; that is a convenience default the
// original application relies on, not a lifecycle invariant.
func (s *Service) UpdateCase(ctx context.Context, in UpdateCaseInput) (*Case, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Case
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return ErrInvalidTitle
			}
			existing.Title = title
		}

		if in.Description != nil {
			description := strings.TrimSpace(*in.Description)
			if description == "" {
				return ErrInvalidDescription
			}
			existing.Description = description
		}

		if in.HandlerID != nil {
			handlerID := strings.TrimSpace(*in.HandlerID)
			if handlerID == "" {
				return ErrInvalidHandler
			}
			existing.HandlerID = handlerID
		}

		if in.CaseTypeID != nil {
			caseTypeID := strings.TrimSpace(*in.CaseTypeID)
			if caseTypeID == "" {
				return ErrInvalidCaseType
			}
			if caseTypeID != existing.CaseTypeID {
				caseType, err := s.types.ActiveType(txCtx, caseTypeID)
				if err != nil {
					return err
				}
				existing.CaseTypeID = caseType.ID
			}
		}

		if in.CustomerIDSet {
			existing.CustomerID = cloneString(in.CustomerID)
		}

		if in.Status != nil {
			if !isValidStatus(*in.Status) {
				return ErrInvalidStatus
			}
			existing.Status = *in.Status
		}

		datesTouched := false
		if in.StartDate != nil {
			existing.StartDate = *in.StartDate
			datesTouched = true
		}
		if in.EndDateSet {
			existing.EndDate = cloneTime(in.EndDate)
			datesTouched = true
		}

		if existing.Status == StatusCompleted && existing.EndDate == nil {
			now := s.clock.Now()
			existing.EndDate = &now
		}

		if datesTouched {
			if err := validateDates(existing.StartDate, existing.EndDate); err != nil {
				return err
			}
		}

		if in.NotesSet {
			existing.Notes = cloneString(in.Notes)
		}

		if in.ReferenceCodeSet {
			existing.ReferenceCode = cloneString(in.ReferenceCode)
		}

		if in.UserAssessment != nil {
			existing.UserAssessment = *in.UserAssessment
		}

		if in.AdminAssessment != nil {
			existing.AdminAssessment = *in.AdminAssessment
		}

		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// CloseCase moves a case to completed, filling the end date with the close
// time when absent. Closing an already completed case is rejected with
// ErrAlreadyClosed so the caller can surface the redundant action.
func (s *Service) CloseCase(ctx context.Context, in CloseCaseInput) (*Case, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var closed *Case
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if existing.Status == StatusCompleted {
			return ErrAlreadyClosed
		}

		now := s.clock.Now()
		existing.Status = StatusCompleted
		if existing.EndDate == nil {
			existing.EndDate = &now
		}
		existing.UpdatedAt = now

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		closed = result
		return nil
	}); err != nil {
		return nil, err
	}

	return closed, nil
}

// DeleteCase removes a case.
func (s *Service) DeleteCase(ctx context.Context, in DeleteCaseInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// validateDates enforces the one structural date rule: when an end date is
// present it must be strictly after the start date. There is no constraint
// relative to the current time.
func validateDates(startDate time.Time, endDate *time.Time) error {
	if endDate == nil {
		return nil
	}
	if !endDate.After(startDate) {
		return ErrDateOrder
	}
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
