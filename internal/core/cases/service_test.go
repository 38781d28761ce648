package cases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ngocxb/caseflow/internal/core/evaluation"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeCaseRepo struct {
	cases    map[string]*Case
	sequence int
	order    []string
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[string]*Case)}
}

func (r *fakeCaseRepo) Create(_ context.Context, c *Case) (*Case, error) {
	clone := cloneCase(c)
	r.sequence++
	clone.ID = fmt.Sprintf("case-%d", r.sequence)
	r.cases[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneCase(clone), nil
}

func (r *fakeCaseRepo) Update(_ context.Context, c *Case) (*Case, error) {
	if _, ok := r.cases[c.ID]; !ok {
		return nil, ErrCaseNotFound
	}
	r.cases[c.ID] = cloneCase(c)
	return cloneCase(c), nil
}

func (r *fakeCaseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.cases[id]; !ok {
		return ErrCaseNotFound
	}
	delete(r.cases, id)
	for idx, existingID := range r.order {
		if existingID == id {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeCaseRepo) FindByID(_ context.Context, id string) (*Case, error) {
	c, ok := r.cases[id]
	if !ok {
		return nil, ErrCaseNotFound
	}
	return cloneCase(c), nil
}

func (r *fakeCaseRepo) ListByKind(_ context.Context, kind Kind) ([]*Case, error) {
	var out []*Case
	for _, id := range r.order {
		c := r.cases[id]
		if c.Kind != kind {
			continue
		}
		out = append(out, cloneCase(c))
	}
	return out, nil
}

func cloneCase(c *Case) *Case {
	if c == nil {
		return nil
	}
	clone := *c
	clone.CustomerID = cloneString(c.CustomerID)
	clone.EndDate = cloneTime(c.EndDate)
	clone.Notes = cloneString(c.Notes)
	clone.ReferenceCode = cloneString(c.ReferenceCode)
	return &clone
}

type fakeTypeDirectory struct {
	types map[string]*TypeSnapshot
}

func newFakeTypeDirectory() *fakeTypeDirectory {
	return &fakeTypeDirectory{types: map[string]*TypeSnapshot{
		"type-1": {ID: "type-1", Name: "Sự cố phần mềm", Active: true},
		"type-2": {ID: "type-2", Name: "Sự cố phần cứng", Active: false},
	}}
}

func (d *fakeTypeDirectory) ActiveType(_ context.Context, id string) (*TypeSnapshot, error) {
	t, ok := d.types[id]
	if !ok {
		return nil, ErrCaseTypeNotFound
	}
	if !t.Active {
		return nil, ErrCaseTypeInactive
	}
	snapshot := *t
	return &snapshot, nil
}

func newTestService(now time.Time) (*Service, *fakeCaseRepo) {
	repo := newFakeCaseRepo()
	svc := NewService(repo, newFakeTypeDirectory(), &stubClock{now: now}, nil)
	return svc, repo
}

func validCreateInput() CreateCaseInput {
	return CreateCaseInput{
		Kind:        KindIncident,
		Title:       "Mất kết nối mạng",
		Description: "Văn phòng tầng 3 mất mạng từ sáng",
		RequesterID: "emp-1",
		HandlerID:   "emp-2",
		CaseTypeID:  "type-1",
	}
}

func TestService_CreateCase_Defaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	created, err := svc.CreateCase(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}

	if created.Status != StatusReceived {
		t.Fatalf("expected default status received, got %s", created.Status)
	}
	if !created.StartDate.Equal(now) {
		t.Fatalf("expected start date defaulted to now, got %v", created.StartDate)
	}
	if created.EndDate != nil {
		t.Fatalf("expected no end date, got %v", created.EndDate)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestService_CreateCase_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(time.Now().UTC())
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*CreateCaseInput)
		wantErr error
	}{
		{"empty title", func(in *CreateCaseInput) { in.Title = "   " }, ErrInvalidTitle},
		{"empty description", func(in *CreateCaseInput) { in.Description = "" }, ErrInvalidDescription},
		{"empty requester", func(in *CreateCaseInput) { in.RequesterID = "" }, ErrInvalidRequester},
		{"empty handler", func(in *CreateCaseInput) { in.HandlerID = "" }, ErrInvalidHandler},
		{"empty case type", func(in *CreateCaseInput) { in.CaseTypeID = "" }, ErrInvalidCaseType},
		{"unknown case type", func(in *CreateCaseInput) { in.CaseTypeID = "type-9" }, ErrCaseTypeNotFound},
		{"inactive case type", func(in *CreateCaseInput) { in.CaseTypeID = "type-2" }, ErrCaseTypeInactive},
		{"bad kind", func(in *CreateCaseInput) { in.Kind = Kind("ticket") }, ErrInvalidKind},
		{"bad status", func(in *CreateCaseInput) { s := Status("open"); in.Status = &s }, ErrInvalidStatus},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := validCreateInput()
			tc.mutate(&in)
			if _, err := svc.CreateCase(ctx, in); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestService_CreateCase_BackdatingAllowed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	past := now.AddDate(-1, 0, 0)
	pastEnd := past.Add(48 * time.Hour)
	in := validCreateInput()
	in.StartDate = &past
	in.EndDate = &pastEnd

	created, err := svc.CreateCase(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}
	if !created.StartDate.Equal(past) {
		t.Fatalf("expected backdated start, got %v", created.StartDate)
	}

	future := now.AddDate(0, 1, 0)
	futureEnd := future.Add(time.Hour)
	in = validCreateInput()
	in.StartDate = &future
	in.EndDate = &futureEnd
	if _, err := svc.CreateCase(context.Background(), in); err != nil {
		t.Fatalf("future dates must be accepted, got %v", err)
	}
}

func TestValidateDates(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	if err := validateDates(start, nil); err != nil {
		t.Fatalf("absent end date must pass, got %v", err)
	}

	after := start.Add(time.Minute)
	if err := validateDates(start, &after); err != nil {
		t.Fatalf("end after start must pass, got %v", err)
	}

	if err := validateDates(start, &start); !errors.Is(err, ErrDateOrder) {
		t.Fatalf("equal dates must fail with ErrDateOrder, got %v", err)
	}

	before := start.Add(-time.Minute)
	if err := validateDates(start, &before); !errors.Is(err, ErrDateOrder) {
		t.Fatalf("end before start must fail with ErrDateOrder, got %v", err)
	}
}

func TestService_UpdateCase_DateOrderRevalidated(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	created, err := svc.CreateCase(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}

	badEnd := created.StartDate.Add(-time.Hour)
	_, err = svc.UpdateCase(context.Background(), UpdateCaseInput{
		ID:         created.ID,
		EndDate:    &badEnd,
		EndDateSet: true,
	})
	if !errors.Is(err, ErrDateOrder) {
		t.Fatalf("expected ErrDateOrder, got %v", err)
	}

	goodEnd := created.StartDate.Add(time.Hour)
	updated, err := svc.UpdateCase(context.Background(), UpdateCaseInput{
		ID:         created.ID,
		EndDate:    &goodEnd,
		EndDateSet: true,
	})
	if err != nil {
		t.Fatalf("UpdateCase returned error: %v", err)
	}
	if updated.EndDate == nil || !updated.EndDate.Equal(goodEnd) {
		t.Fatalf("expected end date %v, got %+v", goodEnd, updated.EndDate)
	}
}

func TestService_UpdateCase_CompletedAutofillsEndDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	created, err := svc.CreateCase(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}

	completed := StatusCompleted
	updated, err := svc.UpdateCase(context.Background(), UpdateCaseInput{
		ID:     created.ID,
		Status: &completed,
	})
	if err != nil {
		t.Fatalf("UpdateCase returned error: %v", err)
	}
	if updated.EndDate == nil || !updated.EndDate.Equal(now) {
		t.Fatalf("expected end date autofilled with now, got %+v", updated.EndDate)
	}
}

func TestService_UpdateCase_PartialPatch(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	in := validCreateInput()
	notes := "liên hệ qua số nội bộ"
	in.Notes = &notes
	created, err := svc.CreateCase(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}

	newTitle := "Mất kết nối mạng toàn tòa nhà"
	adminAssessment := evaluation.Assessment{
		Difficulty: intPtr(3),
		Time:       intPtr(2),
		Impact:     intPtr(4),
		Urgency:    intPtr(3),
	}
	updated, err := svc.UpdateCase(context.Background(), UpdateCaseInput{
		ID:              created.ID,
		Title:           &newTitle,
		AdminAssessment: &adminAssessment,
	})
	if err != nil {
		t.Fatalf("UpdateCase returned error: %v", err)
	}

	if updated.Title != newTitle {
		t.Fatalf("expected title updated, got %s", updated.Title)
	}
	if updated.Description != created.Description {
		t.Fatalf("untouched description changed: %s", updated.Description)
	}
	if updated.Notes == nil || *updated.Notes != notes {
		t.Fatalf("untouched notes changed: %+v", updated.Notes)
	}
	if !updated.AdminAssessment.IsComplete(evaluation.RoleAdmin) {
		t.Fatalf("expected complete admin assessment")
	}

	// Terminal states stay editable through UpdateCase.
	completed := StatusCompleted
	if _, err := svc.UpdateCase(context.Background(), UpdateCaseInput{ID: created.ID, Status: &completed}); err != nil {
		t.Fatalf("UpdateCase to completed returned error: %v", err)
	}
	reopened := StatusProcessing
	if _, err := svc.UpdateCase(context.Background(), UpdateCaseInput{ID: created.ID, Status: &reopened}); err != nil {
		t.Fatalf("edit after completion must be allowed, got %v", err)
	}
}

func TestService_CloseCase(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	created, err := svc.CreateCase(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}

	closed, err := svc.CloseCase(context.Background(), CloseCaseInput{ID: created.ID})
	if err != nil {
		t.Fatalf("CloseCase returned error: %v", err)
	}
	if closed.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", closed.Status)
	}
	if closed.EndDate == nil || !closed.EndDate.Equal(now) {
		t.Fatalf("expected end date set to close time, got %+v", closed.EndDate)
	}

	if _, err := svc.CloseCase(context.Background(), CloseCaseInput{ID: created.ID}); !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("second close must fail with ErrAlreadyClosed, got %v", err)
	}
}

func TestService_CloseCase_KeepsExistingEndDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	end := now.Add(2 * time.Hour)
	in := validCreateInput()
	in.EndDate = &end

	created, err := svc.CreateCase(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}

	closed, err := svc.CloseCase(context.Background(), CloseCaseInput{ID: created.ID})
	if err != nil {
		t.Fatalf("CloseCase returned error: %v", err)
	}
	if closed.EndDate == nil || !closed.EndDate.Equal(end) {
		t.Fatalf("existing end date must be preserved, got %+v", closed.EndDate)
	}
}

func TestService_ListCases_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeCaseRepo()
	clock := &stubClock{now: base}
	svc := NewService(repo, newFakeTypeDirectory(), clock, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		clock.now = base.Add(time.Duration(i) * time.Hour)
		in := validCreateInput()
		in.Title = fmt.Sprintf("Sự cố %d", i)
		if i == 2 {
			in.HandlerID = "emp-9"
		}
		if _, err := svc.CreateCase(ctx, in); err != nil {
			t.Fatalf("CreateCase returned error: %v", err)
		}
	}

	all, err := svc.ListCases(ctx, ListCasesInput{Kind: KindIncident})
	if err != nil {
		t.Fatalf("ListCases returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(all))
	}
	if all[0].Title != "Sự cố 2" {
		t.Fatalf("expected newest first, got %s", all[0].Title)
	}

	filtered, err := svc.ListCases(ctx, ListCasesInput{
		Kind:   KindIncident,
		Filter: ListFilter{HandlerID: "emp-9"},
	})
	if err != nil {
		t.Fatalf("ListCases returned error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].HandlerID != "emp-9" {
		t.Fatalf("expected only handler emp-9, got %+v", filtered)
	}

	if _, err := svc.ListCases(ctx, ListCasesInput{Kind: Kind("tickets")}); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestService_DeleteCase(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(time.Now().UTC())
	ctx := context.Background()

	created, err := svc.CreateCase(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}

	if err := svc.DeleteCase(ctx, DeleteCaseInput{ID: created.ID}); err != nil {
		t.Fatalf("DeleteCase returned error: %v", err)
	}
	if _, ok := repo.cases[created.ID]; ok {
		t.Fatalf("case still present after delete")
	}

	if err := svc.DeleteCase(ctx, DeleteCaseInput{ID: created.ID}); !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
}

func intPtr(v int) *int {
	return &v
}
