package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngocxb/caseflow/internal/core/cases"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCaseUseCase struct {
	createFn func(ctx context.Context, in cases.CreateCaseInput) (*cases.Case, error)
	getFn    func(ctx context.Context, in cases.GetCaseInput) (*cases.Case, error)
	listFn   func(ctx context.Context, in cases.ListCasesInput) ([]*cases.Case, error)
	updateFn func(ctx context.Context, in cases.UpdateCaseInput) (*cases.Case, error)
	closeFn  func(ctx context.Context, in cases.CloseCaseInput) (*cases.Case, error)
	deleteFn func(ctx context.Context, in cases.DeleteCaseInput) error
}

func (s *stubCaseUseCase) CreateCase(ctx context.Context, in cases.CreateCaseInput) (*cases.Case, error) {
	return s.createFn(ctx, in)
}

func (s *stubCaseUseCase) GetCase(ctx context.Context, in cases.GetCaseInput) (*cases.Case, error) {
	return s.getFn(ctx, in)
}

func (s *stubCaseUseCase) ListCases(ctx context.Context, in cases.ListCasesInput) ([]*cases.Case, error) {
	return s.listFn(ctx, in)
}

func (s *stubCaseUseCase) UpdateCase(ctx context.Context, in cases.UpdateCaseInput) (*cases.Case, error) {
	return s.updateFn(ctx, in)
}

func (s *stubCaseUseCase) CloseCase(ctx context.Context, in cases.CloseCaseInput) (*cases.Case, error) {
	return s.closeFn(ctx, in)
}

func (s *stubCaseUseCase) DeleteCase(ctx context.Context, in cases.DeleteCaseInput) error {
	return s.deleteFn(ctx, in)
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))
	return log
}

func newCaseRouter(uc cases.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewCaseHandler(uc, newTestLogger()).EnrichRoutes(engine)
	return engine
}

func sampleCase() *cases.Case {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &cases.Case{
		ID:          "case-1",
		Kind:        cases.KindIncident,
		Title:       "Sự cố mạng",
		Description: "Mất kết nối chi nhánh",
		RequesterID: "emp-1",
		HandlerID:   "emp-2",
		CaseTypeID:  "type-1",
		Status:      cases.StatusReceived,
		StartDate:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
		Requester:   &cases.EmployeeSnapshot{ID: "emp-1", FullName: "Nguyễn Văn A", Email: "a@example.com"},
		Handler:     &cases.EmployeeSnapshot{ID: "emp-2", FullName: "Trần Thị B", Email: "b@example.com"},
		CaseType:    &cases.TypeSnapshot{ID: "type-1", Name: "Hạ tầng", Active: true},
	}
}

func TestCaseHandler_Create(t *testing.T) {
	t.Parallel()

	var captured cases.CreateCaseInput
	uc := &stubCaseUseCase{
		createFn: func(_ context.Context, in cases.CreateCaseInput) (*cases.Case, error) {
			captured = in
			return sampleCase(), nil
		},
	}

	body := `{
        "kind": "incident",
        "title": "Sự cố mạng",
        "description": "Mất kết nối chi nhánh",
        "requester_id": "emp-1",
        "handler_id": "emp-2",
        "case_type_id": "type-1",
        "user_assessment": {"difficulty": 3}
    }`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", bytes.NewBufferString(body))
	newCaseRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, cases.KindIncident, captured.Kind)
	require.NotNil(t, captured.UserAssessment)
	require.NotNil(t, captured.UserAssessment.Difficulty)
	assert.Equal(t, 3, *captured.UserAssessment.Difficulty)

	var resp caseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "case-1", resp.ID)
	assert.Equal(t, "received", resp.Status)
	require.NotNil(t, resp.Requester)
	assert.Equal(t, "Nguyễn Văn A", resp.Requester.FullName)
}

func TestCaseHandler_Create_InvalidKind(t *testing.T) {
	t.Parallel()

	uc := &stubCaseUseCase{
		createFn: func(context.Context, cases.CreateCaseInput) (*cases.Case, error) {
			return nil, cases.ErrInvalidKind
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases", bytes.NewBufferString(`{"kind":"unknown"}`))
	newCaseRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCaseHandler_List_ParsesFilterParams(t *testing.T) {
	t.Parallel()

	var captured cases.ListCasesInput
	uc := &stubCaseUseCase{
		listFn: func(_ context.Context, in cases.ListCasesInput) ([]*cases.Case, error) {
			captured = in
			return []*cases.Case{sampleCase()}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/cases?kind=incident&search=m%E1%BA%A1ng&handler_id=emp-2&status=received&date_from=2025-01-01T00:00:00Z", nil)
	newCaseRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cases.KindIncident, captured.Kind)
	assert.Equal(t, "mạng", captured.Filter.SearchTerm)
	assert.Equal(t, "emp-2", captured.Filter.HandlerID)
	require.NotNil(t, captured.Filter.Status)
	assert.Equal(t, cases.StatusReceived, *captured.Filter.Status)
	require.NotNil(t, captured.Filter.DateFrom)

	var resp listCasesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Cases, 1)
	assert.True(t, resp.HasActiveFilters)
}

func TestCaseHandler_List_InvalidDate(t *testing.T) {
	t.Parallel()

	uc := &stubCaseUseCase{
		listFn: func(context.Context, cases.ListCasesInput) ([]*cases.Case, error) {
			t.Fatal("use case must not be called")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases?kind=incident&date_from=yesterday", nil)
	newCaseRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCaseHandler_Update_PresenceFlags(t *testing.T) {
	t.Parallel()

	var captured cases.UpdateCaseInput
	uc := &stubCaseUseCase{
		updateFn: func(_ context.Context, in cases.UpdateCaseInput) (*cases.Case, error) {
			captured = in
			return sampleCase(), nil
		},
	}

	body := `{"title": "Cập nhật", "end_date": null, "notes": "ghi chú"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cases/case-1", bytes.NewBufferString(body))
	newCaseRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "case-1", captured.ID)
	require.NotNil(t, captured.Title)
	assert.Equal(t, "Cập nhật", *captured.Title)

	assert.True(t, captured.EndDateSet, "explicit null clears the end date")
	assert.Nil(t, captured.EndDate)
	assert.True(t, captured.NotesSet)
	require.NotNil(t, captured.Notes)
	assert.False(t, captured.CustomerIDSet, "absent keys stay untouched")
	assert.False(t, captured.ReferenceCodeSet)
}

func TestCaseHandler_Close_AlreadyClosed(t *testing.T) {
	t.Parallel()

	uc := &stubCaseUseCase{
		closeFn: func(context.Context, cases.CloseCaseInput) (*cases.Case, error) {
			return nil, cases.ErrAlreadyClosed
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cases/case-1/close", nil)
	newCaseRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCaseHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubCaseUseCase{
		getFn: func(context.Context, cases.GetCaseInput) (*cases.Case, error) {
			return nil, cases.ErrCaseNotFound
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cases/missing", nil)
	newCaseRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCaseHandler_Delete(t *testing.T) {
	t.Parallel()

	deleted := ""
	uc := &stubCaseUseCase{
		deleteFn: func(_ context.Context, in cases.DeleteCaseInput) error {
			deleted = in.ID
			return nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cases/case-1", nil)
	newCaseRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "case-1", deleted)
}
