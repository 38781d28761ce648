package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngocxb/caseflow/internal/core/cases"
	"github.com/ngocxb/caseflow/internal/core/evaluation"
	"github.com/sirupsen/logrus"
)

// CaseHandler exposes the case lifecycle over REST.
type CaseHandler struct {
	uc  cases.UseCase
	log *logrus.Entry
}

// NewCaseHandler wires a CaseHandler.
func NewCaseHandler(uc cases.UseCase, log *logrus.Logger) *CaseHandler {
	return &CaseHandler{uc: uc, log: log.WithField("handler", "cases")}
}

// EnrichRoutes registers the case routes.
func (h *CaseHandler) EnrichRoutes(r *gin.Engine) {
	group := r.Group("/api/v1/cases")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
	group.POST("/:id/close", h.close)
}

type assessmentPayload struct {
	Difficulty *int `json:"difficulty"`
	Time       *int `json:"time"`
	Impact     *int `json:"impact"`
	Urgency    *int `json:"urgency"`
	Form       *int `json:"form,omitempty"`
}

func (p *assessmentPayload) toDomain() *evaluation.Assessment {
	if p == nil {
		return nil
	}
	return &evaluation.Assessment{
		Difficulty: p.Difficulty,
		Time:       p.Time,
		Impact:     p.Impact,
		Urgency:    p.Urgency,
		Form:       p.Form,
	}
}

func assessmentFromDomain(a evaluation.Assessment) assessmentPayload {
	return assessmentPayload{
		Difficulty: a.Difficulty,
		Time:       a.Time,
		Impact:     a.Impact,
		Urgency:    a.Urgency,
		Form:       a.Form,
	}
}

type employeeSnapshotResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type typeSnapshotResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type customerSnapshotResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type caseResponse struct {
	ID            string     `json:"id"`
	Kind          string     `json:"kind"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	RequesterID   string     `json:"requester_id"`
	HandlerID     string     `json:"handler_id"`
	CaseTypeID    string     `json:"case_type_id"`
	CustomerID    *string    `json:"customer_id,omitempty"`
	Status        string     `json:"status"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	ReferenceCode *string    `json:"reference_code,omitempty"`

	UserAssessment  assessmentPayload `json:"user_assessment"`
	AdminAssessment assessmentPayload `json:"admin_assessment"`
	CombinedTotal   int               `json:"combined_total"`
	GrandTotal      float64           `json:"grand_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Requester *employeeSnapshotResponse `json:"requester,omitempty"`
	Handler   *employeeSnapshotResponse `json:"handler,omitempty"`
	CaseType  *typeSnapshotResponse     `json:"case_type,omitempty"`
	Customer  *customerSnapshotResponse `json:"customer,omitempty"`
}

func caseFromDomain(c *cases.Case) caseResponse {
	resp := caseResponse{
		ID:              c.ID,
		Kind:            string(c.Kind),
		Title:           c.Title,
		Description:     c.Description,
		RequesterID:     c.RequesterID,
		HandlerID:       c.HandlerID,
		CaseTypeID:      c.CaseTypeID,
		CustomerID:      c.CustomerID,
		Status:          string(c.Status),
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		Notes:           c.Notes,
		ReferenceCode:   c.ReferenceCode,
		UserAssessment:  assessmentFromDomain(c.UserAssessment),
		AdminAssessment: assessmentFromDomain(c.AdminAssessment),
		CombinedTotal:   c.CombinedTotal(),
		GrandTotal:      c.GrandTotal(),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	if c.Requester != nil {
		resp.Requester = &employeeSnapshotResponse{ID: c.Requester.ID, FullName: c.Requester.FullName, Email: c.Requester.Email}
	}
	if c.Handler != nil {
		resp.Handler = &employeeSnapshotResponse{ID: c.Handler.ID, FullName: c.Handler.FullName, Email: c.Handler.Email}
	}
	if c.CaseType != nil {
		resp.CaseType = &typeSnapshotResponse{ID: c.CaseType.ID, Name: c.CaseType.Name, Active: c.CaseType.Active}
	}
	if c.Customer != nil {
		resp.Customer = &customerSnapshotResponse{ID: c.Customer.ID, Name: c.Customer.Name}
	}

	return resp
}

type createCaseRequest struct {
	Kind           string             `json:"kind"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	RequesterID    string             `json:"requester_id"`
	HandlerID      string             `json:"handler_id"`
	CaseTypeID     string             `json:"case_type_id"`
	CustomerID     *string            `json:"customer_id"`
	Status         *string            `json:"status"`
	StartDate      *time.Time         `json:"start_date"`
	EndDate        *time.Time         `json:"end_date"`
	Notes          *string            `json:"notes"`
	ReferenceCode  *string            `json:"reference_code"`
	UserAssessment *assessmentPayload `json:"user_assessment"`
}

func (h *CaseHandler) create(c *gin.Context) {
	var req createCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	in := cases.CreateCaseInput{
		Kind:           cases.Kind(req.Kind),
		Title:          req.Title,
		Description:    req.Description,
		RequesterID:    req.RequesterID,
		HandlerID:      req.HandlerID,
		CaseTypeID:     req.CaseTypeID,
		CustomerID:     req.CustomerID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Notes:          req.Notes,
		ReferenceCode:  req.ReferenceCode,
		UserAssessment: req.UserAssessment.toDomain(),
	}
	if req.Status != nil {
		status := cases.Status(*req.Status)
		in.Status = &status
	}

	created, err := h.uc.CreateCase(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, caseFromDomain(created))
}

func (h *CaseHandler) get(c *gin.Context) {
	found, err := h.uc.GetCase(c.Request.Context(), cases.GetCaseInput{ID: c.Param("id")})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, caseFromDomain(found))
}

type listCasesResponse struct {
	Cases            []caseResponse `json:"cases"`
	HasActiveFilters bool           `json:"has_active_filters"`
}

func (h *CaseHandler) list(c *gin.Context) {
	filter := cases.ListFilter{
		SearchTerm:  c.Query("search"),
		HandlerID:   c.Query("handler_id"),
		RequesterID: c.Query("requester_id"),
		CaseTypeID:  c.Query("case_type_id"),
		CustomerID:  c.Query("customer_id"),
	}

	if raw := c.Query("status"); raw != "" {
		status := cases.Status(raw)
		filter.Status = &status
	}
	if raw := c.Query("date_from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondBadRequest(c, "date_from must be RFC3339")
			return
		}
		filter.DateFrom = &parsed
	}
	if raw := c.Query("date_to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondBadRequest(c, "date_to must be RFC3339")
			return
		}
		filter.DateTo = &parsed
	}

	listed, err := h.uc.ListCases(c.Request.Context(), cases.ListCasesInput{
		Kind:   cases.Kind(c.Query("kind")),
		Filter: filter,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := listCasesResponse{
		Cases:            make([]caseResponse, 0, len(listed)),
		HasActiveFilters: filter.HasActiveFilters(),
	}
	for _, item := range listed {
		resp.Cases = append(resp.Cases, caseFromDomain(item))
	}

	c.JSON(http.StatusOK, resp)
}

type updateCaseRequest struct {
	Title           *string            `json:"title"`
	Description     *string            `json:"description"`
	HandlerID       *string            `json:"handler_id"`
	CaseTypeID      *string            `json:"case_type_id"`
	CustomerID      *string            `json:"customer_id"`
	Status          *string            `json:"status"`
	StartDate       *time.Time         `json:"start_date"`
	EndDate         *time.Time         `json:"end_date"`
	Notes           *string            `json:"notes"`
	ReferenceCode   *string            `json:"reference_code"`
	UserAssessment  *assessmentPayload `json:"user_assessment"`
	AdminAssessment *assessmentPayload `json:"admin_assessment"`
}

func (h *CaseHandler) update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var req updateCaseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	// Clearable fields distinguish an explicit null from an absent key.
	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	_, customerIDSet := present["customer_id"]
	_, endDateSet := present["end_date"]
	_, notesSet := present["notes"]
	_, referenceCodeSet := present["reference_code"]

	in := cases.UpdateCaseInput{
		ID:               c.Param("id"),
		Title:            req.Title,
		Description:      req.Description,
		HandlerID:        req.HandlerID,
		CaseTypeID:       req.CaseTypeID,
		CustomerID:       req.CustomerID,
		CustomerIDSet:    customerIDSet,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		EndDateSet:       endDateSet,
		Notes:            req.Notes,
		NotesSet:         notesSet,
		ReferenceCode:    req.ReferenceCode,
		ReferenceCodeSet: referenceCodeSet,
		UserAssessment:   req.UserAssessment.toDomain(),
		AdminAssessment:  req.AdminAssessment.toDomain(),
	}
	if req.Status != nil {
		status := cases.Status(*req.Status)
		in.Status = &status
	}

	updated, err := h.uc.UpdateCase(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, caseFromDomain(updated))
}

func (h *CaseHandler) close(c *gin.Context) {
	closed, err := h.uc.CloseCase(c.Request.Context(), cases.CloseCaseInput{ID: c.Param("id")})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, caseFromDomain(closed))
}

func (h *CaseHandler) delete(c *gin.Context) {
	if err := h.uc.DeleteCase(c.Request.Context(), cases.DeleteCaseInput{ID: c.Param("id")}); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
