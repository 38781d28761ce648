package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngocxb/caseflow/internal/core/employee"
	"github.com/sirupsen/logrus"
)

// EmployeeHandler exposes the employee directory over REST.
type EmployeeHandler struct {
	uc  employee.UseCase
	log *logrus.Entry
}

// NewEmployeeHandler wires an EmployeeHandler.
func NewEmployeeHandler(uc employee.UseCase, log *logrus.Logger) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, log: log.WithField("handler", "employees")}
}

// EnrichRoutes registers the employee routes.
func (h *EmployeeHandler) EnrichRoutes(r *gin.Engine) {
	group := r.Group("/api/v1/employees")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

type employeeResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department *string   `json:"department,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func employeeFromDomain(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

type createEmployeeRequest struct {
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

func (h *EmployeeHandler) create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	in := employee.CreateEmployeeInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
	}
	if req.Status != nil {
		status := employee.Status(*req.Status)
		in.Status = &status
	}

	created, err := h.uc.CreateEmployee(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, employeeFromDomain(created))
}

func (h *EmployeeHandler) get(c *gin.Context) {
	found, err := h.uc.GetEmployee(c.Request.Context(), employee.GetEmployeeInput{ID: c.Param("id")})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, employeeFromDomain(found))
}

func (h *EmployeeHandler) list(c *gin.Context) {
	in := employee.ListEmployeesInput{}
	if raw := c.Query("status"); raw != "" {
		status := employee.Status(raw)
		in.Status = &status
	}

	listed, err := h.uc.ListEmployees(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]employeeResponse, 0, len(listed))
	for _, e := range listed {
		out = append(out, employeeFromDomain(e))
	}

	c.JSON(http.StatusOK, gin.H{"employees": out})
}

type updateEmployeeRequest struct {
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

func (h *EmployeeHandler) update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var req updateEmployeeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	_, departmentSet := present["department"]

	in := employee.UpdateEmployeeInput{
		ID:            c.Param("id"),
		FullName:      req.FullName,
		Email:         req.Email,
		Department:    req.Department,
		DepartmentSet: departmentSet,
	}
	if req.Status != nil {
		status := employee.Status(*req.Status)
		in.Status = &status
	}

	updated, err := h.uc.UpdateEmployee(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, employeeFromDomain(updated))
}

func (h *EmployeeHandler) delete(c *gin.Context) {
	if err := h.uc.DeleteEmployee(c.Request.Context(), employee.DeleteEmployeeInput{ID: c.Param("id")}); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
