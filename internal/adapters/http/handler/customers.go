package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngocxb/caseflow/internal/core/customer"
	"github.com/sirupsen/logrus"
)

// CustomerHandler exposes the customer registry over REST.
type CustomerHandler struct {
	uc  customer.UseCase
	log *logrus.Entry
}

// NewCustomerHandler wires a CustomerHandler.
func NewCustomerHandler(uc customer.UseCase, log *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log.WithField("handler", "customers")}
}

// EnrichRoutes registers the customer routes.
func (h *CustomerHandler) EnrichRoutes(r *gin.Engine) {
	group := r.Group("/api/v1/customers")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

type customerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Status       string    `json:"status"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func customerFromDomain(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		Status:       string(c.Status),
		ContactEmail: c.ContactEmail,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type createCustomerRequest struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Status       *string `json:"status"`
	ContactEmail *string `json:"contact_email"`
}

func (h *CustomerHandler) create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	in := customer.CreateCustomerInput{
		Name:         req.Name,
		Code:         req.Code,
		ContactEmail: req.ContactEmail,
	}
	if req.Status != nil {
		status := customer.Status(*req.Status)
		in.Status = &status
	}

	created, err := h.uc.CreateCustomer(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, customerFromDomain(created))
}

func (h *CustomerHandler) get(c *gin.Context) {
	found, err := h.uc.GetCustomer(c.Request.Context(), customer.GetCustomerInput{ID: c.Param("id")})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, customerFromDomain(found))
}

func (h *CustomerHandler) list(c *gin.Context) {
	in := customer.ListCustomersInput{}
	if raw := c.Query("status"); raw != "" {
		status := customer.Status(raw)
		in.Status = &status
	}

	listed, err := h.uc.ListCustomers(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]customerResponse, 0, len(listed))
	for _, item := range listed {
		out = append(out, customerFromDomain(item))
	}

	c.JSON(http.StatusOK, gin.H{"customers": out})
}

type updateCustomerRequest struct {
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	Status       *string `json:"status"`
	ContactEmail *string `json:"contact_email"`
}

func (h *CustomerHandler) update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var req updateCustomerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	_, contactEmailSet := present["contact_email"]

	in := customer.UpdateCustomerInput{
		ID:              c.Param("id"),
		Name:            req.Name,
		Code:            req.Code,
		ContactEmail:    req.ContactEmail,
		ContactEmailSet: contactEmailSet,
	}
	if req.Status != nil {
		status := customer.Status(*req.Status)
		in.Status = &status
	}

	updated, err := h.uc.UpdateCustomer(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, customerFromDomain(updated))
}

func (h *CustomerHandler) delete(c *gin.Context) {
	if err := h.uc.DeleteCustomer(c.Request.Context(), customer.DeleteCustomerInput{ID: c.Param("id")}); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
