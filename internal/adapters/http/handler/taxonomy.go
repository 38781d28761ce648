package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngocxb/caseflow/internal/core/taxonomy"
	"github.com/sirupsen/logrus"
)

// TypeCacheInvalidator drops cached taxonomy state after a mutation.
type TypeCacheInvalidator interface {
	Invalidate()
}

// TaxonomyHandler exposes case-type administration over REST.
type TaxonomyHandler struct {
	uc    taxonomy.UseCase
	cache TypeCacheInvalidator
	log   *logrus.Entry
}

// NewTaxonomyHandler wires a TaxonomyHandler. cache may be nil.
func NewTaxonomyHandler(uc taxonomy.UseCase, cache TypeCacheInvalidator, log *logrus.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{uc: uc, cache: cache, log: log.WithField("handler", "case-types")}
}

// EnrichRoutes registers the case-type routes.
func (h *TaxonomyHandler) EnrichRoutes(r *gin.Engine) {
	group := r.Group("/api/v1/case-types")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

func (h *TaxonomyHandler) invalidateCache() {
	if h.cache != nil {
		h.cache.Invalidate()
	}
}

type typeResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func typeFromDomain(t *taxonomy.Type) typeResponse {
	return typeResponse{
		ID:          t.ID,
		Kind:        string(t.Kind),
		Name:        t.Name,
		Description: t.Description,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type createTypeRequest struct {
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (h *TaxonomyHandler) create(c *gin.Context) {
	var req createTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	created, err := h.uc.CreateType(c.Request.Context(), taxonomy.CreateTypeInput{
		Kind:        taxonomy.Kind(req.Kind),
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.invalidateCache()
	c.JSON(http.StatusCreated, typeFromDomain(created))
}

func (h *TaxonomyHandler) get(c *gin.Context) {
	found, err := h.uc.GetType(c.Request.Context(), taxonomy.GetTypeInput{ID: c.Param("id")})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, typeFromDomain(found))
}

func (h *TaxonomyHandler) list(c *gin.Context) {
	in := taxonomy.ListTypesInput{
		ActiveOnly: c.Query("active_only") == "true",
	}
	if raw := c.Query("kind"); raw != "" {
		kind := taxonomy.Kind(raw)
		in.Kind = &kind
	}

	listed, err := h.uc.ListTypes(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]typeResponse, 0, len(listed))
	for _, t := range listed {
		out = append(out, typeFromDomain(t))
	}

	c.JSON(http.StatusOK, gin.H{"case_types": out})
}

type updateTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (h *TaxonomyHandler) update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var req updateTypeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	_, descriptionSet := present["description"]

	updated, err := h.uc.UpdateType(c.Request.Context(), taxonomy.UpdateTypeInput{
		ID:             c.Param("id"),
		Name:           req.Name,
		Description:    req.Description,
		DescriptionSet: descriptionSet,
		Active:         req.Active,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.invalidateCache()
	c.JSON(http.StatusOK, typeFromDomain(updated))
}

func (h *TaxonomyHandler) delete(c *gin.Context) {
	if err := h.uc.DeleteType(c.Request.Context(), taxonomy.DeleteTypeInput{ID: c.Param("id")}); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.invalidateCache()
	c.Status(http.StatusNoContent)
}
