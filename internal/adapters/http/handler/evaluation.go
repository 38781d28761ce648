package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngocxb/caseflow/internal/core/evaluation"
	"github.com/sirupsen/logrus"
)

// EvaluationHandler exposes assessment scoring and the option catalog.
type EvaluationHandler struct {
	catalog *evaluation.CatalogCache
	log     *logrus.Entry
}

// NewEvaluationHandler wires an EvaluationHandler.
func NewEvaluationHandler(catalog *evaluation.CatalogCache, log *logrus.Logger) *EvaluationHandler {
	return &EvaluationHandler{catalog: catalog, log: log.WithField("handler", "evaluation")}
}

// EnrichRoutes registers the evaluation routes.
func (h *EvaluationHandler) EnrichRoutes(r *gin.Engine) {
	r.POST("/api/v1/evaluations", h.evaluate)
	r.GET("/api/v1/evaluation-options", h.listOptions)
	r.POST("/api/v1/evaluation-options/refresh", h.refreshOptions)
}

type evaluateRequest struct {
	Role       string            `json:"role"`
	Assessment assessmentPayload `json:"assessment"`
}

type scoreResponse struct {
	Points int    `json:"points"`
	Label  string `json:"label"`
}

type evaluateResponse struct {
	Role       string                   `json:"role"`
	Scores     map[string]scoreResponse `json:"scores"`
	IsComplete bool                     `json:"is_complete"`
	Total      int                      `json:"total"`
}

// evaluate scores a single assessment without persisting it. Labels come
// from the cached option catalog; unmatched scores resolve to the
// not-evaluated label rather than failing the read.
func (h *EvaluationHandler) evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	role, err := evaluation.ParseRole(req.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	assessment := req.Assessment.toDomain()
	result, err := evaluation.Evaluate(*assessment, role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	catalog := h.catalog.Catalog(c.Request.Context())

	resp := evaluateResponse{
		Role:       string(role),
		Scores:     make(map[string]scoreResponse, len(result.Scores)),
		IsComplete: result.IsComplete,
		Total:      result.Total,
	}
	for category, points := range result.Scores {
		points := points
		resp.Scores[string(category)] = scoreResponse{
			Points: points,
			Label:  catalog.ResolveLabel(category, &points),
		}
	}

	c.JSON(http.StatusOK, resp)
}

type optionResponse struct {
	ID     string `json:"id"`
	Points int    `json:"points"`
	Label  string `json:"label"`
}

type listOptionsResponse struct {
	Options map[string][]optionResponse `json:"options"`
}

func (h *EvaluationHandler) listOptions(c *gin.Context) {
	catalog := h.catalog.Catalog(c.Request.Context())

	resp := listOptionsResponse{Options: make(map[string][]optionResponse)}
	for _, category := range []evaluation.Category{
		evaluation.CategoryDifficulty,
		evaluation.CategoryTime,
		evaluation.CategoryImpact,
		evaluation.CategoryUrgency,
		evaluation.CategoryForm,
	} {
		options := catalog.OptionsFor(category)
		out := make([]optionResponse, 0, len(options))
		for _, opt := range options {
			out = append(out, optionResponse{ID: opt.ID, Points: opt.Points, Label: opt.Label})
		}
		resp.Options[string(category)] = out
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EvaluationHandler) refreshOptions(c *gin.Context) {
	h.catalog.Refetch(c.Request.Context())
	c.Status(http.StatusNoContent)
}
