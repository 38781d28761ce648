package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngocxb/caseflow/internal/core/health"
	"github.com/sirupsen/logrus"
)

// HealthHandler exposes the liveness probe.
type HealthHandler struct {
	checker health.Checker
	log     *logrus.Entry
}

// NewHealthHandler wires a HealthHandler.
func NewHealthHandler(checker health.Checker, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, log: log.WithField("handler", "health")}
}

// EnrichRoutes registers the health route.
func (h *HealthHandler) EnrichRoutes(r *gin.Engine) {
	r.GET("/healthz", h.check)
}

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

func (h *HealthHandler) check(c *gin.Context) {
	report, err := h.checker.Check(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Warn("health check degraded")
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: report.Status, Time: report.Time})
		return
	}

	c.JSON(http.StatusOK, healthResponse{Status: report.Status, Time: report.Time})
}
