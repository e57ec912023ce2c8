package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/account-inventory/internal/http/response"
)

const readyTimeout = 3 * time.Second

// ReadinessProbe reports whether the account source can be read.
type ReadinessProbe func(ctx context.Context) error

type HealthHandler struct {
	probe ReadinessProbe
}

// NewHealthHandler accepts a nil probe, in which case /readyz mirrors
// /healthcheck.
func NewHealthHandler(probe ReadinessProbe) *HealthHandler {
	return &HealthHandler{probe: probe}
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /readyz
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.probe == nil {
		response.RespondOK(c, gin.H{"status": "ready"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()
	if err := h.probe(ctx); err != nil {
		msg := "account source is unavailable"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "account source did not respond in time"
		}
		response.RespondErrorMessage(c, http.StatusServiceUnavailable, "source_unavailable", msg, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ready"})
}
