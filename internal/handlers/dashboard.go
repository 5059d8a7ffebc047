package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"noticiario/internal/services"
)

type DashboardHandler struct {
	base
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{base: base{log: log}, dashboard: dashboard}
}

// Stats GET /dashboard/stats (admin)
func (h *DashboardHandler) Stats(c *gin.Context) {
	report, err := h.dashboard.ComputeStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
