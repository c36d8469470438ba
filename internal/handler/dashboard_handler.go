package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/service"
)

// DashboardHandler handles supervision dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
// GET /api/v1/admin/dashboard
// Returns risk-level distribution, supervision schedule and recent
// assessment activity.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	data, err := h.dashboardService.GetDashboardData(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, data)
}
