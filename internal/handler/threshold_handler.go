package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/mioraralevason/suivi-backend/internal/validator"
)

// ThresholdHandler handles risk threshold endpoints.
type ThresholdHandler struct {
	thresholdService *service.ThresholdService
}

// NewThresholdHandler creates a new ThresholdHandler.
func NewThresholdHandler(thresholdService *service.ThresholdService) *ThresholdHandler {
	return &ThresholdHandler{thresholdService: thresholdService}
}

// List godoc
// GET /api/v1/admin/thresholds
func (h *ThresholdHandler) List(c *gin.Context) {
	thresholds, err := h.thresholdService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"thresholds": thresholds})
}

// Save godoc
// PUT /api/v1/admin/thresholds
// Replaces the whole threshold configuration. A set with a gap, an
// overlap or a wrong floor/ceiling is rejected before anything is
// written.
func (h *ThresholdHandler) Save(c *gin.Context) {
	var req model.SaveThresholdsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	saved, err := h.thresholdService.Replace(c.Request.Context(), req.Bands())
	if err != nil {
		var configErr *scoring.ConfigurationError
		if errors.As(err, &configErr) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrThresholdSet,
				map[string]string{"thresholds": configErr.Message})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"thresholds": saved})
}
