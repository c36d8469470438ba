package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/mioraralevason/suivi-backend/internal/validator"
)

// RuleHandler handles scoring rule management endpoints.
type RuleHandler struct {
	ruleService *service.RuleService
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleService *service.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// ListByQuestion godoc
// GET /api/v1/admin/questions/:id/rules
// Returns the question's rules in evaluation order.
func (h *RuleHandler) ListByQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	rules, err := h.ruleService.ListByQuestion(c.Request.Context(), questionID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

// Create godoc
// POST /api/v1/admin/rules
func (h *RuleHandler) Create(c *gin.Context) {
	var req model.CreateScoringRuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rule := &model.ScoringRule{
		QuestionID: req.QuestionID,
		Condition:  req.Condition,
		Points:     req.Points,
		NoteRI:     req.NoteRI,
		NoteSC:     req.NoteSC,
	}
	if err := h.ruleService.Create(c.Request.Context(), rule); err != nil {
		failRuleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rule": rule})
}

// Update godoc
// PUT /api/v1/admin/rules/:id
func (h *RuleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateScoringRuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rule := &model.ScoringRule{
		ID:        id,
		Condition: req.Condition,
		Points:    req.Points,
		NoteRI:    req.NoteRI,
		NoteSC:    req.NoteSC,
	}
	if err := h.ruleService.Update(c.Request.Context(), rule); err != nil {
		failRuleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rule": rule})
}

// Delete godoc
// DELETE /api/v1/admin/rules/:id
func (h *RuleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.ruleService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "rule deleted successfully"})
}

// Reorder godoc
// PUT /api/v1/admin/questions/:id/rules/order
// Replaces the evaluation order of the question's rules.
func (h *RuleHandler) Reorder(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ReorderScoringRulesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rules, err := h.ruleService.Reorder(c.Request.Context(), questionID, req.RuleIDs)
	if err != nil {
		if errors.Is(err, service.ErrRuleOrderMismatch) {
			response.Fail(c, http.StatusBadRequest, response.ErrRuleOrderMismatch)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

// failRuleError maps rule validation failures to API error codes.
func failRuleError(c *gin.Context, err error) {
	var parseErr *scoring.ParseError
	var configErr *scoring.ConfigurationError
	switch {
	case errors.As(err, &parseErr), errors.As(err, &configErr):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCondition)
	case errors.Is(err, service.ErrInvalidRuleModel):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRuleModel)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
