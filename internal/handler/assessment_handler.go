package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/middleware"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/mioraralevason/suivi-backend/internal/validator"
)

// AssessmentHandler handles the institution assessment portal endpoints.
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

// institutionID extracts the caller's institution scope from the JWT.
func institutionID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.InstitutionID == nil {
		response.Fail(c, http.StatusForbidden, response.ErrInstitutionAccessOnly)
		return uuid.Nil, false
	}
	return *claims.InstitutionID, true
}

// GetForm godoc
// GET /api/v1/institution/form
// Returns the questionnaire with the institution's answers so far.
func (h *AssessmentHandler) GetForm(c *gin.Context) {
	id, ok := institutionID(c)
	if !ok {
		return
	}

	form, err := h.assessmentService.GetForm(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, form)
}

// SaveAnswer godoc
// PUT /api/v1/institution/answers
// Validates and saves one answer, queueing a score recalculation.
func (h *AssessmentHandler) SaveAnswer(c *gin.Context) {
	id, ok := institutionID(c)
	if !ok {
		return
	}

	var req model.UpsertAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer, err := h.assessmentService.SaveAnswer(c.Request.Context(), id, &req)
	if err != nil {
		var valErr *scoring.ValidationError
		if errors.As(err, &valErr) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidAnswer,
				map[string]string{"value": valErr.Message})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": answer})
}

// AxisScores godoc
// GET /api/v1/institution/axis-scores
// Returns the live per-axis aggregates for the caller's institution.
func (h *AssessmentHandler) AxisScores(c *gin.Context) {
	id, ok := institutionID(c)
	if !ok {
		return
	}

	scores, err := h.assessmentService.AxisScores(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"axis_scores": scores})
}

// QuestionScores godoc
// GET /api/v1/institution/question-scores
// Returns the per-question scoring detail for risk coloring.
func (h *AssessmentHandler) QuestionScores(c *gin.Context) {
	id, ok := institutionID(c)
	if !ok {
		return
	}

	details, err := h.assessmentService.QuestionScores(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question_scores": details})
}

// Submit godoc
// POST /api/v1/institution/submit
// Freezes the assessment and returns the classification.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	id, ok := institutionID(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.Submit(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssessmentIncomplete):
			response.Fail(c, http.StatusConflict, response.ErrAssessmentOpen)
		case errors.Is(err, service.ErrNoThresholds):
			response.Fail(c, http.StatusConflict, response.ErrNoThresholds)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"assessment": assessment})
}

// History godoc
// GET /api/v1/institution/assessments
// Returns the caller's past assessment snapshots.
func (h *AssessmentHandler) History(c *gin.Context) {
	id, ok := institutionID(c)
	if !ok {
		return
	}

	history, err := h.assessmentService.History(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assessments": history})
}
