package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/mioraralevason/suivi-backend/internal/validator"
)

// QuestionHandler handles question management endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListBySubSection godoc
// GET /api/v1/admin/sub-sections/:id/questions
func (h *QuestionHandler) ListBySubSection(c *gin.Context) {
	subSectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	questions, err := h.questionService.ListBySubSection(c.Request.Context(), subSectionID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Get godoc
// GET /api/v1/admin/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Create godoc
// POST /api/v1/admin/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := &model.Question{
		SubSectionID:          req.SubSectionID,
		Label:                 req.Label,
		Definition:            req.Definition,
		Type:                  scoring.QuestionType(req.Type),
		Required:              req.Required,
		JustificationRequired: req.JustificationRequired,
		CommentRequired:       req.CommentRequired,
		Min:                   req.Min,
		Max:                   req.Max,
		Options:               req.Options,
		Position:              req.Position,
	}
	if err := h.questionService.Create(c.Request.Context(), question); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// Update godoc
// PUT /api/v1/admin/questions/:id
// The question type cannot change once set.
func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Label != "" {
		question.Label = req.Label
	}
	if req.Definition != nil {
		question.Definition = *req.Definition
	}
	if req.Required != nil {
		question.Required = *req.Required
	}
	if req.JustificationRequired != nil {
		question.JustificationRequired = *req.JustificationRequired
	}
	if req.CommentRequired != nil {
		question.CommentRequired = *req.CommentRequired
	}
	if req.Min != nil {
		question.Min = req.Min
	}
	if req.Max != nil {
		question.Max = req.Max
	}
	if req.Options != nil {
		question.Options = req.Options
	}
	if req.Position != nil {
		question.Position = *req.Position
	}

	if err := h.questionService.Update(c.Request.Context(), question); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Delete godoc
// DELETE /api/v1/admin/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "question deleted successfully"})
}
