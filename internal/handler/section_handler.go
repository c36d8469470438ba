package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/mioraralevason/suivi-backend/internal/validator"
)

// SectionHandler handles questionnaire structure endpoints.
type SectionHandler struct {
	questionService *service.QuestionService
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(questionService *service.QuestionService) *SectionHandler {
	return &SectionHandler{questionService: questionService}
}

// List godoc
// GET /api/v1/admin/sections
// Returns all sections with their sub-sections nested.
func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.questionService.ListSections(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

// Create godoc
// POST /api/v1/admin/sections
func (h *SectionHandler) Create(c *gin.Context) {
	var req model.CreateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section := &model.Section{
		Label:       req.Label,
		Coefficient: req.Coefficient,
		Position:    req.Position,
	}
	if err := h.questionService.CreateSection(c.Request.Context(), section); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"section": section})
}

// Update godoc
// PUT /api/v1/admin/sections/:id
func (h *SectionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section, err := h.questionService.GetSection(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Label != "" {
		section.Label = req.Label
	}
	if req.Coefficient != nil {
		section.Coefficient = *req.Coefficient
	}
	if req.Position != nil {
		section.Position = *req.Position
	}

	if err := h.questionService.UpdateSection(c.Request.Context(), section); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"section": section})
}

// Delete godoc
// DELETE /api/v1/admin/sections/:id
func (h *SectionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.DeleteSection(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "section deleted successfully"})
}

// CreateSubSection godoc
// POST /api/v1/admin/sub-sections
func (h *SectionHandler) CreateSubSection(c *gin.Context) {
	var req model.CreateSubSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ss := &model.SubSection{
		SectionID: req.SectionID,
		Label:     req.Label,
		Position:  req.Position,
	}
	if err := h.questionService.CreateSubSection(c.Request.Context(), ss); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"sub_section": ss})
}

// UpdateSubSection godoc
// PUT /api/v1/admin/sub-sections/:id
func (h *SectionHandler) UpdateSubSection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateSubSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ss, err := h.questionService.GetSubSection(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Label != "" {
		ss.Label = req.Label
	}
	if req.Position != nil {
		ss.Position = *req.Position
	}

	if err := h.questionService.UpdateSubSection(c.Request.Context(), ss); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sub_section": ss})
}

// DeleteSubSection godoc
// DELETE /api/v1/admin/sub-sections/:id
func (h *SectionHandler) DeleteSubSection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.DeleteSubSection(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "sub-section deleted successfully"})
}
