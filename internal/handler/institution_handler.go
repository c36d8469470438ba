package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
	"github.com/mioraralevason/suivi-backend/internal/service"
	"github.com/mioraralevason/suivi-backend/internal/validator"
)

// InstitutionHandler handles institution management endpoints.
type InstitutionHandler struct {
	institutionService *service.InstitutionService
	assessmentService  *service.AssessmentService
}

// NewInstitutionHandler creates a new InstitutionHandler.
func NewInstitutionHandler(institutionService *service.InstitutionService, assessmentService *service.AssessmentService) *InstitutionHandler {
	return &InstitutionHandler{
		institutionService: institutionService,
		assessmentService:  assessmentService,
	}
}

// List godoc
// GET /api/v1/admin/institutions?page=&per_page=&sector=&risk_level=
func (h *InstitutionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	var sector *string
	if s := c.Query("sector"); s != "" {
		sector = &s
	}
	var riskLevel *scoring.RiskLevel
	if rl := c.Query("risk_level"); rl != "" {
		level := scoring.RiskLevel(rl)
		riskLevel = &level
	}

	institutions, pagination, err := h.institutionService.List(c.Request.Context(), page, perPage, sector, riskLevel)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"institutions": institutions}, pagination)
}

// Get godoc
// GET /api/v1/admin/institutions/:id
func (h *InstitutionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	institution, err := h.institutionService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"institution": institution})
}

// Create godoc
// POST /api/v1/admin/institutions
func (h *InstitutionHandler) Create(c *gin.Context) {
	var req model.CreateInstitutionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	institution := &model.Institution{
		Name:          req.Name,
		Sector:        req.Sector,
		Address:       req.Address,
		EmployeeCount: req.EmployeeCount,
		AnnualRevenue: req.AnnualRevenue,
	}
	if err := h.institutionService.Create(c.Request.Context(), institution); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"institution": institution})
}

// Update godoc
// PUT /api/v1/admin/institutions/:id
func (h *InstitutionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateInstitutionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	institution, err := h.institutionService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Name != "" {
		institution.Name = req.Name
	}
	if req.Sector != "" {
		institution.Sector = req.Sector
	}
	if req.Address != nil {
		institution.Address = *req.Address
	}
	if req.EmployeeCount != nil {
		institution.EmployeeCount = req.EmployeeCount
	}
	if req.AnnualRevenue != nil {
		institution.AnnualRevenue = req.AnnualRevenue
	}

	if err := h.institutionService.Update(c.Request.Context(), institution); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"institution": institution})
}

// Delete godoc
// DELETE /api/v1/admin/institutions/:id
func (h *InstitutionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.institutionService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "institution deleted successfully"})
}

// History godoc
// GET /api/v1/admin/institutions/:id/assessments
// Returns the institution's assessment snapshots, newest first.
func (h *InstitutionHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	history, err := h.assessmentService.History(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assessments": history})
}

// AxisScores godoc
// GET /api/v1/admin/institutions/:id/axis-scores
// Returns the institution's live per-axis aggregates.
func (h *InstitutionHandler) AxisScores(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	scores, err := h.assessmentService.AxisScores(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"axis_scores": scores})
}
