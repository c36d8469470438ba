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

// CountryHandler handles the blacklist/greylist country endpoints.
type CountryHandler struct {
	countryService *service.CountryService
}

// NewCountryHandler creates a new CountryHandler.
func NewCountryHandler(countryService *service.CountryService) *CountryHandler {
	return &CountryHandler{countryService: countryService}
}

// List godoc
// GET /api/v1/admin/countries
func (h *CountryHandler) List(c *gin.Context) {
	countries, err := h.countryService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"countries": countries})
}

// Create godoc
// POST /api/v1/admin/countries
func (h *CountryHandler) Create(c *gin.Context) {
	var req model.CreateCountryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	country := &model.Country{
		Name:     req.Name,
		Code:     req.Code,
		ListType: req.ListType,
	}
	if err := h.countryService.Create(c.Request.Context(), country); err != nil {
		response.Fail(c, http.StatusConflict, response.ErrConflict)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"country": country})
}

// Update godoc
// PUT /api/v1/admin/countries/:id
func (h *CountryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCountryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	country, err := h.countryService.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	country.ListType = req.ListType

	if err := h.countryService.Update(c.Request.Context(), country); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"country": country})
}

// Delete godoc
// DELETE /api/v1/admin/countries/:id
func (h *CountryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.countryService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "country removed successfully"})
}
