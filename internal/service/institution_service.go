package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/scoring"
)

// InstitutionService handles institution business logic.
type InstitutionService struct {
	institutionRepo *repository.InstitutionRepository
}

// NewInstitutionService creates a new InstitutionService.
func NewInstitutionService(institutionRepo *repository.InstitutionRepository) *InstitutionService {
	return &InstitutionService{institutionRepo: institutionRepo}
}

// List retrieves institutions with pagination and optional filters.
func (s *InstitutionService) List(ctx context.Context, page, perPage int, sector *string, riskLevel *scoring.RiskLevel) ([]model.Institution, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	institutions, total, err := s.institutionRepo.ListPaginated(ctx, page, perPage, sector, riskLevel)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (int(total) + perPage - 1) / perPage
	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: int(total),
		TotalPages: totalPages,
	}
	return institutions, pagination, nil
}

// Get retrieves a single institution.
func (s *InstitutionService) Get(ctx context.Context, id uuid.UUID) (*model.Institution, error) {
	return s.institutionRepo.GetByID(ctx, id)
}

// Create registers a new institution.
func (s *InstitutionService) Create(ctx context.Context, i *model.Institution) error {
	return s.institutionRepo.Create(ctx, i)
}

// Update modifies an institution's descriptive fields.
func (s *InstitutionService) Update(ctx context.Context, i *model.Institution) error {
	return s.institutionRepo.Update(ctx, i)
}

// Delete removes an institution.
func (s *InstitutionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.institutionRepo.Delete(ctx, id)
}
