package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
)

// CountryService manages the blacklist/greylist country reference data.
type CountryService struct {
	countryRepo *repository.CountryRepository
}

// NewCountryService creates a new CountryService.
func NewCountryService(countryRepo *repository.CountryRepository) *CountryService {
	return &CountryService{countryRepo: countryRepo}
}

// List retrieves all listed countries.
func (s *CountryService) List(ctx context.Context) ([]model.Country, error) {
	return s.countryRepo.List(ctx)
}

// Get retrieves a single listed country.
func (s *CountryService) Get(ctx context.Context, id uuid.UUID) (*model.Country, error) {
	return s.countryRepo.GetByID(ctx, id)
}

// Create adds a country to a risk list.
func (s *CountryService) Create(ctx context.Context, c *model.Country) error {
	return s.countryRepo.Create(ctx, c)
}

// Update moves a country between risk lists.
func (s *CountryService) Update(ctx context.Context, c *model.Country) error {
	return s.countryRepo.Update(ctx, c)
}

// Delete removes a country from the risk lists.
func (s *CountryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.countryRepo.Delete(ctx, id)
}
