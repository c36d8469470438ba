package model

import (
	"time"

	"github.com/google/uuid"
)

// Country list categories per the FATF-style risk lists.
const (
	ListBlacklist = "blacklist"
	ListGreylist  = "greylist"
)

// Country is a risk-listed country used as reference data when assessing
// an institution's geographic exposure.
type Country struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	ListType  string    `json:"list_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCountryRequest is the payload for listing a country.
type CreateCountryRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Code     string `json:"code" binding:"required,min=2,max=3"`
	ListType string `json:"list_type" binding:"required,oneof=blacklist greylist"`
}

// UpdateCountryRequest moves a country between lists.
type UpdateCountryRequest struct {
	ListType string `json:"list_type" binding:"required,oneof=blacklist greylist"`
}
