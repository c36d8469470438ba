package model

import (
	"time"

	"github.com/google/uuid"
)

// Section is a top-level thematic axis of the questionnaire (e.g. Clients,
// Produits). Its coefficient weighs the axis in the assessment-level
// aggregate; the engine itself never applies it.
type Section struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label"`
	Coefficient float64   `json:"coefficient"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubSection groups questions inside a section. Scores aggregate per
// sub-section before rolling up to the section.
type SubSection struct {
	ID        uuid.UUID `json:"id"`
	SectionID uuid.UUID `json:"section_id"`
	Label     string    `json:"label"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SectionWithSubSections is the nested read shape used by the management UI.
type SectionWithSubSections struct {
	Section
	SubSections []SubSection `json:"sub_sections"`
}

// CreateSectionRequest is the payload for creating a section.
type CreateSectionRequest struct {
	Label       string  `json:"label" binding:"required,min=2,max=255"`
	Coefficient float64 `json:"coefficient" binding:"required,gt=0"`
	Position    int     `json:"position" binding:"min=0"`
}

// UpdateSectionRequest is the payload for editing a section.
type UpdateSectionRequest struct {
	Label       string   `json:"label" binding:"omitempty,min=2,max=255"`
	Coefficient *float64 `json:"coefficient" binding:"omitempty,gt=0"`
	Position    *int     `json:"position" binding:"omitempty,min=0"`
}

// CreateSubSectionRequest is the payload for creating a sub-section.
type CreateSubSectionRequest struct {
	SectionID uuid.UUID `json:"section_id" binding:"required"`
	Label     string    `json:"label" binding:"required,min=2,max=255"`
	Position  int       `json:"position" binding:"min=0"`
}

// UpdateSubSectionRequest is the payload for editing a sub-section.
type UpdateSubSectionRequest struct {
	Label    string `json:"label" binding:"omitempty,min=2,max=255"`
	Position *int   `json:"position" binding:"omitempty,min=0"`
}
