package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles. Admin users manage the questionnaire and the rule base,
// supervisors read dashboards and assessment histories, institution
// users fill their own assessment form and nothing else.
const (
	RoleAdmin       = "admin"
	RoleSuperviseur = "superviseur"
	RoleInstitution = "institution"
)

// ValidRole reports whether name is a known role.
func ValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleSuperviseur, RoleInstitution:
		return true
	}
	return false
}

// User is an authenticated account. InstitutionID is set only for
// institution-role users and scopes everything they can see.
type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	PasswordHash  string     `json:"-"`
	Role          string     `json:"role"`
	InstitutionID *uuid.UUID `json:"institution_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the payload for registering an account. An
// institution id is required when, and only when, the role is
// institution.
type CreateUserRequest struct {
	Email         string     `json:"email" binding:"required,email,max=255"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	Password      string     `json:"password" binding:"required,min=6,max=128"`
	Role          string     `json:"role" binding:"required,oneof=admin superviseur institution"`
	InstitutionID *uuid.UUID `json:"institution_id" binding:"omitempty"`
}

// UpdateUserRequest is the payload for editing an account.
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Name     string `json:"name" binding:"omitempty,min=2,max=255"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
}
