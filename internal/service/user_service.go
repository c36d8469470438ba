package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/repository"
)

// ErrInstitutionRequired is returned when an institution-role account is
// created without an institution to scope it to.
var ErrInstitutionRequired = errors.New("institution accounts must reference an institution")

// UserService handles user account business logic.
type UserService struct {
	userRepo *repository.UserRepository
	authSvc  *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, authSvc *AuthService) *UserService {
	return &UserService{userRepo: userRepo, authSvc: authSvc}
}

// Login authenticates a user and issues a JWT. Institution users get a
// single-session token; staff tokens are stateless.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.authSvc.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}

	var token string
	if user.Role == model.RoleInstitution {
		if user.InstitutionID == nil {
			return nil, ErrInstitutionRequired
		}
		token, err = s.authSvc.GenerateInstitutionToken(ctx, user.ID, *user.InstitutionID)
	} else {
		token, err = s.authSvc.GenerateStaffToken(user.ID, user.Role)
	}
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Token: token, User: *user}, nil
}

// Logout releases an institution user's session so another device can log in.
func (s *UserService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.authSvc.ResetSession(ctx, userID)
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// Create registers a new account with a hashed password.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req.Role == model.RoleInstitution && req.InstitutionID == nil {
		return nil, ErrInstitutionRequired
	}

	hash, err := s.authSvc.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if req.Role == model.RoleInstitution {
		user.InstitutionID = req.InstitutionID
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update modifies an account. An empty password leaves the hash untouched.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		hash, err := s.authSvc.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account and its session.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.authSvc.ResetSession(ctx, id)
}
