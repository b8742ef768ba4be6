package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// UserService defines the interface for user-related operations
type UserService interface {
	CreateUser(ctx context.Context, name, email, role string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error)
	FindUser(ctx context.Context, role models.Role, email string, userID *int64) (*models.User, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// CreateUser validates the input and registers a new user
func (s *userServiceImpl) CreateUser(ctx context.Context, name, email, role string) (*models.User, error) {
	if err := validateName("name", name); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required"); err != nil {
		return nil, apperrors.NewValidationError("email is required")
	}
	if err := validate.Var(email, fmt.Sprintf("max=%d", maxEmailLength)); err != nil {
		return nil, apperrors.NewValidationError("email is too long (max %d characters)", maxEmailLength)
	}
	r, ok := models.ParseRole(role)
	if !ok {
		return nil, apperrors.NewValidationError("role must be one of Admin, Student, Faculty")
	}

	user, err := s.userRepo.CreateUser(ctx, strings.TrimSpace(name), email, r)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// GetUserByID retrieves a user of any role
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if err := validateID("user ID", id); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetAllUsers retrieves every user
func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, nil
}

// GetUsersByRole retrieves the users of one role
func (s *userServiceImpl) GetUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role %q", role)
	}
	users, err := s.userRepo.ListUsersByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("error retrieving %s users: %w", role, err)
	}
	return users, nil
}

// FindUser resolves a student or faculty member by id, then by email
func (s *userServiceImpl) FindUser(ctx context.Context, role models.Role, email string, userID *int64) (*models.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role %q", role)
	}
	email = strings.TrimSpace(email)
	if email == "" && userID == nil {
		return nil, apperrors.NewValidationError("email or userID is required")
	}
	if userID != nil {
		if err := validateID("userID", *userID); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.FindUser(ctx, role, userID, email)
	if err != nil {
		return nil, fmt.Errorf("error finding %s: %w", strings.ToLower(string(role)), err)
	}
	return user, nil
}
