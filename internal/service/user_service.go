// Package service contains the application's business logic.
package service

import (
	"context"
	"strings"

	"birdwatch/internal/models"
	"birdwatch/internal/repository"
	"birdwatch/internal/validation"
)

// UserService is the user directory: identity lookup and creation keyed by
// the identity provider's external ID and by chosen display name.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a UserService backed by the given repository.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// FindByExternalID looks a user up by provider identity. Returns (nil, nil)
// when no user exists for the ID.
func (s *UserService) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	if externalID == "" {
		return nil, models.NewValidationError("External ID is required")
	}
	return s.userRepo.GetByExternalID(ctx, externalID)
}

// CreatePending creates a user record with the external ID set and no display
// name. The user stays in this pending state until registration completes.
func (s *UserService) CreatePending(ctx context.Context, externalID string) (*models.User, error) {
	if externalID == "" {
		return nil, models.NewValidationError("External ID is required")
	}

	user := &models.User{ExternalID: externalID}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CompleteRegistration sets the user's display name. A user registers exactly
// once: a second attempt fails with ALREADY_NAMED even if the requested name
// differs, and a name held by another user fails with NAME_TAKEN.
func (s *UserService) CompleteRegistration(ctx context.Context, userID uint, displayName string) (*models.User, error) {
	displayName = strings.TrimSpace(displayName)
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	return s.userRepo.SetDisplayName(ctx, userID, displayName)
}

// FindByName looks a user up by display name. Returns (nil, nil) when absent.
func (s *UserService) FindByName(ctx context.Context, name string) (*models.User, error) {
	if name == "" {
		return nil, models.NewValidationError("Display name is required")
	}
	return s.userRepo.GetByDisplayName(ctx, name)
}

// GetByID fetches a user by surrogate ID.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
