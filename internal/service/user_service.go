package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cvforge/cv-service/internal/api/dto"
	"github.com/cvforge/cv-service/internal/auth"
	"github.com/cvforge/cv-service/internal/domain"
	"github.com/cvforge/cv-service/internal/repository"
	"github.com/cvforge/cv-service/internal/validation"
	apperrors "github.com/cvforge/cv-service/pkg/util"
)

// UserService handles self-service profile operations.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	BcryptCost int
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{users: deps.UserRepo, bcryptCost: deps.BcryptCost}
}

// Update applies a partial profile update. Self only; provided fields are
// validated, a new password is re-hashed, and the stored password never
// leaves this layer.
func (s *UserService) Update(ctx context.Context, id, requesterID string, payload *dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.ID.Hex() != requesterID {
		return nil, apperrors.NewForbidden("not allowed to update this user")
	}
	if err := validation.ValidateUserUpdate(payload); err != nil {
		return nil, err
	}

	if payload.Name != nil {
		user.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.Password != nil {
		hash, err := auth.HashPassword(*payload.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		case mongo.IsDuplicateKeyError(err):
			return nil, apperrors.NewConflict("email already in use", map[string]any{"email": user.Email})
		default:
			return nil, apperrors.NewInternalError(err)
		}
	}
	return user, nil
}

// Delete removes a user document. Self only. Owned CVs and reviews are left
// in place; see DESIGN.md on the cascade question.
func (s *UserService) Delete(ctx context.Context, id, requesterID string) error {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return err
	}
	if user.ID.Hex() != requesterID {
		return apperrors.NewForbidden("not allowed to delete this user")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *UserService) loadUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}
