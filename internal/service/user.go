package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/laramoda/storefront-api/internal/dto"
	"github.com/laramoda/storefront-api/internal/model"
	"github.com/laramoda/storefront-api/internal/repository"
)

var ErrEmailInUse = errors.New("email already in use")

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Sync records the identity provider's view of the user and returns it.
func (s *UserService) Sync(ctx context.Context, identity model.User) (*dto.UserResponse, error) {
	if identity.Role != model.RoleAdmin {
		identity.Role = model.RoleCustomer
	}
	user := identity
	if err := s.userRepo.Upsert(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	resp := toUserResponse(&user)
	return &resp, nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID: user.ID, Email: user.Email,
		FirstName: user.FirstName, LastName: user.LastName,
		ProfileImageURL: user.ProfileImageURL, Role: user.Role,
	}
}

// Ensure records identity so rows owned by the user can reference it.
func (s *UserService) Ensure(ctx context.Context, identity model.User) error {
	_, err := s.Sync(ctx, identity)
	return err
}
