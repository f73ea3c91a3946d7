package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/svoikit-backend/internal/apperror"
	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

type UserUseCase interface {
	Register(ctx context.Context, username string) (*entity.User, error)
}

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

type userUseCase struct {
	repo   userRepo
	admins []string
}

// NewUserUseCase - usernames listed in admins are registered with the admin role.
func NewUserUseCase(repo userRepo, admins []string) UserUseCase {
	return &userUseCase{
		repo:   repo,
		admins: admins,
	}
}

// Register returns the user with this name, creating it on first sight.
func (that *userUseCase) Register(ctx context.Context, username string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ErrInvalidUsername
	}

	user, err := that.repo.FindByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user into storage: %w", err)
	}

	user = &entity.User{
		ID:       uuid.NewString(),
		Username: username,
		Role:     entity.RoleUser,
	}
	if slices.Contains(that.admins, username) {
		user.Role = entity.RoleAdmin
	}

	if err = that.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user into storage: %w", err)
	}

	return user, nil
}
