package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pizzeria/internal/auth"
	"pizzeria/internal/config"
	"pizzeria/internal/entity"

	"gorm.io/gorm"
)

// SeedDefaultUser ensures the configured default user exists and returns it.
// Requests without a bearer token act on behalf of this user. The first
// account ever created gets the admin role.
func SeedDefaultUser(ctx context.Context, repo Repository, cfg config.Config) (*entity.DbUser, error) {
	if repo == nil {
		return nil, errors.New("repository not initialised")
	}

	email := strings.TrimSpace(strings.ToLower(cfg.DefaultUserEmail))
	if email == "" {
		return nil, errors.New("default user email not configured")
	}

	existing, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return nil, fmt.Errorf("failed to look up default user: %w", err)
	}

	hash, err := auth.HashPassword(cfg.DefaultUserPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default user password: %w", err)
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	role := entity.UserRoleUser
	if count == 0 {
		role = entity.UserRoleAdmin
	}

	user := &entity.DbUser{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(cfg.DefaultUserName),
		Role:         role,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create default user: %w", err)
	}
	return user, nil
}
