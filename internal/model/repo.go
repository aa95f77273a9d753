package model

import (
	"context"

	"pizzeria/internal/entity"
)

// Repository defines the datastore operations used by the services.
type Repository interface {
	// Compositions
	CreateComposition(ctx context.Context, composition *entity.DbComposition) error
	GetComposition(ctx context.Context, id uint) (*entity.DbComposition, error)
	// GetCompositionOwner fetches only the owner id of a composition; it is
	// the first step of the ownership-checked mutation protocol.
	GetCompositionOwner(ctx context.Context, id uint) (uint, error)
	ListCompositions(ctx context.Context, params *entity.CompositionQuery) ([]entity.DbComposition, *entity.Pagination, error)
	UpdateComposition(ctx context.Context, id uint, updates entity.CompositionUpdates) (*entity.DbComposition, error)
	DeleteComposition(ctx context.Context, id uint) error

	// Generation logs
	CreateGenerationLog(ctx context.Context, log *entity.DbGenerationLog) error
	ListGenerationLogs(ctx context.Context, params *entity.GenerationLogQuery) ([]entity.DbGenerationLog, *entity.Pagination, error)

	// Users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)
}
