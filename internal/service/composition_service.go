package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pizzeria/internal/ai"
	"pizzeria/internal/apperrs"
	"pizzeria/internal/entity"
	"pizzeria/internal/model"
	"pizzeria/internal/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CompositionService owns the composition lifecycle: creation (manual and
// AI-seeded), listing, and the ownership-checked mutation protocol shared by
// update and delete.
type CompositionService struct {
	repo      model.Repository
	suggester ai.Suggester

	storage    storage.Storage
	publicBase string
}

// NewCompositionService creates a composition service instance. storage may be
// nil when photo uploads are disabled.
func NewCompositionService(repo model.Repository, suggester ai.Suggester, store storage.Storage, publicBase string) *CompositionService {
	return &CompositionService{
		repo:       repo,
		suggester:  suggester,
		storage:    store,
		publicBase: strings.TrimRight(strings.TrimSpace(publicBase), "/"),
	}
}

// Create dispatches on the command variant. The dispatch is exhaustive: an
// unknown variant is a programming error surfaced as a validation failure.
func (s *CompositionService) Create(ctx context.Context, cmd entity.CreateCompositionCommand, userID uint) (*entity.DbComposition, error) {
	switch c := cmd.(type) {
	case entity.CreateManualCommand:
		return s.createManual(ctx, c, userID)
	case entity.CreateAICommand:
		return s.createAIGenerated(ctx, c, userID)
	default:
		return nil, apperrs.Validation("unsupported composition command", nil)
	}
}

func (s *CompositionService) createManual(ctx context.Context, cmd entity.CreateManualCommand, userID uint) (*entity.DbComposition, error) {
	composition := &entity.DbComposition{
		UserID:          userID,
		Ingredients:     entity.StringArray(cmd.Ingredients),
		Rating:          cmd.Rating,
		PhotoURL:        cmd.PhotoURL,
		CompositionType: entity.CompositionTypeManual,
	}

	if err := s.repo.CreateComposition(ctx, composition); err != nil {
		return nil, apperrs.Storage("failed to create composition", err)
	}
	return composition, nil
}

// createAIGenerated performs the two-step AI write: the composition insert is
// mandatory, the generation-log insert is best effort. A failed log write is
// logged and swallowed; the caller still receives the created composition and
// no compensating delete is attempted.
func (s *CompositionService) createAIGenerated(ctx context.Context, cmd entity.CreateAICommand, userID uint) (*entity.DbComposition, error) {
	suggestion, err := s.suggester.SuggestIngredients(ctx, cmd.SeedIngredients)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			return nil, apperrs.Unavailable("ingredient suggestion failed", err)
		}
		return nil, fmt.Errorf("ingredient suggestion failed: %w", err)
	}

	composition := &entity.DbComposition{
		UserID:          userID,
		Ingredients:     entity.StringArray(suggestion.Ingredients),
		Rating:          cmd.Rating,
		PhotoURL:        cmd.PhotoURL,
		CompositionType: entity.CompositionTypeAIGenerated,
	}

	if err := s.repo.CreateComposition(ctx, composition); err != nil {
		return nil, apperrs.Storage("failed to create composition", err)
	}

	log := &entity.DbGenerationLog{
		UserID:               userID,
		CompositionID:        composition.CompositionID,
		GenerationDurationMS: suggestion.DurationMS,
	}
	if err := s.repo.CreateGenerationLog(ctx, log); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"composition_id": composition.CompositionID,
			"user_id":        userID,
		}).Warn("failed to write generation log; composition was created")
	}

	return composition, nil
}

// GetByID returns (nil, nil) when no composition exists with the given id or
// the row belongs to another user. Foreign rows are indistinguishable from
// absent ones.
func (s *CompositionService) GetByID(ctx context.Context, id, userID uint) (*entity.DbComposition, error) {
	composition, err := s.repo.GetComposition(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrs.Storage("failed to load composition", err)
	}
	if composition.UserID != userID {
		return nil, nil
	}
	return composition, nil
}

// List returns one page of the user's compositions.
func (s *CompositionService) List(ctx context.Context, userID uint, query *entity.CompositionQuery) ([]entity.DbComposition, *entity.Pagination, error) {
	if query == nil {
		return nil, nil, apperrs.Validation("missing listing parameters", nil)
	}
	query.UserID = userID

	compositions, pagination, err := s.repo.ListCompositions(ctx, query)
	if err != nil {
		return nil, nil, apperrs.Storage("failed to list compositions", err)
	}
	return compositions, pagination, nil
}

// Update applies a partial patch after verifying ownership.
func (s *CompositionService) Update(ctx context.Context, id, userID uint, updates entity.CompositionUpdates) (*entity.DbComposition, error) {
	if err := s.checkOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateComposition(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Deleted between the owner check and the patch.
			return nil, apperrs.NotFound("composition with id %d not found", id)
		}
		return nil, apperrs.Storage("failed to update composition", err)
	}
	return updated, nil
}

// Delete removes a composition after verifying ownership.
func (s *CompositionService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.checkOwnership(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.DeleteComposition(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrs.NotFound("composition with id %d not found", id)
		}
		return apperrs.Storage("failed to delete composition", err)
	}
	return nil
}

// AttachPhoto stores an uploaded photo and patches photo_url, following the
// same ownership protocol as Update and Delete.
func (s *CompositionService) AttachPhoto(ctx context.Context, id, userID uint, data []byte, ext string) (*entity.DbComposition, error) {
	if s.storage == nil {
		return nil, apperrs.Storage("photo storage not configured", nil)
	}

	if err := s.checkOwnership(ctx, id, userID); err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(ctx, data, storage.SaveOptions{
		Category:  "photos",
		Extension: ext,
		BaseName:  fmt.Sprintf("composition_%d", id),
	})
	if err != nil {
		return nil, apperrs.Storage("failed to store composition photo", err)
	}

	photoURL := s.publicURL(relPath)
	updated, err := s.repo.UpdateComposition(ctx, id, entity.CompositionUpdates{PhotoURL: &photoURL})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrs.NotFound("composition with id %d not found", id)
		}
		return nil, apperrs.Storage("failed to update composition photo", err)
	}
	return updated, nil
}

// checkOwnership implements the read-then-authorize step shared by every
// mutation: load the owner id only, report not-found for missing rows and
// forbidden for rows owned by someone else.
func (s *CompositionService) checkOwnership(ctx context.Context, id, userID uint) error {
	owner, err := s.repo.GetCompositionOwner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrs.NotFound("composition with id %d not found", id)
		}
		return apperrs.Storage("failed to verify composition ownership", err)
	}
	if owner != userID {
		return apperrs.Forbidden("you are not allowed to modify this composition")
	}
	return nil
}

func (s *CompositionService) publicURL(relPath string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(relPath), "/")
	if s.publicBase == "" {
		return "/" + trimmed
	}
	return s.publicBase + "/" + trimmed
}
