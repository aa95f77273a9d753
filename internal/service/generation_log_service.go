package service

import (
	"context"
	"fmt"

	"pizzeria/internal/apperrs"
	"pizzeria/internal/entity"
	"pizzeria/internal/model"
)

// GenerationLogService exposes the per-user AI generation history.
type GenerationLogService struct {
	repo model.Repository
}

func NewGenerationLogService(repo model.Repository) *GenerationLogService {
	return &GenerationLogService{repo: repo}
}

// List returns one page of the user's generation logs with the recorded
// duration rendered as a human-readable string.
func (s *GenerationLogService) List(ctx context.Context, userID uint, query *entity.GenerationLogQuery) ([]entity.GenerationLogItem, *entity.Pagination, error) {
	if query == nil {
		return nil, nil, apperrs.Validation("missing listing parameters", nil)
	}
	query.UserID = userID

	logs, pagination, err := s.repo.ListGenerationLogs(ctx, query)
	if err != nil {
		return nil, nil, apperrs.Storage("failed to list generation logs", err)
	}

	items := make([]entity.GenerationLogItem, 0, len(logs))
	for _, log := range logs {
		items = append(items, entity.GenerationLogItem{
			GenerationID:       log.GenerationID,
			UserID:             log.UserID,
			CompositionID:      log.CompositionID,
			GenerationDuration: formatDuration(log.GenerationDurationMS),
		})
	}
	return items, pagination, nil
}

func formatDuration(ms int64) string {
	return fmt.Sprintf("%dms", ms)
}
