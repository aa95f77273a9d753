package sql

import (
	"context"
	"fmt"

	"pizzeria/internal/entity"
)

// CreateGenerationLog inserts a new generation log row.
func (r *GormRepository) CreateGenerationLog(ctx context.Context, log *entity.DbGenerationLog) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if log == nil {
		return fmt.Errorf("generation log is nil")
	}
	return r.db.WithContext(ctx).Create(log).Error
}

var generationLogSortColumns = map[string]string{
	entity.GenerationLogSortID:       "generation_id",
	entity.GenerationLogSortDuration: "generation_duration_ms",
}

// ListGenerationLogs retrieves one page of a user's generation logs with the
// exact total count.
func (r *GormRepository) ListGenerationLogs(ctx context.Context, params *entity.GenerationLogQuery) ([]entity.DbGenerationLog, *entity.Pagination, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}
	if params == nil || params.UserID == 0 {
		return nil, nil, fmt.Errorf("missing owner filter")
	}

	query := r.db.WithContext(ctx).
		Model(&entity.DbGenerationLog{}).
		Where("user_id = ?", params.UserID)

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, nil, err
	}

	column, ok := generationLogSortColumns[params.SortBy]
	if !ok {
		column = "generation_id"
	}
	direction := "DESC"
	if params.SortOrder == entity.SortAsc {
		direction = "ASC"
	}

	page, pageSize := normalisePageParams(params.Page, params.PageSize)
	offset := (page - 1) * pageSize

	var logs []entity.DbGenerationLog
	if err := query.
		Select("generation_id", "user_id", "composition_id", "generation_duration_ms").
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(offset).
		Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, nil, err
	}

	pagination := r.calculatePagination(totalCount, page, pageSize)
	return logs, pagination, nil
}
