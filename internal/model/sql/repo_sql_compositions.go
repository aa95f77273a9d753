package sql

import (
	"context"
	"fmt"

	"pizzeria/internal/entity"

	"gorm.io/gorm"
)

// CreateComposition inserts a new composition row.
func (r *GormRepository) CreateComposition(ctx context.Context, composition *entity.DbComposition) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if composition == nil {
		return fmt.Errorf("composition is nil")
	}
	return r.db.WithContext(ctx).Create(composition).Error
}

// GetComposition retrieves a single composition by ID.
func (r *GormRepository) GetComposition(ctx context.Context, id uint) (*entity.DbComposition, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid composition id")
	}

	var composition entity.DbComposition
	if err := r.db.WithContext(ctx).First(&composition, "composition_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load composition: %w", err)
	}
	return &composition, nil
}

// GetCompositionOwner loads only the owner id of a composition. Returns
// gorm.ErrRecordNotFound when no row exists.
func (r *GormRepository) GetCompositionOwner(ctx context.Context, id uint) (uint, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid composition id")
	}

	var row struct {
		UserID uint
	}
	err := r.db.WithContext(ctx).
		Model(&entity.DbComposition{}).
		Select("user_id").
		Where("composition_id = ?", id).
		Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, err
		}
		return 0, fmt.Errorf("failed to load composition owner: %w", err)
	}
	return row.UserID, nil
}

// compositionSortColumns whitelists the sortable columns.
var compositionSortColumns = map[string]string{
	entity.CompositionSortCreatedAt: "created_at",
	entity.CompositionSortRating:    "rating",
}

// ListCompositions retrieves one page of a user's compositions with optional
// rating and kind filters, plus the exact total count.
func (r *GormRepository) ListCompositions(ctx context.Context, params *entity.CompositionQuery) ([]entity.DbComposition, *entity.Pagination, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}
	if params == nil || params.UserID == 0 {
		return nil, nil, fmt.Errorf("missing owner filter")
	}

	query := r.db.WithContext(ctx).
		Model(&entity.DbComposition{}).
		Where("user_id = ?", params.UserID)

	if params.Rating != nil {
		query = query.Where("rating = ?", *params.Rating)
	}
	if params.CompositionType != "" {
		query = query.Where("composition_type = ?", params.CompositionType)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, nil, err
	}

	column, ok := compositionSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if params.SortOrder == entity.SortAsc {
		direction = "ASC"
	}

	page, pageSize := normalisePageParams(params.Page, params.PageSize)
	offset := (page - 1) * pageSize

	var compositions []entity.DbComposition
	if err := query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(offset).
		Limit(pageSize).
		Find(&compositions).Error; err != nil {
		return nil, nil, err
	}

	pagination := r.calculatePagination(totalCount, page, pageSize)
	return compositions, pagination, nil
}

// UpdateComposition applies a partial patch and returns the updated row.
func (r *GormRepository) UpdateComposition(ctx context.Context, id uint, updates entity.CompositionUpdates) (*entity.DbComposition, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid composition id")
	}
	if updates.IsEmpty() {
		return nil, fmt.Errorf("no updates provided")
	}

	result := r.db.WithContext(ctx).
		Model(&entity.DbComposition{}).
		Where("composition_id = ?", id).
		Updates(updates.ToMap())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// The row vanished between the owner check and the patch.
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetComposition(ctx, id)
}

// DeleteComposition removes a composition by ID.
func (r *GormRepository) DeleteComposition(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid composition id")
	}

	result := r.db.WithContext(ctx).Delete(&entity.DbComposition{}, "composition_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
