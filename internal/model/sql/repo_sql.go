package sql

import (
	"pizzeria/internal/entity"
	"pizzeria/internal/entity/common"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// calculatePagination derives listing metadata from an exact row count.
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int) *entity.Pagination {
	return common.NewPagination(totalCount, page, pageSize)
}

func normalisePageParams(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return page, pageSize
}
