package entity

import (
	"pizzeria/internal/entity/common"
	"time"
)

// Re-exported common types so callers depend on a single package.
type StringArray = common.StringArray
type Pagination = common.Pagination

// NewPagination is re-exported alongside the Pagination alias.
var NewPagination = common.NewPagination

const (
	SortAsc  = common.SortAsc
	SortDesc = common.SortDesc
)

// Composition kinds. The kind is fixed at creation time and never changes
// through updates.
const (
	CompositionTypeManual      = "manual"
	CompositionTypeAIGenerated = "ai-generated"
)

const (
	UserRoleAdmin = "admin"
	UserRoleUser  = "user"
)

// DbComposition is a persisted pizza composition.
type DbComposition struct {
	CompositionID uint      `gorm:"column:composition_id;primarykey" json:"composition_id"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`

	UserID uint    `gorm:"column:user_id;index;not null" json:"user_id"`
	User   *DbUser `gorm:"foreignKey:UserID" json:"-"`

	Ingredients     common.StringArray `gorm:"column:ingredients;type:text;not null" json:"ingredients"`
	Rating          *int               `gorm:"column:rating" json:"rating"`
	PhotoURL        *string            `gorm:"column:photo_url;type:varchar(2048)" json:"photo_url"`
	CompositionType string             `gorm:"column:composition_type;type:varchar(32);index;not null" json:"composition_type"`
}

// TableName overrides the default pluralised name.
func (DbComposition) TableName() string {
	return "compositions"
}

// DbGenerationLog records one AI ingredient-suggestion run. At most one log
// exists per AI composition; it may be absent when the best-effort log write
// failed after the composition was created.
type DbGenerationLog struct {
	GenerationID uint      `gorm:"column:generation_id;primarykey" json:"generation_id"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"-"`

	UserID        uint `gorm:"column:user_id;index;not null" json:"user_id"`
	CompositionID uint `gorm:"column:composition_id;index;not null" json:"composition_id"`

	// Stored as milliseconds; exposed to clients as a string.
	GenerationDurationMS int64 `gorm:"column:generation_duration_ms;not null" json:"-"`
}

// TableName overrides the default name.
func (DbGenerationLog) TableName() string {
	return "generation_logs"
}

// DbUser represents a persisted user account. A default user is seeded at
// startup and supplies the caller identity when no token is presented.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(255)" json:"display_name"`
	Role         string    `gorm:"column:role;type:varchar(50);not null" json:"role"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

// TableName overrides the default pluralised name.
func (DbUser) TableName() string {
	return "users"
}
