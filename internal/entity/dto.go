package entity

// Sort keys accepted per listing endpoint.
const (
	CompositionSortCreatedAt = "created_at"
	CompositionSortRating    = "rating"

	GenerationLogSortID       = "generation_id"
	GenerationLogSortDuration = "generation_duration"
)

// CompositionQuery carries validated listing parameters for compositions.
type CompositionQuery struct {
	Page      int
	PageSize  int
	SortBy    string // created_at | rating
	SortOrder string // asc | desc

	Rating          *int
	CompositionType string

	UserID uint
}

// GenerationLogQuery carries validated listing parameters for generation logs.
type GenerationLogQuery struct {
	Page      int
	PageSize  int
	SortBy    string // generation_id | generation_duration
	SortOrder string // asc | desc

	UserID uint
}

// CreateCompositionCommand is the tagged union behind POST /api/compositions.
// The validation layer produces exactly one of the two variants; the service
// dispatches exhaustively on the concrete type.
type CreateCompositionCommand interface {
	compositionType() string
}

// CreateManualCommand creates a composition from a user-supplied ingredient
// list (1-10 entries).
type CreateManualCommand struct {
	Ingredients []string
	Rating      *int
	PhotoURL    *string
}

func (CreateManualCommand) compositionType() string { return CompositionTypeManual }

// CreateAICommand creates a composition from 1-3 seed ingredients expanded by
// the suggestion service.
type CreateAICommand struct {
	SeedIngredients []string
	Rating          *int
	PhotoURL        *string
}

func (CreateAICommand) compositionType() string { return CompositionTypeAIGenerated }

// GenerationLogItem is a generation log row as returned to clients. The
// duration is always a string regardless of how the store represents it.
type GenerationLogItem struct {
	GenerationID       uint   `json:"generation_id"`
	UserID             uint   `json:"user_id"`
	CompositionID      uint   `json:"composition_id"`
	GenerationDuration string `json:"generation_duration"`
}

// CompositionListResponse is the payload of GET /api/compositions.
type CompositionListResponse struct {
	Data       []DbComposition `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

// GenerationLogListResponse is the payload of GET /api/generation-logs.
type GenerationLogListResponse struct {
	Data       []GenerationLogItem `json:"data"`
	Pagination *Pagination         `json:"pagination"`
}
