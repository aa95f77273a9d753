package validate

import (
	"net/url"

	"pizzeria/internal/entity"
)

var generationLogsQueryKeys = map[string]struct{}{
	"page":      {},
	"pageSize":  {},
	"sortBy":    {},
	"sortOrder": {},
}

// GenerationLogsQuery validates the GET /api/generation-logs query string.
// Unknown keys are rejected.
func GenerationLogsQuery(values url.Values) (*entity.GenerationLogQuery, map[string]string) {
	fields := make(map[string]string)

	rejectUnknownKeys(values, generationLogsQueryKeys, fields)

	query := &entity.GenerationLogQuery{
		Page:      parsePositiveInt(values, "page", defaultPage, 0, fields),
		PageSize:  parsePositiveInt(values, "pageSize", defaultPageSize, maxPageSize, fields),
		SortBy:    parseEnum(values, "sortBy", entity.GenerationLogSortID, fields, entity.GenerationLogSortID, entity.GenerationLogSortDuration),
		SortOrder: parseEnum(values, "sortOrder", entity.SortDesc, fields, entity.SortAsc, entity.SortDesc),
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return query, nil
}
