// Package validate parses untrusted request input into typed values. Every
// function is pure: it returns the parsed value plus a per-field error map
// that is nil when the input is valid.
package validate

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"pizzeria/internal/entity"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100

	minRating = 1
	maxRating = 6

	maxIngredients   = 10
	maxAISeedCount   = 3
	minIngredientLen = 1
)

var compositionsQueryKeys = map[string]struct{}{
	"page":             {},
	"pageSize":         {},
	"sortBy":           {},
	"sortOrder":        {},
	"rating":           {},
	"composition_type": {},
}

// CompositionsQuery validates the GET /api/compositions query string. Unknown
// keys are rejected.
func CompositionsQuery(values url.Values) (*entity.CompositionQuery, map[string]string) {
	fields := make(map[string]string)

	rejectUnknownKeys(values, compositionsQueryKeys, fields)

	query := &entity.CompositionQuery{
		Page:      parsePositiveInt(values, "page", defaultPage, 0, fields),
		PageSize:  parsePositiveInt(values, "pageSize", defaultPageSize, maxPageSize, fields),
		SortBy:    parseEnum(values, "sortBy", entity.CompositionSortCreatedAt, fields, entity.CompositionSortCreatedAt, entity.CompositionSortRating),
		SortOrder: parseEnum(values, "sortOrder", entity.SortDesc, fields, entity.SortAsc, entity.SortDesc),
	}

	if raw := strings.TrimSpace(values.Get("rating")); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < minRating || rating > maxRating {
			fields["rating"] = fmt.Sprintf("must be an integer between %d and %d", minRating, maxRating)
		} else {
			query.Rating = &rating
		}
	}

	if raw := strings.TrimSpace(values.Get("composition_type")); raw != "" {
		if raw != entity.CompositionTypeManual && raw != entity.CompositionTypeAIGenerated {
			fields["composition_type"] = fmt.Sprintf("must be %q or %q", entity.CompositionTypeManual, entity.CompositionTypeAIGenerated)
		} else {
			query.CompositionType = raw
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return query, nil
}

// CompositionID validates a path parameter as a positive integer identifier.
func CompositionID(raw string) (uint, error) {
	trimmed := strings.TrimSpace(raw)
	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("composition id must be a positive integer")
	}
	return uint(id), nil
}

type createCompositionBody struct {
	CompositionType *string  `json:"composition_type"`
	Ingredients     []string `json:"ingredients"`
	Rating          *int     `json:"rating"`
	PhotoURL        *string  `json:"photo_url"`
}

// CreateComposition validates the POST /api/compositions body and returns the
// matching command variant of the composition_type discriminator.
func CreateComposition(body []byte) (entity.CreateCompositionCommand, map[string]string) {
	var payload createCompositionBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, map[string]string{"body": "invalid JSON payload"}
	}

	fields := make(map[string]string)

	if payload.CompositionType == nil {
		fields["composition_type"] = "is required"
	} else if *payload.CompositionType != entity.CompositionTypeManual && *payload.CompositionType != entity.CompositionTypeAIGenerated {
		fields["composition_type"] = fmt.Sprintf("must be %q or %q", entity.CompositionTypeManual, entity.CompositionTypeAIGenerated)
	}

	if payload.Rating != nil && (*payload.Rating < minRating || *payload.Rating > maxRating) {
		fields["rating"] = fmt.Sprintf("must be an integer between %d and %d", minRating, maxRating)
	}
	if payload.PhotoURL != nil {
		if err := checkURL(*payload.PhotoURL); err != nil {
			fields["photo_url"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}

	switch *payload.CompositionType {
	case entity.CompositionTypeManual:
		if n := len(payload.Ingredients); n < minIngredientLen || n > maxIngredients {
			return nil, map[string]string{"ingredients": fmt.Sprintf("must contain between %d and %d items", minIngredientLen, maxIngredients)}
		}
		return entity.CreateManualCommand{
			Ingredients: payload.Ingredients,
			Rating:      payload.Rating,
			PhotoURL:    payload.PhotoURL,
		}, nil
	case entity.CompositionTypeAIGenerated:
		if n := len(payload.Ingredients); n < minIngredientLen || n > maxAISeedCount {
			return nil, map[string]string{"ingredients": fmt.Sprintf("must contain between %d and %d seed items", minIngredientLen, maxAISeedCount)}
		}
		return entity.CreateAICommand{
			SeedIngredients: payload.Ingredients,
			Rating:          payload.Rating,
			PhotoURL:        payload.PhotoURL,
		}, nil
	}

	return nil, map[string]string{"composition_type": "unsupported composition type"}
}

type updateCompositionBody struct {
	Ingredients *[]string `json:"ingredients"`
	Rating      *int      `json:"rating"`
	PhotoURL    *string   `json:"photo_url"`
}

// UpdateComposition validates the PATCH /api/compositions/:id body. The patch
// must carry at least one of ingredients, rating or photo_url.
func UpdateComposition(body []byte) (entity.CompositionUpdates, map[string]string) {
	var payload updateCompositionBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return entity.CompositionUpdates{}, map[string]string{"body": "invalid JSON payload"}
	}

	fields := make(map[string]string)
	var updates entity.CompositionUpdates

	if payload.Ingredients != nil {
		if len(*payload.Ingredients) > maxIngredients {
			fields["ingredients"] = fmt.Sprintf("must contain at most %d items", maxIngredients)
		} else {
			ingredients := entity.StringArray(*payload.Ingredients)
			updates.Ingredients = &ingredients
		}
	}
	if payload.Rating != nil {
		if *payload.Rating < minRating || *payload.Rating > maxRating {
			fields["rating"] = fmt.Sprintf("must be an integer between %d and %d", minRating, maxRating)
		} else {
			updates.Rating = payload.Rating
		}
	}
	if payload.PhotoURL != nil {
		if err := checkURL(*payload.PhotoURL); err != nil {
			fields["photo_url"] = err.Error()
		} else {
			updates.PhotoURL = payload.PhotoURL
		}
	}

	if len(fields) > 0 {
		return entity.CompositionUpdates{}, fields
	}
	if updates.IsEmpty() {
		return entity.CompositionUpdates{}, map[string]string{"body": "request body must not be empty"}
	}
	return updates, nil
}

func checkURL(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("must be a valid http(s) URL")
	}
	return nil
}

func rejectUnknownKeys(values url.Values, allowed map[string]struct{}, fields map[string]string) {
	for key := range values {
		if _, ok := allowed[key]; !ok {
			fields[key] = "unknown query parameter"
		}
	}
}

func parsePositiveInt(values url.Values, key string, fallback, max int, fields map[string]string) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 || (max > 0 && parsed > max) {
		if max > 0 {
			fields[key] = fmt.Sprintf("must be an integer between 1 and %d", max)
		} else {
			fields[key] = "must be a positive integer"
		}
		return fallback
	}
	return parsed
}

func parseEnum(values url.Values, key, fallback string, fields map[string]string, allowed ...string) string {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}
	for _, candidate := range allowed {
		if raw == candidate {
			return raw
		}
	}
	fields[key] = fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))
	return fallback
}
