package entity

// CompositionUpdates holds the patchable composition fields. Only ingredients,
// rating and photo_url may change after creation; the kind and owner are
// immutable.
type CompositionUpdates struct {
	Ingredients *StringArray
	Rating      *int
	PhotoURL    *string
}

// ToMap converts set fields to a GORM updates map.
func (u CompositionUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Ingredients != nil {
		updates["ingredients"] = *u.Ingredients
	}
	if u.Rating != nil {
		updates["rating"] = *u.Rating
	}
	if u.PhotoURL != nil {
		updates["photo_url"] = *u.PhotoURL
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u CompositionUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
