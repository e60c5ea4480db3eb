package model

import "time"

// Timestamps is embedded by every catalog table. GORM fills both fields on
// create and bumps UpdatedAt on save.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch sets the timestamps the way GORM would, for stores that bypass it.
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
