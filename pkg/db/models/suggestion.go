package models

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion is a curated popular-search tag shown on the home view.
type Suggestion struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Label     string    `gorm:"column:label;not null;uniqueIndex:suggestions_label_key"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
