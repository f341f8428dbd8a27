package models

import "time"

// SavedItem is a reusable line item template used to pre-fill new items.
// No invoice references a SavedItem; it is a convenience cache only.
type SavedItem struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	DefaultPrice float64   `gorm:"not null" json:"default_price"`
	CreatedAt    time.Time `json:"created_at"`
}
