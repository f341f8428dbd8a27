package models

import "time"

// Client entity. Invoices reference clients by id only; deleting a client
// leaves its invoices in place, and renderers fall back to a
// "no client selected" presentation for dangling references.
type Client struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Address   string    `gorm:"size:500" json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
