package models

import "time"

// CompanyInfo is the sender profile printed on every document.
// Singleton per installation: the store keeps a single row and the last
// saved version wins. It is loaded once and passed into renderer calls,
// never read as ambient state.
type CompanyInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Phone     string    `gorm:"size:50" json:"phone,omitempty"`
	Address   string    `gorm:"size:500" json:"address,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
