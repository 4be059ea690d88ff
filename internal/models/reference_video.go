package model

import "time"

// ReferenceVideo is a published video for an account. A row flagged as the
// configured reference is the canonical comparison video; otherwise the
// resolver falls back to the most recent short-form upload, then to the most
// recent upload of any kind.
type ReferenceVideo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"index;not null" json:"account_id"`
	URL       string    `gorm:"not null" json:"url"`
	ShortForm bool      `gorm:"not null;default:false" json:"short_form"`
	Reference bool      `gorm:"not null;default:false" json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}
