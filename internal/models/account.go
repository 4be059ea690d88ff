package model

import (
	"time"

	"qa-review-system.com/qa-review-system/internal/constants"
)

// Account is a posting account whose published content gets reviewed.
type Account struct {
	ID        uint                    `gorm:"primaryKey" json:"id"`
	Name      string                  `gorm:"uniqueIndex;not null" json:"name"`
	Status    constants.AccountStatus `gorm:"type:varchar(20);not null;default:active" json:"status"`
	CreatedAt time.Time               `json:"created_at"`
}
