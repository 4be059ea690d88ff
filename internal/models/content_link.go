package model

import (
	"time"

	"qa-review-system.com/qa-review-system/internal/constants"
)

// ContentLink is a registered share URL awaiting or undergoing review. The
// file id extracted from the URL is unique system-wide.
type ContentLink struct {
	ID            uint                  `gorm:"primaryKey" json:"id"`
	FileID        string                `gorm:"uniqueIndex;size:128;not null" json:"file_id"`
	URL           string                `gorm:"not null" json:"url"`
	Title         string                `json:"title"`
	Status        constants.LinkStatus  `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	Priority      constants.Priority    `gorm:"type:varchar(20);not null;default:normal" json:"priority"`
	ContentKind   constants.ContentKind `gorm:"type:varchar(20);not null" json:"content_kind"`
	AssignedTo    *uint                 `json:"assigned_to,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	QAStartedAt   *time.Time            `json:"qa_started_at,omitempty"`
	QACompletedAt *time.Time            `json:"qa_completed_at,omitempty"`
}
