package model

import (
	"time"

	"qa-review-system.com/qa-review-system/internal/constants"
)

// QATask is one review episode pairing an account with a content link. The
// link is referenced by id; ContentURL is a display snapshot taken at claim
// time so a finalized task stays renderable if the link is later deleted.
//
// At most one task per account may be in_progress at a time; this is backed
// by a partial unique index created alongside the migration.
type QATask struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	AccountID     uint                 `gorm:"index;not null" json:"account_id"`
	ContentLinkID uint                 `gorm:"index;not null" json:"content_link_id"`
	ContentURL    string               `gorm:"not null" json:"content_url"`
	ReferenceURL  string               `json:"reference_url"`
	Status        constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	FinalComments string               `json:"final_comments"`
	CompletedAt   *time.Time           `json:"completed_at,omitempty"`
	CompletedBy   string               `json:"completed_by,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`

	Steps []TaskStep `gorm:"foreignKey:TaskID" json:"steps,omitempty"`
}

// FinalNotes is the structured record written exactly once at finalization.
type FinalNotes struct {
	Comments    string    `json:"comments"`
	CompletedAt time.Time `json:"completed_at"`
	CompletedBy string    `json:"completed_by"`
}

// FinalNotes returns the structured final-notes view of a completed task,
// or nil while the task is still in progress.
func (t *QATask) FinalNotes() *FinalNotes {
	if t.Status != constants.TaskCompleted || t.CompletedAt == nil {
		return nil
	}
	return &FinalNotes{
		Comments:    t.FinalComments,
		CompletedAt: *t.CompletedAt,
		CompletedBy: t.CompletedBy,
	}
}

// Step returns the stored result for a step number, or nil if the step has
// never been submitted.
func (t *QATask) Step(number int) *TaskStep {
	for i := range t.Steps {
		if t.Steps[i].StepNumber == number {
			return &t.Steps[i]
		}
	}
	return nil
}
