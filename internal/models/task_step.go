package model

import "time"

// TaskStep holds one step's checklist state for a task. Each step lives in
// its own row so concurrent auto-saves of different steps never touch the
// same record; a write is always a full replace of the row, never a merge.
type TaskStep struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	TaskID     uint      `gorm:"uniqueIndex:idx_task_step;not null" json:"task_id"`
	StepNumber int       `gorm:"uniqueIndex:idx_task_step;not null" json:"step_number"`
	Checks     CheckSet  `gorm:"type:text;not null" json:"checks"`
	Comments   string    `json:"comments"`
	UpdatedAt  time.Time `json:"updated_at"`
}
