package notifications

import (
	"time"

	"github.com/google/uuid"

	model "qa-review-system.com/qa-review-system/internal/models"
)

// StepSummary is one step's result as carried in a notification.
type StepSummary struct {
	Number   int            `json:"number"`
	Checks   model.CheckSet `json:"checks"`
	Comments string         `json:"comments"`
}

// Event is the derived view of a task produced once at finalization and
// fanned out to the configured sinks. It is never persisted.
type Event struct {
	EventID      string        `json:"event_id"`
	TaskID       uint          `json:"task_id"`
	AccountName  string        `json:"account_name"`
	ContentURL   string        `json:"content_url"`
	ReferenceURL string        `json:"reference_url"`
	Steps        []StepSummary `json:"steps"`
	FinalNotes   string        `json:"final_notes"`
	Status       string        `json:"status"`
	CompletedAt  time.Time     `json:"completed_at"`
}

// NewEvent builds a completion event from a finalized task.
func NewEvent(task *model.QATask, accountName string) Event {
	ev := Event{
		EventID:      uuid.NewString(),
		TaskID:       task.ID,
		AccountName:  accountName,
		ContentURL:   task.ContentURL,
		ReferenceURL: task.ReferenceURL,
		FinalNotes:   task.FinalComments,
		Status:       string(task.Status),
	}
	if task.CompletedAt != nil {
		ev.CompletedAt = *task.CompletedAt
	}

	for _, step := range task.Steps {
		ev.Steps = append(ev.Steps, StepSummary{
			Number:   step.StepNumber,
			Checks:   step.Checks,
			Comments: step.Comments,
		})
	}

	return ev
}
