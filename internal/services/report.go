package services

import (
	"context"

	"qa-review-system.com/qa-review-system/internal/report"
)

// Report renders the downloadable plaintext report for a task. Works for
// in-progress tasks too; the final-notes section then marks the review as
// unfinished.
func (s *TaskService) Report(ctx context.Context, taskID uint) (filename, body string, err error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return "", "", err
	}

	name := s.accountName(ctx, task.AccountID)
	return report.Filename(task, name), report.Render(task, name, s.template), nil
}
