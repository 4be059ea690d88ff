package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa-review-system.com/qa-review-system/internal/checklist"
	"qa-review-system.com/qa-review-system/internal/constants"
	model "qa-review-system.com/qa-review-system/internal/models"
)

func TestFilename(t *testing.T) {
	task := &model.QATask{ID: 42}

	assert.Equal(t, "QA_Report_42_satisfying_clips.txt", Filename(task, "satisfying_clips"))
	assert.Equal(t, "QA_Report_42_Unknown.txt", Filename(task, ""))
}

func TestRender_CompletedTask(t *testing.T) {
	template, err := checklist.ForVariant("standard")
	require.NoError(t, err)

	completedAt := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	task := &model.QATask{
		ID:            7,
		Status:        constants.TaskCompleted,
		ContentURL:    "https://drive.google.com/file/d/FILE1/view",
		ReferenceURL:  "https://www.youtube.com/shorts/ref1",
		FinalComments: "approved with minor notes",
		CompletedAt:   &completedAt,
		CompletedBy:   "reviewer",
		Steps: []model.TaskStep{
			{
				StepNumber: 1,
				Checks:     model.CheckSet{"audioQuality": true, "videoQuality": false},
				Comments:   "audio slightly low",
			},
		},
	}

	body := Render(task, "satisfying_clips", template)

	assert.Contains(t, body, "Task ID: #7")
	assert.Contains(t, body, "Account: satisfying_clips")
	assert.Contains(t, body, "Drive Video URL: https://drive.google.com/file/d/FILE1/view")
	assert.Contains(t, body, "Reference Video URL: https://www.youtube.com/shorts/ref1")

	// Checklist keys render through their template labels.
	assert.Contains(t, body, "[x] Audio quality is clear")
	assert.Contains(t, body, "[ ] Video quality is acceptable")
	assert.Contains(t, body, "Step 1 Progress: 1/2 items completed")
	assert.Contains(t, body, "audio slightly low")

	// The template declares step 2 but it was never submitted.
	assert.Contains(t, body, "No Step 2 results available.")

	assert.Contains(t, body, "approved with minor notes")
	assert.Contains(t, body, "Completed At: 2026-05-04T12:00:00Z")
	assert.Contains(t, body, "Completed By: reviewer")
	assert.NotContains(t, body, "Review not finalized yet.")
}

func TestRender_InProgressTask(t *testing.T) {
	template, err := checklist.ForVariant("standard")
	require.NoError(t, err)

	task := &model.QATask{
		ID:     3,
		Status: constants.TaskInProgress,
	}

	body := Render(task, "acc", template)

	assert.Contains(t, body, "Review not finalized yet.")
	assert.Contains(t, body, "Drive Video URL: Not provided")
}

func TestRender_UnknownKeysKeepRawForm(t *testing.T) {
	template, err := checklist.ForVariant("standard")
	require.NoError(t, err)

	task := &model.QATask{
		ID:     1,
		Status: constants.TaskInProgress,
		Steps: []model.TaskStep{
			{StepNumber: 1, Checks: model.CheckSet{"legacyCheckKey": true}},
		},
	}

	body := Render(task, "acc", template)
	assert.Contains(t, body, "[x] legacyCheckKey")
}

func TestRender_ChecklistItemsAreSorted(t *testing.T) {
	template, err := checklist.ForVariant("standard")
	require.NoError(t, err)

	task := &model.QATask{
		ID:     1,
		Status: constants.TaskInProgress,
		Steps: []model.TaskStep{
			{StepNumber: 1, Checks: model.CheckSet{"zeta": true, "alpha": false}},
		},
	}

	body := Render(task, "acc", template)
	assert.Less(t, strings.Index(body, "alpha"), strings.Index(body, "zeta"))
}
