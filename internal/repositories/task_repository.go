package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"qa-review-system.com/qa-review-system/internal/constants"
	model "qa-review-system.com/qa-review-system/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.QATask) error {
	task.Status = constants.TaskInProgress
	task.CreatedAt = time.Now().UTC()
	task.UpdatedAt = task.CreatedAt

	return dbFrom(ctx, r.db).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.QATask, error) {
	var task model.QATask
	err := dbFrom(ctx, r.db).Preload("Steps").First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindActiveByAccount returns the account's in-progress task, or nil, nil
// when the account has none.
func (r *TaskRepository) FindActiveByAccount(ctx context.Context, accountID uint) (*model.QATask, error) {
	var task model.QATask
	err := dbFrom(ctx, r.db).Preload("Steps").
		First(&task, "account_id = ? AND status = ?", accountID, constants.TaskInProgress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.QATask, error) {
	var tasks []model.QATask
	err := dbFrom(ctx, r.db).Preload("Steps").
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// UpsertStep replaces one step's stored checks and comments. Each step is
// its own row keyed (task_id, step_number), so rapid auto-saves of different
// steps never contend on shared state and the last write for a step wins.
func (r *TaskRepository) UpsertStep(ctx context.Context, taskID uint, stepNumber int, checks model.CheckSet, comments string) error {
	step := model.TaskStep{
		TaskID:     taskID,
		StepNumber: stepNumber,
		Checks:     checks,
		Comments:   comments,
		UpdatedAt:  time.Now().UTC(),
	}

	return dbFrom(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "task_id"}, {Name: "step_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"checks", "comments", "updated_at",
		}),
	}).Create(&step).Error
}

// Finalize flips an in-progress task to completed and records the final
// notes. The status guard in the WHERE clause makes completed terminal: a
// second finalize matches zero rows.
func (r *TaskRepository) Finalize(ctx context.Context, id uint, comments, completedBy string) (int64, error) {
	now := time.Now().UTC()
	res := dbFrom(ctx, r.db).Model(&model.QATask{}).
		Where("id = ? AND status = ?", id, constants.TaskInProgress).
		Updates(map[string]interface{}{
			"status":         constants.TaskCompleted,
			"final_comments": comments,
			"completed_at":   now,
			"completed_by":   completedBy,
			"updated_at":     now,
		})
	return res.RowsAffected, res.Error
}
