package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"qa-review-system.com/qa-review-system/internal/checklist"
	"qa-review-system.com/qa-review-system/internal/constants"
	apperrors "qa-review-system.com/qa-review-system/internal/errors"
	"qa-review-system.com/qa-review-system/internal/locks"
	model "qa-review-system.com/qa-review-system/internal/models"
	"qa-review-system.com/qa-review-system/internal/notifications"
	repository "qa-review-system.com/qa-review-system/internal/repositories"
)

// Notifier receives the completion event produced by finalize. Dispatch is
// best-effort and must never fail the caller.
type Notifier interface {
	Dispatch(ctx context.Context, event notifications.Event)
}

// TaskService owns the QA task state machine: claim, step submission and
// finalization.
type TaskService struct {
	tasks     *repository.TaskRepository
	accounts  *repository.AccountRepository
	links     *LinkService
	linkRepo  *repository.LinkRepository
	reference *ReferenceService
	txManager *repository.TxManager
	locker    locks.ClaimLocker
	notifier  Notifier
	template  *checklist.Template
	logger    *slog.Logger

	notifyWG sync.WaitGroup
}

func NewTaskService(
	tasks *repository.TaskRepository,
	accounts *repository.AccountRepository,
	links *LinkService,
	linkRepo *repository.LinkRepository,
	reference *ReferenceService,
	txManager *repository.TxManager,
	locker locks.ClaimLocker,
	notifier Notifier,
	template *checklist.Template,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		accounts:  accounts,
		links:     links,
		linkRepo:  linkRepo,
		reference: reference,
		txManager: txManager,
		locker:    locker,
		notifier:  notifier,
		template:  template,
		logger:    logger.With("component", "qa_tasks"),
	}
}

// TaskView is the claim response consumed by the review screen. The
// reference URL travels with the task rather than living in any ambient
// session state.
type TaskView struct {
	TaskID            uint   `json:"qa_task_id"`
	AccountID         uint   `json:"account_id"`
	Title             string `json:"title"`
	ContentURL        string `json:"drive_url"`
	ReferenceURL      string `json:"reference_url,omitempty"`
	ReferenceEmbedURL string `json:"reference_embed_url,omitempty"`
	Resumed           bool   `json:"resumed"`
}

// Claim starts or resumes the review of a content link for an account.
//
// Re-claiming while the account's task for the same link is still open
// resumes that task, so a reviewer reopening the page never duplicates
// work. A claim naming a different link while one is open is rejected; the
// reviewer has to finish or abandon the open review first.
func (s *TaskService) Claim(ctx context.Context, accountID uint, contentURL string) (*TaskView, error) {
	if err := s.locker.Acquire(ctx, accountID); err != nil {
		if errors.Is(err, locks.ErrClaimLocked) {
			return nil, apperrors.ErrClaimConflict
		}
		return nil, err
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), accountID); err != nil {
			s.logger.Warn("claim lock release failed", "account_id", accountID, "error", err)
		}
	}()

	var (
		task    *model.QATask
		title   string
		resumed bool
	)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.tasks.FindActiveByAccount(txCtx, accountID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.ContentURL != contentURL {
				return apperrors.ErrClaimConflict
			}
			task = existing
			resumed = true
			return nil
		}

		account, err := s.accounts.FindByID(txCtx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return apperrors.ErrAccountNotFound
		}
		if !account.Status.Reviewable() {
			return apperrors.ErrAccountInactive
		}

		link, err := s.linkRepo.FindByURL(txCtx, contentURL)
		if err != nil {
			return err
		}
		if link == nil {
			return apperrors.ErrLinkNotFound
		}
		title = link.Title

		// Reference resolution is best-effort: a task without a
		// comparison video is still reviewable.
		referenceURL := ""
		if ref, refErr := s.reference.Resolve(txCtx, accountID); refErr != nil {
			s.logger.Warn("reference resolution failed", "account_id", accountID, "error", refErr)
		} else if ref != nil {
			referenceURL = ref.VideoURL
		}

		task = &model.QATask{
			AccountID:     accountID,
			ContentLinkID: link.ID,
			ContentURL:    link.URL,
			ReferenceURL:  referenceURL,
		}
		return s.tasks.Create(txCtx, task)
	})
	if err != nil {
		return nil, err
	}

	if !resumed {
		s.links.MarkClaimed(ctx, task.ContentLinkID)
		s.logger.Info("task claimed",
			"task_id", task.ID, "account_id", accountID, "link_id", task.ContentLinkID)
	}

	if title == "" {
		title = "QA Review Task"
	}

	view := &TaskView{
		TaskID:       task.ID,
		AccountID:    task.AccountID,
		Title:        title,
		ContentURL:   task.ContentURL,
		ReferenceURL: task.ReferenceURL,
		Resumed:      resumed,
	}
	if task.ReferenceURL != "" {
		view.ReferenceEmbedURL = ToEmbedURL(task.ReferenceURL)
	}
	return view, nil
}

// SubmitStep replaces one step's stored checklist state. Called on every
// checkbox toggle and comment keystroke; each call stands alone, so
// out-of-order bursts cannot corrupt other steps.
func (s *TaskService) SubmitStep(ctx context.Context, taskID uint, stepNumber int, checks model.CheckSet, comments string) error {
	if !s.template.ValidStep(stepNumber) {
		return apperrors.ErrInvalidStep
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrTaskNotFound
		}
		return err
	}
	if task.Status == constants.TaskCompleted {
		return apperrors.ErrTaskFinalized
	}

	if checks == nil {
		checks = model.CheckSet{}
	}
	return s.tasks.UpsertStep(ctx, taskID, stepNumber, checks, comments)
}

// Finalize is the sole terminal transition. Partial checklists may be
// finalized; the system trusts reviewer judgment. The status flip and final
// notes commit atomically, then the link sync and notification fan-out run
// strictly after the commit and can no longer affect it.
func (s *TaskService) Finalize(ctx context.Context, taskID uint, finalNotes, completedBy string) (*model.QATask, error) {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		rows, err := s.tasks.Finalize(txCtx, taskID, finalNotes, completedBy)
		if err != nil {
			return err
		}
		if rows == 0 {
			if _, err := s.tasks.FindByID(txCtx, taskID); err != nil {
				if isNotFound(err) {
					return apperrors.ErrTaskNotFound
				}
				return err
			}
			return apperrors.ErrTaskFinalized
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	s.links.MarkCompleted(ctx, task.ContentLinkID)
	s.dispatchCompletion(ctx, task)

	s.logger.Info("task finalized", "task_id", task.ID, "completed_by", completedBy)
	return task, nil
}

func (s *TaskService) dispatchCompletion(ctx context.Context, task *model.QATask) {
	if s.notifier == nil {
		return
	}

	event := notifications.NewEvent(task, s.accountName(ctx, task.AccountID))

	notifyCtx := context.WithoutCancel(ctx)
	s.notifyWG.Add(1)
	go func() {
		defer s.notifyWG.Done()
		s.notifier.Dispatch(notifyCtx, event)
	}()
}

// FlushNotifications blocks until in-flight notification dispatches finish.
// Called during graceful shutdown.
func (s *TaskService) FlushNotifications() {
	s.notifyWG.Wait()
}

func (s *TaskService) accountName(ctx context.Context, accountID uint) string {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil || account == nil {
		return "Unknown"
	}
	return account.Name
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.QATask, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// TaskListEntry is one row of the overview board: either a task, or a
// registered link nobody has claimed yet.
type TaskListEntry struct {
	Type          string               `json:"type"`
	TaskID        *uint                `json:"qa_task_id,omitempty"`
	AccountID     *uint                `json:"account_id,omitempty"`
	AccountName   string               `json:"account_name,omitempty"`
	TaskStatus    constants.TaskStatus `json:"qa_status,omitempty"`
	LinkID        *uint                `json:"link_id,omitempty"`
	ContentURL    string               `json:"drive_url"`
	LinkStatus    constants.LinkStatus `json:"drive_status,omitempty"`
	Steps         []model.TaskStep     `json:"steps,omitempty"`
	FinalComments string               `json:"final_notes,omitempty"`
}

// TaskListSummary carries the counts shown in the overview header.
type TaskListSummary struct {
	Total      int `json:"total"`
	WithQA     int `json:"with_qa"`
	Pending    int `json:"pending"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
}

type TaskList struct {
	Entries []TaskListEntry `json:"tasks"`
	Summary TaskListSummary `json:"summary"`
}

// ListTasks returns every task plus unclaimed links, newest first within
// each section, with summary counts.
func (s *TaskService) ListTasks(ctx context.Context) (*TaskList, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	unclaimed, err := s.linkRepo.ListUnclaimed(ctx)
	if err != nil {
		return nil, err
	}

	names := map[uint]string{}
	list := &TaskList{}

	for i := range tasks {
		task := &tasks[i]
		name, ok := names[task.AccountID]
		if !ok {
			name = s.accountName(ctx, task.AccountID)
			names[task.AccountID] = name
		}

		taskID := task.ID
		accountID := task.AccountID
		linkID := task.ContentLinkID
		list.Entries = append(list.Entries, TaskListEntry{
			Type:          "qa_task",
			TaskID:        &taskID,
			AccountID:     &accountID,
			AccountName:   name,
			TaskStatus:    task.Status,
			LinkID:        &linkID,
			ContentURL:    task.ContentURL,
			Steps:         task.Steps,
			FinalComments: task.FinalComments,
		})

		switch task.Status {
		case constants.TaskCompleted:
			list.Summary.Completed++
		case constants.TaskInProgress:
			list.Summary.InProgress++
		}
	}
	list.Summary.WithQA = len(tasks)

	for i := range unclaimed {
		link := &unclaimed[i]
		linkID := link.ID
		list.Entries = append(list.Entries, TaskListEntry{
			Type:       "pending_link",
			LinkID:     &linkID,
			ContentURL: link.URL,
			LinkStatus: link.Status,
		})
	}
	list.Summary.Pending = len(unclaimed)
	list.Summary.Total = len(list.Entries)

	return list, nil
}
