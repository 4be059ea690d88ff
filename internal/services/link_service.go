package services

import (
	"context"
	"log/slog"
	"regexp"

	apperrors "qa-review-system.com/qa-review-system/internal/errors"
	model "qa-review-system.com/qa-review-system/internal/models"

	"qa-review-system.com/qa-review-system/internal/constants"
	repository "qa-review-system.com/qa-review-system/internal/repositories"
)

// shareURLShapes maps each recognized drive share-URL path segment to the
// content kind it implies. The capture group is the stable file id.
var shareURLShapes = []struct {
	pattern *regexp.Regexp
	kind    constants.ContentKind
}{
	{regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`), constants.KindFile},
	{regexp.MustCompile(`/document/d/([a-zA-Z0-9_-]+)`), constants.KindDocument},
	{regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`), constants.KindSpreadsheet},
	{regexp.MustCompile(`/presentation/d/([a-zA-Z0-9_-]+)`), constants.KindPresentation},
}

// ExtractFileID pulls the stable file identifier out of a share URL.
func ExtractFileID(url string) (string, constants.ContentKind, error) {
	for _, shape := range shareURLShapes {
		if m := shape.pattern.FindStringSubmatch(url); m != nil {
			return m[1], shape.kind, nil
		}
	}
	return "", "", apperrors.ErrInvalidLinkFormat
}

type LinkService struct {
	repo   *repository.LinkRepository
	logger *slog.Logger
}

func NewLinkService(repo *repository.LinkRepository, logger *slog.Logger) *LinkService {
	return &LinkService{
		repo:   repo,
		logger: logger.With("component", "links"),
	}
}

// Ingest registers a share URL. The extracted file id must be new
// system-wide; the link starts out pending.
func (s *LinkService) Ingest(ctx context.Context, url, title string, priority constants.Priority) (*model.ContentLink, error) {
	fileID, kind, err := ExtractFileID(url)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateLink
	}

	if priority == "" {
		priority = constants.PriorityNormal
	}
	if !priority.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	if title == "" {
		title = "Video " + fileID
	}

	link := &model.ContentLink{
		FileID:      fileID,
		URL:         url,
		Title:       title,
		Status:      constants.LinkPending,
		Priority:    priority,
		ContentKind: kind,
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("link ingested", "file_id", fileID, "kind", kind)
	return link, nil
}

// BulkResult reports the outcome of one URL in a bulk import.
type BulkResult struct {
	URL    string `json:"url"`
	FileID string `json:"file_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BulkOutcome groups bulk import results the way the admin screen consumes
// them.
type BulkOutcome struct {
	Added   []BulkResult `json:"added"`
	Skipped []BulkResult `json:"skipped"`
	Errors  []BulkResult `json:"errors"`
}

// BulkIngest registers many URLs at once. Duplicates are skipped, malformed
// URLs are reported per entry; one bad URL never aborts the batch.
func (s *LinkService) BulkIngest(ctx context.Context, urls []string, defaultPriority constants.Priority) *BulkOutcome {
	outcome := &BulkOutcome{}

	for _, url := range urls {
		link, err := s.Ingest(ctx, url, "", defaultPriority)
		switch {
		case err == nil:
			outcome.Added = append(outcome.Added, BulkResult{URL: url, FileID: link.FileID})
		case err == apperrors.ErrDuplicateLink:
			fileID, _, _ := ExtractFileID(url)
			outcome.Skipped = append(outcome.Skipped, BulkResult{URL: url, FileID: fileID, Error: "already exists"})
		default:
			outcome.Errors = append(outcome.Errors, BulkResult{URL: url, Error: err.Error()})
		}
	}

	return outcome
}

func (s *LinkService) List(ctx context.Context, excludeCompleted bool) ([]model.ContentLink, error) {
	return s.repo.List(ctx, excludeCompleted)
}

// UpdateFields is the set of link attributes a partial update may touch.
type UpdateFields struct {
	Status     *constants.LinkStatus
	Title      *string
	Priority   *constants.Priority
	AssignedTo *uint
}

func (s *LinkService) Update(ctx context.Context, id uint, fields UpdateFields) (*model.ContentLink, error) {
	updates := map[string]interface{}{}

	if fields.Status != nil {
		if !fields.Status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		updates["status"] = *fields.Status
		if *fields.Status == constants.LinkCompleted {
			updates["qa_completed_at"] = nowUTC()
		}
	}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Priority != nil {
		if !fields.Priority.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		updates["priority"] = *fields.Priority
	}
	if fields.AssignedTo != nil {
		updates["assigned_to"] = *fields.AssignedTo
	}

	link, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, err
	}
	return link, nil
}

func (s *LinkService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.ErrLinkNotFound
		}
		return err
	}
	return nil
}

// MarkClaimed is a best-effort status sync when a task claims the link. The
// link's status is a convenience index, not the source of truth for task
// activity, so a missing link is logged and swallowed.
func (s *LinkService) MarkClaimed(ctx context.Context, linkID uint) {
	rows, err := s.repo.SetClaimed(ctx, linkID)
	if err != nil {
		s.logger.Warn("link claim status update failed", "link_id", linkID, "error", err)
		return
	}
	if rows == 0 {
		s.logger.Warn("link missing during claim status update", "link_id", linkID)
	}
}

// MarkCompleted is the best-effort counterpart for finalization.
func (s *LinkService) MarkCompleted(ctx context.Context, linkID uint) {
	rows, err := s.repo.SetCompleted(ctx, linkID)
	if err != nil {
		s.logger.Warn("link completion status update failed", "link_id", linkID, "error", err)
		return
	}
	if rows == 0 {
		s.logger.Warn("link missing during completion status update", "link_id", linkID)
	}
}
