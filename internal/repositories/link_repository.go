package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"qa-review-system.com/qa-review-system/internal/constants"
	model "qa-review-system.com/qa-review-system/internal/models"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) Create(ctx context.Context, link *model.ContentLink) error {
	return dbFrom(ctx, r.db).Create(link).Error
}

func (r *LinkRepository) FindByID(ctx context.Context, id uint) (*model.ContentLink, error) {
	var link model.ContentLink
	err := dbFrom(ctx, r.db).First(&link, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// FindByFileID returns nil, nil when no link with the file id exists.
func (r *LinkRepository) FindByFileID(ctx context.Context, fileID string) (*model.ContentLink, error) {
	var link model.ContentLink
	err := dbFrom(ctx, r.db).First(&link, "file_id = ?", fileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *LinkRepository) FindByURL(ctx context.Context, url string) (*model.ContentLink, error) {
	var link model.ContentLink
	err := dbFrom(ctx, r.db).First(&link, "url = ?", url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *LinkRepository) List(ctx context.Context, excludeCompleted bool) ([]model.ContentLink, error) {
	query := dbFrom(ctx, r.db).Order("created_at desc")
	if excludeCompleted {
		query = query.Where("status <> ?", constants.LinkCompleted)
	}

	var links []model.ContentLink
	err := query.Find(&links).Error
	return links, err
}

// ListUnclaimed returns links no task references yet.
func (r *LinkRepository) ListUnclaimed(ctx context.Context) ([]model.ContentLink, error) {
	var links []model.ContentLink
	err := dbFrom(ctx, r.db).
		Where("id NOT IN (?)",
			dbFrom(ctx, r.db).Model(&model.QATask{}).Select("content_link_id")).
		Order("created_at desc").
		Find(&links).Error
	return links, err
}

func (r *LinkRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.ContentLink, error) {
	fields["updated_at"] = time.Now().UTC()

	res := dbFrom(ctx, r.db).Model(&model.ContentLink{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *LinkRepository) Delete(ctx context.Context, id uint) error {
	res := dbFrom(ctx, r.db).Delete(&model.ContentLink{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetClaimed flips a link to in_progress and stamps qa_started_at. Returns
// the number of rows touched so the caller can log when the link is gone.
func (r *LinkRepository) SetClaimed(ctx context.Context, id uint) (int64, error) {
	now := time.Now().UTC()
	res := dbFrom(ctx, r.db).Model(&model.ContentLink{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        constants.LinkInProgress,
			"qa_started_at": now,
			"updated_at":    now,
		})
	return res.RowsAffected, res.Error
}

// SetCompleted flips a link to completed and stamps qa_completed_at.
func (r *LinkRepository) SetCompleted(ctx context.Context, id uint) (int64, error) {
	now := time.Now().UTC()
	res := dbFrom(ctx, r.db).Model(&model.ContentLink{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          constants.LinkCompleted,
			"qa_completed_at": now,
			"updated_at":      now,
		})
	return res.RowsAffected, res.Error
}
