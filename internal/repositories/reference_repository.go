package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	model "qa-review-system.com/qa-review-system/internal/models"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// FindConfigured returns the account's designated reference video, or
// nil, nil when none is configured.
func (r *ReferenceRepository) FindConfigured(ctx context.Context, accountID uint) (*model.ReferenceVideo, error) {
	return r.firstMatch(ctx, "account_id = ? AND reference = ?", accountID, true)
}

// LatestShortForm returns the account's most recent short-form upload.
func (r *ReferenceRepository) LatestShortForm(ctx context.Context, accountID uint) (*model.ReferenceVideo, error) {
	return r.firstMatch(ctx, "account_id = ? AND short_form = ?", accountID, true)
}

// Latest returns the account's most recent upload of any kind.
func (r *ReferenceRepository) Latest(ctx context.Context, accountID uint) (*model.ReferenceVideo, error) {
	return r.firstMatch(ctx, "account_id = ?", accountID)
}

func (r *ReferenceRepository) firstMatch(ctx context.Context, query string, args ...interface{}) (*model.ReferenceVideo, error) {
	var video model.ReferenceVideo
	err := dbFrom(ctx, r.db).
		Where(query, args...).
		Order("created_at desc").
		First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}
