package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"qa-review-system.com/qa-review-system/internal/constants"
	model "qa-review-system.com/qa-review-system/internal/models"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByID returns nil, nil when the account does not exist.
func (r *AccountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	err := dbFrom(ctx, r.db).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) ListReviewable(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := dbFrom(ctx, r.db).
		Where("status NOT IN ?", []constants.AccountStatus{
			constants.AccountInactive,
			constants.AccountDisabled,
		}).
		Order("id asc").
		Find(&accounts).Error
	return accounts, err
}
