package services

import (
	"context"
	"log/slog"

	"qa-review-system.com/qa-review-system/internal/constants"
	repository "qa-review-system.com/qa-review-system/internal/repositories"
)

// AccountView is an account row as the selection screen consumes it, with
// the reference video already rewritten to an embeddable URL.
type AccountView struct {
	ID           uint                    `json:"id"`
	Name         string                  `json:"account"`
	Status       constants.AccountStatus `json:"status"`
	ReferenceURL string                  `json:"reference_url,omitempty"`
	EmbedURL     string                  `json:"embed_url,omitempty"`
}

type AccountService struct {
	repo      *repository.AccountRepository
	reference *ReferenceService
	logger    *slog.Logger
}

func NewAccountService(repo *repository.AccountRepository, reference *ReferenceService, logger *slog.Logger) *AccountService {
	return &AccountService{
		repo:      repo,
		reference: reference,
		logger:    logger.With("component", "accounts"),
	}
}

// ListReviewable returns accounts eligible to claim QA tasks.
func (s *AccountService) ListReviewable(ctx context.Context) ([]AccountView, error) {
	accounts, err := s.repo.ListReviewable(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]AccountView, 0, len(accounts))
	for _, account := range accounts {
		view := AccountView{
			ID:     account.ID,
			Name:   account.Name,
			Status: account.Status,
		}

		ref, err := s.reference.Resolve(ctx, account.ID)
		if err != nil {
			s.logger.Warn("reference lookup failed", "account_id", account.ID, "error", err)
		} else if ref != nil {
			view.ReferenceURL = ref.VideoURL
			view.EmbedURL = ref.EmbedURL
		}

		views = append(views, view)
	}

	return views, nil
}
