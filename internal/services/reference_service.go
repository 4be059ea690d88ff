package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	model "qa-review-system.com/qa-review-system/internal/models"
	repository "qa-review-system.com/qa-review-system/internal/repositories"
)

// Reference is the comparison video shown next to the candidate.
type Reference struct {
	VideoURL string `json:"video_url"`
	EmbedURL string `json:"embed_url"`
}

var (
	youtubeIDPattern = regexp.MustCompile(`(?:youtu\.be/|v=|shorts/|embed/)([^?&/]+)`)
	driveFilePattern = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)
)

// ToEmbedURL rewrites known video URL shapes to an inline-playable form.
// The transform is idempotent: already-embeddable URLs pass through
// unchanged, as do URLs of unrecognized shape.
func ToEmbedURL(url string) string {
	if url == "" {
		return url
	}

	if strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be") {
		if strings.Contains(url, "/embed/") {
			return url
		}
		if m := youtubeIDPattern.FindStringSubmatch(url); m != nil {
			id := m[1]
			return fmt.Sprintf(
				"https://www.youtube.com/embed/%s?autoplay=1&mute=1&loop=1&playlist=%s",
				id, id,
			)
		}
		return url
	}

	if strings.Contains(url, "drive.google.com") {
		if strings.Contains(url, "/preview") {
			return url
		}
		if m := driveFilePattern.FindStringSubmatch(url); m != nil {
			return fmt.Sprintf("https://drive.google.com/file/d/%s/preview", m[1])
		}
	}

	return url
}

type ReferenceService struct {
	repo   *repository.ReferenceRepository
	logger *slog.Logger
}

func NewReferenceService(repo *repository.ReferenceRepository, logger *slog.Logger) *ReferenceService {
	return &ReferenceService{
		repo:   repo,
		logger: logger.With("component", "reference"),
	}
}

// Resolve finds the comparison video for an account: the configured
// reference first, then the latest short-form upload, then the latest
// upload of any kind. Returns nil when the account has no videos at all;
// the caller renders an empty state, not an error.
func (s *ReferenceService) Resolve(ctx context.Context, accountID uint) (*Reference, error) {
	lookups := []func(context.Context, uint) (*model.ReferenceVideo, error){
		s.repo.FindConfigured,
		s.repo.LatestShortForm,
		s.repo.Latest,
	}

	for _, lookup := range lookups {
		video, err := lookup(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if video != nil {
			return &Reference{
				VideoURL: video.URL,
				EmbedURL: ToEmbedURL(video.URL),
			}, nil
		}
	}

	s.logger.Info("no reference video for account", "account_id", accountID)
	return nil, nil
}
