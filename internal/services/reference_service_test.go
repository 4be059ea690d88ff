package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "qa-review-system.com/qa-review-system/internal/models"
	repository "qa-review-system.com/qa-review-system/internal/repositories"
)

func TestToEmbedURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "youtube watch url",
			in:   "https://www.youtube.com/watch?v=abc123",
			out:  "https://www.youtube.com/embed/abc123?autoplay=1&mute=1&loop=1&playlist=abc123",
		},
		{
			name: "youtube shorts url",
			in:   "https://www.youtube.com/shorts/xyz789",
			out:  "https://www.youtube.com/embed/xyz789?autoplay=1&mute=1&loop=1&playlist=xyz789",
		},
		{
			name: "youtu.be short link",
			in:   "https://youtu.be/short1",
			out:  "https://www.youtube.com/embed/short1?autoplay=1&mute=1&loop=1&playlist=short1",
		},
		{
			name: "already embedded youtube url passes through",
			in:   "https://www.youtube.com/embed/abc123?autoplay=1",
			out:  "https://www.youtube.com/embed/abc123?autoplay=1",
		},
		{
			name: "drive file url",
			in:   "https://drive.google.com/file/d/FILE_1/view?usp=sharing",
			out:  "https://drive.google.com/file/d/FILE_1/preview",
		},
		{
			name: "drive preview url passes through",
			in:   "https://drive.google.com/file/d/FILE_1/preview",
			out:  "https://drive.google.com/file/d/FILE_1/preview",
		},
		{
			name: "unrecognized url passes through",
			in:   "https://vimeo.com/12345",
			out:  "https://vimeo.com/12345",
		},
		{
			name: "empty url",
			in:   "",
			out:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.out, ToEmbedURL(tc.in))
			// Rewriting is idempotent.
			assert.Equal(t, tc.out, ToEmbedURL(tc.out))
		})
	}
}

func TestResolve_FallbackChain(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(repository.NewReferenceRepository(db), testLogger())
	ctx := context.Background()

	const accountID = 1

	// No videos at all: empty state, not an error.
	ref, err := svc.Resolve(ctx, accountID)
	require.NoError(t, err)
	assert.Nil(t, ref)

	require.NoError(t, db.Create(&model.ReferenceVideo{
		AccountID: accountID,
		URL:       "https://www.youtube.com/watch?v=plain",
	}).Error)

	ref, err = svc.Resolve(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "https://www.youtube.com/watch?v=plain", ref.VideoURL)

	require.NoError(t, db.Create(&model.ReferenceVideo{
		AccountID: accountID,
		URL:       "https://www.youtube.com/shorts/sf1",
		ShortForm: true,
	}).Error)

	// Short-form uploads beat plain uploads.
	ref, err = svc.Resolve(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "https://www.youtube.com/shorts/sf1", ref.VideoURL)
	assert.Equal(t,
		"https://www.youtube.com/embed/sf1?autoplay=1&mute=1&loop=1&playlist=sf1",
		ref.EmbedURL)

	require.NoError(t, db.Create(&model.ReferenceVideo{
		AccountID: accountID,
		URL:       "https://www.youtube.com/watch?v=configured",
		ShortForm: true,
		Reference: true,
	}).Error)

	// An explicitly configured reference beats everything.
	ref, err = svc.Resolve(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "https://www.youtube.com/watch?v=configured", ref.VideoURL)
}

func TestResolve_ScopedToAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReferenceService(repository.NewReferenceRepository(db), testLogger())
	ctx := context.Background()

	require.NoError(t, db.Create(&model.ReferenceVideo{
		AccountID: 1,
		URL:       "https://www.youtube.com/watch?v=mine",
		Reference: true,
	}).Error)

	ref, err := svc.Resolve(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, ref)
}
