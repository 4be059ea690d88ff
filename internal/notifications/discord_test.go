package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "qa-review-system.com/qa-review-system/internal/models"
)

func TestDiscordSink_Send(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody discordMessage
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink := NewDiscordSink("bot-token", "chan42", time.Second)
	sink.BaseURL = server.URL

	event := Event{
		TaskID:       9,
		AccountName:  "satisfying_clips",
		Status:       "completed",
		ContentURL:   "https://drive.google.com/file/d/FILE1/view",
		ReferenceURL: "https://www.youtube.com/shorts/ref1",
		FinalNotes:   "approved",
		Steps: []StepSummary{
			{Number: 1, Checks: model.CheckSet{"a": true, "b": false}},
		},
	}
	require.NoError(t, sink.Send(context.Background(), event))

	assert.Equal(t, "/channels/chan42/messages", gotPath)
	assert.Equal(t, "Bot bot-token", gotAuth)

	require.Len(t, gotBody.Embeds, 1)
	embed := gotBody.Embeds[0]
	assert.Equal(t, "QA Review Completed", embed.Title)
	assert.Contains(t, embed.Description, "#9")
	assert.Contains(t, embed.Description, "satisfying_clips")

	values := map[string]string{}
	for _, f := range embed.Fields {
		values[f.Name] = f.Value
	}
	assert.Equal(t, "completed", values["Status"])
	assert.Equal(t, "1/2 items completed", values["Step 1 Progress"])
	assert.Contains(t, values["Drive Video"], "FILE1")
	assert.Contains(t, values["Reference Video"], "ref1")
	assert.Equal(t, "approved", values["Final Notes"])
}

func TestDiscordSink_TruncatesLongNotes(t *testing.T) {
	var gotBody discordMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer server.Close()

	sink := NewDiscordSink("t", "c", time.Second)
	sink.BaseURL = server.URL

	event := Event{TaskID: 1, Status: "completed", FinalNotes: strings.Repeat("x", 2000)}
	require.NoError(t, sink.Send(context.Background(), event))

	require.Len(t, gotBody.Embeds, 1)
	for _, f := range gotBody.Embeds[0].Fields {
		if f.Name == "Final Notes" {
			assert.Len(t, f.Value, 1000)
			return
		}
	}
	t.Fatal("final notes field missing")
}

func TestDiscordSink_APIErrorIsReported(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Missing Access"}`, http.StatusForbidden)
	}))
	defer server.Close()

	sink := NewDiscordSink("t", "c", time.Second)
	sink.BaseURL = server.URL

	err := sink.Send(context.Background(), Event{TaskID: 1, Status: "completed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Missing Access")
}
