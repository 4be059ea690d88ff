package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const defaultTrelloAPI = "https://api.trello.com/1"

// TrelloSink keeps one kanban card per task. Cards are tagged with the task
// id in their name, so a retry finds and updates the existing card instead
// of creating a duplicate.
type TrelloSink struct {
	BaseURL        string
	apiKey         string
	token          string
	listID         string
	completedLabel string
	client         *http.Client
}

func NewTrelloSink(apiKey, token, listID, completedLabel string, timeout time.Duration) *TrelloSink {
	return &TrelloSink{
		BaseURL:        defaultTrelloAPI,
		apiKey:         apiKey,
		token:          token,
		listID:         listID,
		completedLabel: completedLabel,
		client:         &http.Client{Timeout: timeout},
	}
}

func (t *TrelloSink) Name() string { return "trello" }

func (t *TrelloSink) Send(ctx context.Context, event Event) error {
	cardID, err := t.findCard(ctx, event.TaskID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("QA Review #%d - %s", event.TaskID, event.AccountName)
	description := t.cardDescription(event)

	if cardID != "" {
		return t.updateCard(ctx, cardID, title, description)
	}
	return t.createCard(ctx, title, description)
}

type trelloCard struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// findCard scans the configured list for a card already tagged with this
// task's id.
func (t *TrelloSink) findCard(ctx context.Context, taskID uint) (string, error) {
	query := url.Values{}
	query.Set("key", t.apiKey)
	query.Set("token", t.token)
	query.Set("fields", "id,name")

	endpoint := fmt.Sprintf("%s/lists/%s/cards?%s", t.BaseURL, t.listID, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("trello list cards returned %d: %s", resp.StatusCode, detail)
	}

	var cards []trelloCard
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		return "", err
	}

	tag := fmt.Sprintf("#%d", taskID)
	for _, card := range cards {
		if strings.Contains(card.Name, tag) {
			return card.ID, nil
		}
	}
	return "", nil
}

func (t *TrelloSink) createCard(ctx context.Context, title, description string) error {
	form := url.Values{}
	form.Set("key", t.apiKey)
	form.Set("token", t.token)
	form.Set("idList", t.listID)
	form.Set("name", title)
	form.Set("desc", description)
	if t.completedLabel != "" {
		form.Set("idLabels", t.completedLabel)
	}

	return t.submit(ctx, http.MethodPost, t.BaseURL+"/cards", form)
}

func (t *TrelloSink) updateCard(ctx context.Context, cardID, title, description string) error {
	form := url.Values{}
	form.Set("key", t.apiKey)
	form.Set("token", t.token)
	form.Set("name", title)
	form.Set("desc", description)

	return t.submit(ctx, http.MethodPut, fmt.Sprintf("%s/cards/%s", t.BaseURL, cardID), form)
}

func (t *TrelloSink) submit(ctx context.Context, method, endpoint string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("trello %s %s returned %d: %s", method, endpoint, resp.StatusCode, detail)
	}

	return nil
}

func (t *TrelloSink) cardDescription(event Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**QA Review Task for %s**\n\n", event.AccountName)
	fmt.Fprintf(&b, "**Status:** %s\n", event.Status)
	fmt.Fprintf(&b, "**Task ID:** #%d\n\n", event.TaskID)

	steps := append([]StepSummary(nil), event.Steps...)
	sort.Slice(steps, func(i, j int) bool { return steps[i].Number < steps[j].Number })

	for _, step := range steps {
		fmt.Fprintf(&b, "**Step %d Progress:** %d/%d items completed\n",
			step.Number, step.Checks.DoneCount(), len(step.Checks))
		if step.Comments != "" {
			fmt.Fprintf(&b, "**Step %d Comments:** %s\n", step.Number, step.Comments)
		}
	}

	b.WriteString("\n**Links:**\n")
	if event.ContentURL != "" {
		fmt.Fprintf(&b, "- [Drive Video](%s)\n", event.ContentURL)
	}
	if event.ReferenceURL != "" {
		fmt.Fprintf(&b, "- [Reference Video](%s)\n", event.ReferenceURL)
	}

	if event.FinalNotes != "" {
		fmt.Fprintf(&b, "\n**Final Notes:**\n%s\n", event.FinalNotes)
	}

	return b.String()
}
