package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultDiscordAPI = "https://discord.com/api/v10"

const (
	colorCompleted  = 0x4CAF50
	colorInProgress = 0x304FFE
)

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []discordEmbedField `json:"fields"`
	Timestamp   string              `json:"timestamp"`
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds"`
}

// DiscordSink posts a completion embed to a channel through the bot API.
type DiscordSink struct {
	BaseURL   string
	botToken  string
	channelID string
	client    *http.Client
}

func NewDiscordSink(botToken, channelID string, timeout time.Duration) *DiscordSink {
	return &DiscordSink{
		BaseURL:   defaultDiscordAPI,
		botToken:  botToken,
		channelID: channelID,
		client:    &http.Client{Timeout: timeout},
	}
}

func (d *DiscordSink) Name() string { return "discord" }

func (d *DiscordSink) Send(ctx context.Context, event Event) error {
	embed := discordEmbed{
		Title:       "QA Review Completed",
		Description: fmt.Sprintf("QA Task #%d for **%s**", event.TaskID, event.AccountName),
		Color:       colorCompleted,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Fields: []discordEmbedField{
			{Name: "Account", Value: event.AccountName, Inline: true},
			{Name: "Status", Value: event.Status, Inline: true},
			{Name: "Task ID", Value: fmt.Sprintf("#%d", event.TaskID), Inline: true},
		},
	}
	if event.Status != "completed" {
		embed.Title = "QA Review Updated"
		embed.Color = colorInProgress
	}

	for _, step := range event.Steps {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   fmt.Sprintf("Step %d Progress", step.Number),
			Value:  fmt.Sprintf("%d/%d items completed", step.Checks.DoneCount(), len(step.Checks)),
			Inline: true,
		})
	}

	if event.ContentURL != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   "Drive Video",
			Value:  fmt.Sprintf("[View Video](%s)", event.ContentURL),
			Inline: true,
		})
	}
	if event.ReferenceURL != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   "Reference Video",
			Value:  fmt.Sprintf("[View Reference](%s)", event.ReferenceURL),
			Inline: true,
		})
	}

	if event.FinalNotes != "" {
		notes := event.FinalNotes
		// Discord caps embed field values at 1024 characters.
		if len(notes) > 1000 {
			notes = notes[:1000]
		}
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:  "Final Notes",
			Value: notes,
		})
	}

	body, err := json.Marshal(discordMessage{Embeds: []discordEmbed{embed}})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/channels/%s/messages", d.BaseURL, d.channelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+d.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord api returned %d: %s", resp.StatusCode, detail)
	}

	return nil
}
