package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	ShutdownTimeoutSeconds int

	ChecklistVariant string

	RedisAddr        string
	RedisClaimPrefix string

	NotifyTimeoutSeconds int
	DiscordBotToken      string
	DiscordChannelID     string
	TrelloAPIKey         string
	TrelloToken          string
	TrelloListID         string
	TrelloCompletedLabel string

	// Resource links surfaced to the reviewer UI through /qa/config.
	ResourceLinks map[string]string
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := os.Getenv("REDIS_HOST")
	redisPort := getEnv("REDIS_PORT", "6379")

	redisAddr := ""
	if redisHost != "" {
		redisAddr = fmt.Sprintf("%s:%s", redisHost, redisPort)
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "qa_review.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		ChecklistVariant:       getEnv("QA_CHECKLIST_VARIANT", "standard"),
		RedisAddr:              redisAddr,
		RedisClaimPrefix:       getEnv("REDIS_CLAIM_LOCK_PREFIX", "qa_claim_lock"),
		NotifyTimeoutSeconds:   getEnvAsInt("NOTIFY_TIMEOUT_SECONDS", 10),
		DiscordBotToken:        os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID:       os.Getenv("DISCORD_CHANNEL_ID"),
		TrelloAPIKey:           os.Getenv("TRELLO_API_KEY"),
		TrelloToken:            os.Getenv("TRELLO_TOKEN"),
		TrelloListID:           os.Getenv("TRELLO_LIST_ID"),
		TrelloCompletedLabel:   os.Getenv("TRELLO_COMPLETED_LABEL_ID"),
		ResourceLinks:          loadResourceLinks(),
	}

	validate(cfg)
	return cfg
}

// loadResourceLinks collects the checklist helper links (font presets,
// title-card templates, background folders) shown next to the checklist.
// Unset entries are omitted.
func loadResourceLinks() map[string]string {
	keys := map[string]string{
		"balloon_font_url":            "QA_BALLOON_FONT_URL",
		"bump_animation_url":          "QA_BUMP_ANIMATION_URL",
		"title_card_download_url":     "QA_TITLE_CARD_DOWNLOAD_URL",
		"title_card_preset_url":       "QA_TITLE_CARD_PRESET_URL",
		"start_animation_url":         "QA_START_ANIMATION_URL",
		"end_animation_url":           "QA_END_ANIMATION_URL",
		"ai_satisfying_folder_url":    "QA_AI_SATISFYING_FOLDER_URL",
		"oddly_satisfying_folder_url": "QA_ODDLY_SATISFYING_FOLDER_URL",
		"music_process_doc_url":       "QA_MUSIC_PROCESS_DOC_URL",
	}

	links := make(map[string]string)
	for name, envKey := range keys {
		if v := os.Getenv(envKey); v != "" {
			links[name] = v
		}
	}
	return links
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.NotifyTimeoutSeconds <= 0 {
		log.Fatal("NOTIFY_TIMEOUT_SECONDS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
