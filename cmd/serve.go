package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"qa-review-system.com/qa-review-system/internal/checklist"
	config "qa-review-system.com/qa-review-system/internal/configs"
	httpapi "qa-review-system.com/qa-review-system/internal/http"
	"qa-review-system.com/qa-review-system/internal/locks"
	"qa-review-system.com/qa-review-system/internal/notifications"
	repository "qa-review-system.com/qa-review-system/internal/repositories"
	"qa-review-system.com/qa-review-system/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the QA review HTTP API",
	Long:  "Starts the HTTP API for claiming, reviewing and finalizing QA tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

		template, err := checklist.ForVariant(cfg.ChecklistVariant)
		if err != nil {
			return err
		}

		database := config.NewDatabaseClient(cfg.DatabaseDSN)
		txManager := repository.NewTxManager(database)

		linkRepo := repository.NewLinkRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		accountRepo := repository.NewAccountRepository(database)
		referenceRepo := repository.NewReferenceRepository(database)

		var locker locks.ClaimLocker = locks.Noop{}
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			locker = locks.NewRedisClaimLock(redisClient, cfg.RedisClaimPrefix)
		}

		notifyTimeout := time.Duration(cfg.NotifyTimeoutSeconds) * time.Second
		var sinks []notifications.Sink
		if cfg.DiscordBotToken != "" && cfg.DiscordChannelID != "" {
			sinks = append(sinks, notifications.NewDiscordSink(
				cfg.DiscordBotToken, cfg.DiscordChannelID, notifyTimeout))
		}
		if cfg.TrelloAPIKey != "" && cfg.TrelloToken != "" && cfg.TrelloListID != "" {
			sinks = append(sinks, notifications.NewTrelloSink(
				cfg.TrelloAPIKey, cfg.TrelloToken, cfg.TrelloListID,
				cfg.TrelloCompletedLabel, notifyTimeout))
		}
		dispatcher := notifications.NewDispatcher(sinks, notifyTimeout, logger)

		linkService := services.NewLinkService(linkRepo, logger)
		referenceService := services.NewReferenceService(referenceRepo, logger)
		accountService := services.NewAccountService(accountRepo, referenceService, logger)
		taskService := services.NewTaskService(
			taskRepo, accountRepo, linkService, linkRepo,
			referenceService, txManager, locker, dispatcher, template, logger,
		)

		e := echo.New()
		handler := httpapi.NewHandler(
			linkService, taskService, accountService, referenceService, cfg.ResourceLinks)
		httpapi.Register(e, handler, cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)
		taskService.FlushNotifications()

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
