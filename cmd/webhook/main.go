package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"

	"github.com/walkure/slack_in_office/config"
	"github.com/walkure/slack_in_office/handler"
	"github.com/walkure/slack_in_office/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.InitializeLogger(cfg.LogLevel)
	slog.SetDefault(log)

	api := slack.New(
		cfg.BotToken,
		//slack.OptionDebug(true),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slash := handler.NewWebhookHandler(handler.New(api, cfg.VerificationToken, log), cfg.SigningSecret, log)

	mux := http.NewServeMux()
	mux.Handle("/slash", slash)
	mux.Handle("/", slash)

	serv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Warn("shutting down server")
		serv.Shutdown(ctx)
	}()

	log.Info("server listening", slog.String("port", cfg.Port))
	log.Error("server shutdown", slog.String("error", serv.ListenAndServe().Error()))
}
