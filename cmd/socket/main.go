package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/walkure/slack_in_office/config"
	"github.com/walkure/slack_in_office/handler"
	"github.com/walkure/slack_in_office/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireAppToken()
	}
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.InitializeLogger(cfg.LogLevel)
	slog.SetDefault(log)

	api := slack.New(
		cfg.BotToken,
		slack.OptionAppLevelToken(cfg.AppToken),
	)
	client := socketmode.New(
		api,
		//socketmode.OptionDebug(true),
	)
	h := handler.New(api, cfg.VerificationToken, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := socketmode.NewSocketmodeHandler(client)

	sh.Handle(socketmode.EventTypeConnecting, func(e *socketmode.Event, c *socketmode.Client) {
		log.Info("connecting to Slack with Socket Mode")
	})

	sh.Handle(socketmode.EventTypeHello, func(e *socketmode.Event, c *socketmode.Client) {
		log.Info("hello from Slack with Socket Mode")
	})

	sh.Handle(socketmode.EventTypeConnectionError, func(e *socketmode.Event, c *socketmode.Client) {
		log.Error("connection failed. Retry later", slog.String("error", fmt.Sprintf("%+v", e.Data)))
	})

	sh.Handle(socketmode.EventTypeConnected, func(e *socketmode.Event, c *socketmode.Client) {
		log.Info("connected to Slack with Socket Mode")
	})

	sh.Handle(socketmode.EventTypeSlashCommand, func(e *socketmode.Event, c *socketmode.Client) {
		cmd, ok := e.Data.(slack.SlashCommand)
		if !ok {
			log.Warn("failed to parse slash command")
			return
		}
		msg, err := h.HandleSlashCommandEvent(ctx, cmd)
		if err != nil {
			log.Warn("slash command rejected", slog.String("error", err.Error()))
			c.Ack(*e.Request)
			return
		}
		log.Debug("sending response", "msg", msg)
		c.Ack(*e.Request, handler.Payload(msg))
	})

	log.Error("loop exit", slog.String("error", sh.RunEventLoopContext(ctx).Error()))
}
