package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"
)

// NewWebhookHandler serves slash commands posted by Slack. When signingSecret
// is not empty the request signature is checked as well.
func NewWebhookHandler(h *Handler, signingSecret string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var verifier *slack.SecretsVerifier
		if signingSecret != "" {
			v, err := slack.NewSecretsVerifier(r.Header, signingSecret)
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				logger.WarnContext(ctx, "failed to create secrets verifier", slog.String("error", err.Error()))
				return
			}
			verifier = &v
			r.Body = io.NopCloser(io.TeeReader(r.Body, verifier))
		}

		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			logger.ErrorContext(ctx, "failed to parse slash command", slog.String("error", err.Error()))
			return
		}

		if verifier != nil {
			if err = verifier.Ensure(); err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				logger.WarnContext(ctx, "failed to verify request", slog.String("error", err.Error()))
				return
			}
		}

		msg, err := h.HandleSlashCommandEvent(ctx, cmd)
		if errors.Is(err, ErrInvalidToken) {
			w.WriteHeader(http.StatusUnauthorized)
			logger.WarnContext(ctx, "slash command rejected", slog.String("error", err.Error()))
			return
		}
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			logger.ErrorContext(ctx, "failed to handle slash command", slog.String("error", err.Error()))
			return
		}

		if len(msg.Blocks.BlockSet) == 0 {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = io.WriteString(w, msg.Text)
			return
		}

		b, err := json.Marshal(Payload(msg))
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			logger.ErrorContext(ctx, "failed to marshal response", slog.String("error", err.Error()))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)

		logger.DebugContext(ctx, "response sent", "msg", msg)
	}
}
