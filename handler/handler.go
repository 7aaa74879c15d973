package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/walkure/slack_in_office/directory"
	"github.com/walkure/slack_in_office/office"
)

// FetchFailedText is sent back when the member list cannot be read.
const FetchFailedText = "Fetching users lists from Slack went wrong, try again little bit later."

// ErrInvalidToken is returned for slash commands carrying the wrong verification token.
var ErrInvalidToken = errors.New("invalid verification token")

// Handler answers the slash command with the members in the office.
type Handler struct {
	api               directory.Lister
	verificationToken string
	logger            *slog.Logger
}

func New(api directory.Lister, verificationToken string, logger *slog.Logger) *Handler {
	return &Handler{
		api:               api,
		verificationToken: verificationToken,
		logger:            logger,
	}
}

// HandleSlashCommandEvent returns the reply for cmd. A failed directory fetch
// is not an error: the reply then only carries FetchFailedText.
func (h *Handler) HandleSlashCommandEvent(ctx context.Context, cmd slack.SlashCommand) (*slack.Msg, error) {
	if !cmd.ValidateToken(h.verificationToken) {
		return nil, ErrInvalidToken
	}

	members, err := directory.ListMembers(ctx, h.api)
	if err != nil {
		h.logger.ErrorContext(ctx, FetchFailedText, slog.String("error", err.Error()))
		return &slack.Msg{Text: FetchFailedText}, nil
	}

	tagged := office.Select(members)
	h.logger.DebugContext(ctx, "members classified",
		slog.String("user", cmd.UserName),
		slog.Int("members", len(members)),
		slog.Int("in_office", len(tagged)))

	return office.Compose(tagged), nil
}

type blocksReply struct {
	Blocks slack.Blocks `json:"blocks"`
}

type textReply struct {
	Text string `json:"text"`
}

// Payload returns the body sent back to Slack for msg: only its blocks, or
// only its text when it has none.
func Payload(msg *slack.Msg) any {
	if len(msg.Blocks.BlockSet) == 0 {
		return textReply{Text: msg.Text}
	}
	return blocksReply{Blocks: msg.Blocks}
}
