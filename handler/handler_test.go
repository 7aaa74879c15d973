package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "verification-token"

type apiProfile struct {
	DisplayName string `json:"display_name"`
	StatusText  string `json:"status_text,omitempty"`
	StatusEmoji string `json:"status_emoji,omitempty"`
}

type apiMember struct {
	ID      string     `json:"id"`
	IsBot   bool       `json:"is_bot"`
	Deleted bool       `json:"deleted"`
	Profile apiProfile `json:"profile"`
}

func member(id, status, emoji string) apiMember {
	return apiMember{
		ID: id,
		Profile: apiProfile{
			DisplayName: "display_name",
			StatusText:  status,
			StatusEmoji: emoji,
		},
	}
}

// fakeSlack serves users.list for a real *slack.Client.
type fakeSlack struct {
	api   *slack.Client
	calls atomic.Int32
}

func newFakeSlack(t *testing.T, fn http.HandlerFunc) *fakeSlack {
	t.Helper()

	f := &fakeSlack{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		assert.Equal(t, "/users.list", r.URL.Path)
		fn(w, r)
	}))
	t.Cleanup(server.Close)

	f.api = slack.New("xoxb-test", slack.OptionAPIURL(server.URL+"/"))
	return f
}

func withMembers(t *testing.T, members ...apiMember) *fakeSlack {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"ok":                true,
		"members":           members,
		"response_metadata": map[string]string{"next_cursor": ""},
	})
	require.NoError(t, err)

	return newFakeSlack(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
}

func withStatus(t *testing.T, code int, body string) *fakeSlack {
	t.Helper()

	return newFakeSlack(t, func(w http.ResponseWriter, r *http.Request) {
		if code == http.StatusTooManyRequests {
			w.Header().Set("Retry-After", "1")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = io.WriteString(w, body)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sectionTexts(t *testing.T, msg *slack.Msg) []string {
	t.Helper()

	var texts []string
	for _, b := range msg.Blocks.BlockSet {
		s, ok := b.(*slack.SectionBlock)
		require.True(t, ok, "unexpected block %T", b)
		assert.Equal(t, slack.MarkdownType, s.Text.Type)
		texts = append(texts, s.Text.Text)
	}
	return texts
}

func TestHandleSlashCommandEvent(t *testing.T) {
	t.Parallel()

	fake := withMembers(t,
		member("A1", "In the office", ":office:"),
		member("A2", "maybe in the office", ":?"),
		member("A3", "blah", ""),
	)
	h := New(fake.api, testToken, discardLogger())

	msg, err := h.HandleSlashCommandEvent(context.Background(), slack.SlashCommand{Token: testToken})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"In the office:\n• <@A1> :office: In the office",
		"Maybe in the office:\n• <@A2> :? maybe in the office",
	}, sectionTexts(t, msg))
	assert.Empty(t, msg.ResponseType)
}

func TestHandleSlashCommandEventExcludedMembers(t *testing.T) {
	t.Parallel()

	bot := member("B1", "In the office", "")
	bot.IsBot = true
	deleted := member("D1", "In the office", "")
	deleted.Deleted = true

	fake := withMembers(t, bot, deleted, member("E1", "", ""))
	h := New(fake.api, testToken, discardLogger())

	msg, err := h.HandleSlashCommandEvent(context.Background(), slack.SlashCommand{Token: testToken})
	require.NoError(t, err)
	assert.Equal(t, []string{"No one has 'In the office' status"}, sectionTexts(t, msg))
}

func TestHandleSlashCommandEventInvalidToken(t *testing.T) {
	t.Parallel()

	fake := withMembers(t)
	h := New(fake.api, testToken, discardLogger())

	msg, err := h.HandleSlashCommandEvent(context.Background(), slack.SlashCommand{Token: "wrong"})
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, msg)
	assert.Zero(t, fake.calls.Load())
}

func TestHandleSlashCommandEventDirectoryFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code int
		body string
	}{
		{name: "api error", code: http.StatusOK, body: `{"ok": false, "error": "invalid_auth"}`},
		{name: "rate limited", code: http.StatusTooManyRequests},
		{name: "server error", code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := withStatus(t, tt.code, tt.body)
			h := New(fake.api, testToken, discardLogger())

			msg, err := h.HandleSlashCommandEvent(context.Background(), slack.SlashCommand{Token: testToken})
			require.NoError(t, err)
			assert.Equal(t, FetchFailedText, msg.Text)
			assert.Empty(t, msg.Blocks.BlockSet)
			assert.Equal(t, int32(1), fake.calls.Load())
		})
	}
}
