// Package directory reads the workspace member list from Slack.
package directory

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Member is a workspace user that has a status set.
type Member struct {
	ID          string
	DisplayName string
	StatusText  string
	StatusEmoji string
}

// Lister is the part of *slack.Client used to fetch users.
type Lister interface {
	GetUsersPaginated(options ...slack.GetUsersOption) slack.UserPagination
}

// ListMembers fetches all users and keeps the humans that are not deleted and
// have a status text. Any failed page, rate limiting included, fails the
// whole call without retrying.
func ListMembers(ctx context.Context, api Lister) ([]Member, error) {
	var users []slack.User

	p := api.GetUsersPaginated()
	for {
		var err error
		p, err = p.Next(ctx)
		if p.Done(err) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("users.list: %w", err)
		}
		users = append(users, p.Users...)
	}

	return FromUsers(users), nil
}

// FromUsers applies the member filter to raw Slack users, keeping their order.
func FromUsers(users []slack.User) []Member {
	members := make([]Member, 0, len(users))
	for _, u := range users {
		if u.IsBot || u.Deleted || u.Profile.StatusText == "" {
			continue
		}
		members = append(members, Member{
			ID:          u.ID,
			DisplayName: u.Profile.DisplayName,
			StatusText:  u.Profile.StatusText,
			StatusEmoji: u.Profile.StatusEmoji,
		})
	}
	return members
}
