package discord

import (
	"context"

	"github.com/naekun/naebot/internal/types"
)

// Directory resolves Discord user IDs to user names through the REST API
type Directory struct {
	session SessionHandler
}

// NewDirectory creates a Directory backed by session
func NewDirectory(session SessionHandler) *Directory {
	return &Directory{session: session}
}

// LookupUserName returns the user's name
func (d *Directory) LookupUserName(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	user, err := d.session.User(userID)
	if err != nil {
		return "", types.WrapError(types.ErrUserNotFound, "user lookup failed", err)
	}
	if user == nil {
		return "", types.NewBotError(types.ErrUserNotFound, "user lookup returned nothing")
	}
	return user.Username, nil
}
