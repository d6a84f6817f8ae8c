package client

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/session"
)

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
}

// TokenStore persists the token pair. *session.Store satisfies it.
type TokenStore interface {
	Load(ctx context.Context) (session.Session, error)
	Save(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error
}

var _ TokenStore = (*session.Store)(nil)
var _ Client = (*HTTPClient)(nil)
