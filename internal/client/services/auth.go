// Package services contains application services for the PantryKeeper client.
// This file defines the authentication service: login, registration, logout,
// current-user lookup and the liveness probe, on top of the HTTP client and the
// persisted session.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/session"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate and persist the token pair.
//   - Register: create a new account; the session is not touched.
//   - Logout: revoke the refresh token remotely and always drop the local session.
//   - CurrentUser: fetch the signed-in user, renewing the session if needed.
//   - IsAuthenticated: report whether an access token is stored.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
}

// SessionReader exposes the stored session. *session.Store satisfies it.
type SessionReader interface {
	Load(ctx context.Context) (session.Session, error)
}

type authService struct {
	client   client.Client
	sessions SessionReader
}

func NewAuthService(c client.Client, sessions SessionReader) AuthService {
	return &authService{client: c, sessions: sessions}
}

func (a *authService) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}
	if err := a.client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	switch {
	case strings.TrimSpace(username) == "":
		return models.User{}, fmt.Errorf("%w: username is required", common.ErrValidation)
	case !strings.Contains(email, "@"):
		return models.User{}, fmt.Errorf("%w: a valid email is required", common.ErrValidation)
	case password == "":
		return models.User{}, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	u, err := a.client.Register(ctx, models.Registration{Username: username, Email: email, Password: password})
	if err != nil {
		return models.User{}, fmt.Errorf("register error: %w", err)
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (models.User, error) {
	return a.client.CurrentUser(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return false, err
	}
	return s.Authenticated(), nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
