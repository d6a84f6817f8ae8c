// Package session persists the access/refresh token pair of the signed-in
// user in two independent slots. Tokens are opaque strings; nothing here
// inspects them.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
)

// Session is the persisted token pair. An empty string means "not present".
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Authenticated reports whether requests should carry a bearer token.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// Store owns the token slots. All writes to the pair go through it.
type Store struct {
	mu    sync.Mutex
	slots slots.Repository
}

func NewStore(r slots.Repository) *Store {
	return &Store{slots: r}
}

// Load reads both tokens. Missing slots yield empty fields, not errors.
func (s *Store) Load(ctx context.Context) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, err := s.slots.Get(ctx, common.SlotAccessToken)
	if err != nil {
		return Session{}, fmt.Errorf("load access token: %w", err)
	}
	refresh, err := s.slots.Get(ctx, common.SlotRefreshToken)
	if err != nil {
		return Session{}, fmt.Errorf("load refresh token: %w", err)
	}

	return Session{AccessToken: string(access), RefreshToken: string(refresh)}, nil
}

// Save overwrites both tokens in one write.
func (s *Store) Save(ctx context.Context, accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.slots.SetMany(ctx, map[string][]byte{
		common.SlotAccessToken:  []byte(accessToken),
		common.SlotRefreshToken: []byte(refreshToken),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes both tokens, leaving the client unauthenticated.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slots.Delete(ctx, common.SlotAccessToken, common.SlotRefreshToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
