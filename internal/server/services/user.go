// Package services contains server-side business logic. UserService handles
// registration, login, and issuing, refreshing and revoking JWTs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/auth"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - RefreshToken: mint a new access token for a live refresh token
// - Logout: revoke a refresh token
// - CurrentUser: resolve an access token to its user
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
// db may be nil when m does not need a connection.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register validates the profile, hashes password and stores the user.
// Duplicate usernames or emails yield errors wrapping common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, profile models.User, password string) (*models.User, error) {
	if err := validateRegistration(&profile, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}

	profile.ID = ""
	profile.HashedPassword = hash
	profile.IsActive = true
	profile.IsSuperuser = false

	u, err := s.repomanager.Users(s.db).Create(ctx, &profile)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password and, on success, returns a new TokenPair.
// Unknown users and wrong passwords both yield common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	if !auth.CheckPassword(password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}
	return s.generateTokenPair(user.Username)
}

// RefreshToken validates a refresh token and returns a new access token
// paired with the same refresh token. Revoked tokens yield
// common.ErrTokenRevoked.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := auth.ParseTokenOfType(refreshToken, common.TokenTypeRefresh, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	revoked, err := s.repomanager.Blacklist(s.db).Contains(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}

	access, err := s.generateAccessToken(claims.Subject)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout revokes refreshToken. The token must still verify.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if _, err := auth.ParseToken(refreshToken, s.jwtSecret); err != nil {
		return err
	}
	if err := s.repomanager.Blacklist(s.db).Add(ctx, refreshToken); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	return nil
}

// CurrentUser resolves an access token to an active user.
func (s *UserService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := auth.ParseTokenOfType(accessToken, common.TokenTypeAccess, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive user", common.ErrUnauthorized)
	}
	return user, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(username string) (string, error) {
	t, err := auth.GenerateToken(username, common.TokenTypeAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	return t, nil
}

func (s *UserService) generateTokenPair(username string) (*TokenPair, error) {
	access, err := s.generateAccessToken(username)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateToken(username, common.TokenTypeRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInternal, err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func validateRegistration(u *models.User, password string) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)

	switch {
	case u.Username == "" || len(u.Username) > 50:
		return fmt.Errorf("%w: username must be 1-50 characters", common.ErrValidation)
	case password == "" || len(password) > 256:
		return fmt.Errorf("%w: password must be 1-256 characters", common.ErrValidation)
	case len(u.Email) > 100:
		return fmt.Errorf("%w: email is too long", common.ErrValidation)
	}
	if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
		return fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}

	if u.HousingSize == 0 {
		u.HousingSize = 1
	}
	if u.HousingSize < 1 || u.HousingSize > 100 {
		return fmt.Errorf("%w: housing size must be between 1 and 100", common.ErrValidation)
	}
	if u.BudgetPref < 0 {
		return fmt.Errorf("%w: budget must not be negative", common.ErrValidation)
	}
	return nil
}
