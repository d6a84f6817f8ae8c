package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

var (
	ErrUsernameTaken = fmt.Errorf("username %w", common.ErrAlreadyExists)
	ErrEmailTaken    = fmt.Errorf("email %w", common.ErrAlreadyExists)
)

type Repository interface {
	// Create stores user, assigning ID when empty. Duplicates fail with
	// ErrUsernameTaken or ErrEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrNotFound for an unknown username.
	GetUserByLogin(ctx context.Context, username string) (*models.User, error)
}
