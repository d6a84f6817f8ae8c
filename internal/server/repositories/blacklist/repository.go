// Package blacklist stores refresh tokens revoked by logout.
package blacklist

import "context"

type Repository interface {
	// Add revokes token. Adding a token twice is not an error.
	Add(ctx context.Context, token string) error
	Contains(ctx context.Context, token string) (bool, error)
}
