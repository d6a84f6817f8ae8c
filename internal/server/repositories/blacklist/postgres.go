package blacklist

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, token string) error {
	query :=
		`INSERT INTO token_blacklist (id, token)
         VALUES ($1, $2)
		 ON CONFLICT (token) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Contains(ctx context.Context, token string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE token = $1)`

	var found bool
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}
