package slots

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// :memory: is per connection
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE slots (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func adapters(t *testing.T) map[string]Repository {
	return map[string]Repository{
		"sqlite": NewSQLiteRepository(setupDB(t)),
		"memory": NewMemoryRepository(),
	}
}

func TestRepository_Contract(t *testing.T) {
	for name, newRepo := range map[string]func(t *testing.T) Repository{
		"sqlite": func(t *testing.T) Repository { return NewSQLiteRepository(setupDB(t)) },
		"memory": func(t *testing.T) Repository { return NewMemoryRepository() },
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("absent slot is nil, nil", func(t *testing.T) {
				r := newRepo(t)
				v, err := r.Get(ctx, "access_token")
				require.NoError(t, err)
				assert.Nil(t, v)
			})

			t.Run("set overwrites", func(t *testing.T) {
				r := newRepo(t)
				require.NoError(t, r.Set(ctx, "k", []byte("old")))
				require.NoError(t, r.Set(ctx, "k", []byte("new")))

				v, err := r.Get(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, []byte("new"), v)
			})

			t.Run("set many and delete many", func(t *testing.T) {
				r := newRepo(t)
				require.NoError(t, r.SetMany(ctx, map[string][]byte{
					"access_token":  []byte("A1"),
					"refresh_token": []byte("R1"),
					"food_logs":     []byte("[]"),
				}))

				m, err := r.List(ctx)
				require.NoError(t, err)
				assert.Len(t, m, 3)

				require.NoError(t, r.Delete(ctx, "access_token", "refresh_token", "missing"))

				m, err = r.List(ctx)
				require.NoError(t, err)
				assert.Equal(t, map[string][]byte{"food_logs": []byte("[]")}, m)
			})

			t.Run("update sees current value", func(t *testing.T) {
				r := newRepo(t)
				var seen [][]byte
				fn := func(cur []byte) ([]byte, error) {
					seen = append(seen, cur)
					return append(cur, 'x'), nil
				}
				require.NoError(t, r.Update(ctx, "k", fn))
				require.NoError(t, r.Update(ctx, "k", fn))

				v, err := r.Get(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, []byte("xx"), v)
				require.Len(t, seen, 2)
				assert.Empty(t, seen[0])
				assert.Equal(t, []byte("x"), seen[1])
			})

			t.Run("update error leaves slot untouched", func(t *testing.T) {
				r := newRepo(t)
				require.NoError(t, r.Set(ctx, "k", []byte("keep")))

				boom := errors.New("boom")
				err := r.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("lost"), boom })
				require.ErrorIs(t, err, boom)

				v, err := r.Get(ctx, "k")
				require.NoError(t, err)
				assert.Equal(t, []byte("keep"), v)
			})
		})
	}
}

func TestRepository_ConcurrentUpdatesAreSerialized(t *testing.T) {
	for name, r := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const n = 20

			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := r.Update(ctx, "counter", func(cur []byte) ([]byte, error) {
						return append(cur, '.'), nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			v, err := r.Get(ctx, "counter")
			require.NoError(t, err)
			assert.Len(t, v, n)
		})
	}
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'z'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'q'
	again, _ := r.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestSQLiteRepository_ErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to get slot[k]")

	assert.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set slot[k]")

	_, err = r.List(ctx)
	assert.ErrorContains(t, err, "failed to list slots")

	assert.Error(t, r.Delete(ctx, "k"))
	assert.Error(t, r.Update(ctx, "k", func(b []byte) ([]byte, error) { return b, nil }))
}
