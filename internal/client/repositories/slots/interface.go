package slots

import "context"

// UpdateFunc receives the current slot value (nil when absent) and returns
// the value to store. Returning an error aborts the update and leaves the
// slot untouched.
type UpdateFunc func(current []byte) ([]byte, error)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error

	// SetMany writes all pairs atomically.
	SetMany(ctx context.Context, values map[string][]byte) error

	// Delete removes the given slots atomically. Missing slots are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Update performs an atomic read-modify-write of a single slot.
	Update(ctx context.Context, key string, fn UpdateFunc) error

	List(ctx context.Context) (map[string][]byte, error)
}
