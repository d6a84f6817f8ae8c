package collections

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
)

// Record is a stored element with a store-assigned integer id.
type Record[T any] interface {
	RecordID() int64
	WithID(id int64) T
}

// Stamper is implemented by records that carry a creation timestamp.
type Stamper[T any] interface {
	Stamp(now time.Time) T
}

// Order decides where Create places a new record.
type Order int

const (
	// NewestFirst inserts new records at the head.
	NewestFirst Order = iota
	// OldestFirst appends new records at the tail.
	OldestFirst
)

type Option func(*options)

type options struct {
	now func() time.Time
	log logging.Logger
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// Store is a named collection of T persisted in one slot.
type Store[T Record[T]] struct {
	mu    sync.Mutex
	slot  string
	order Order
	repo  slots.Repository
	ids   idGenerator
	now   func() time.Time
	log   logging.Logger
}

func New[T Record[T]](repo slots.Repository, slot string, order Order, opts ...Option) *Store[T] {
	o := options{now: time.Now, log: logging.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return &Store[T]{
		slot:  slot,
		order: order,
		repo:  repo,
		ids:   idGenerator{now: o.now},
		now:   o.now,
		log:   o.log.With("collection", slot),
	}
}

// List returns the records in stored order. A missing or unreadable slot
// yields an empty slice.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	raw, err := s.repo.Get(ctx, s.slot)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", s.slot, err)
	}
	return s.decode(ctx, raw), nil
}

// Get returns the record with the given id or common.ErrNotFound.
func (s *Store[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	items, err := s.List(ctx)
	if err != nil {
		return zero, err
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return zero, fmt.Errorf("%s[%d]: %w", s.slot, id, common.ErrNotFound)
}

// Create assigns an id, applies the creation stamp and stores rec.
func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	var created T
	err := s.mutate(ctx, func(items []T) ([]T, error) {
		var maxID int64
		for _, it := range items {
			maxID = max(maxID, it.RecordID())
		}

		created = rec.WithID(s.ids.next(maxID))
		if st, ok := any(created).(Stamper[T]); ok {
			created = st.Stamp(s.now())
		}

		if s.order == NewestFirst {
			return append([]T{created}, items...), nil
		}
		return append(items, created), nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return created, nil
}

// Update shallow-merges the fields present in patch into the stored record.
// patch is any JSON-encodable value; members it omits are left as they are
// and the id never changes.
func (s *Store[T]) Update(ctx context.Context, id int64, patch any) (T, error) {
	fields, err := json.Marshal(patch)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: encode patch: %w", common.ErrValidation, err)
	}

	var updated T
	err = s.mutate(ctx, func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%s[%d]: %w", s.slot, id, common.ErrNotFound)
		}
		merged, err := merge(items[i], fields)
		if err != nil {
			return nil, err
		}
		updated = merged.WithID(id)
		items[i] = updated
		return items, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Remove deletes the record with the given id. An unknown id reports
// common.ErrNotFound and leaves the collection unchanged.
func (s *Store[T]) Remove(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(items []T) ([]T, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%s[%d]: %w", s.slot, id, common.ErrNotFound)
		}
		return append(items[:i], items[i+1:]...), nil
	})
}

// mutate runs fn over the current records as one atomic slot update.
// Returning an error from fn leaves the slot untouched.
func (s *Store[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Update(ctx, s.slot, func(current []byte) ([]byte, error) {
		next, err := fn(s.decode(ctx, current))
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		return json.Marshal(next)
	})
}

func (s *Store[T]) decode(ctx context.Context, raw []byte) []T {
	if len(raw) == 0 {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn(ctx, "corrupt collection treated as empty", "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func indexOf[T Record[T]](items []T, id int64) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

func merge[T any](rec T, patch []byte) (T, error) {
	var zero T

	base, err := json.Marshal(rec)
	if err != nil {
		return zero, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return zero, err
	}

	var changes map[string]json.RawMessage
	if err := json.Unmarshal(patch, &changes); err != nil {
		return zero, fmt.Errorf("%w: patch must be an object: %w", common.ErrValidation, err)
	}
	for k, v := range changes {
		if k == "id" {
			continue
		}
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return out, nil
}
