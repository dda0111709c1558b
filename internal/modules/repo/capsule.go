package repo

import (
	"context"
	"errors"
	"sync"

	"github.com/hostforge/hostforge/internal/modules/model"
)

var (
	// ErrNotFound is returned by lookups for ids the store does not hold.
	ErrNotFound = errors.New("capsule not found")
	// ErrDuplicateID rejects an Add whose id already exists. Allowing the
	// duplicate would make GetByID ambiguous.
	ErrDuplicateID = errors.New("capsule id already exists")
)

// CapsuleRepo owns the canonical capsule collection. The collection is
// process-local and copy-on-write: every mutation replaces the backing slice,
// so snapshots handed out by List are never mutated underneath a reader.
type CapsuleRepo interface {
	List(ctx context.Context) []model.Capsule
	GetByID(ctx context.Context, id string) (*model.Capsule, error)
	Add(ctx context.Context, c model.Capsule) error
	Update(ctx context.Context, id string, patch model.CapsulePatch) (*model.Capsule, error)
	Remove(ctx context.Context, id string)
	Replace(ctx context.Context, capsules []model.Capsule)
}

type capsuleRepo struct {
	mu       sync.RWMutex
	capsules []model.Capsule
}

// NewCapsuleRepo builds a store seeded with the given capsules, newest first.
func NewCapsuleRepo(seed []model.Capsule) CapsuleRepo {
	r := &capsuleRepo{}
	r.Replace(context.Background(), seed)
	return r
}

func (r *capsuleRepo) List(ctx context.Context) []model.Capsule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capsules
}

func (r *capsuleRepo) GetByID(ctx context.Context, id string) (*model.Capsule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.capsules {
		if r.capsules[i].ID == id {
			c := r.capsules[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *capsuleRepo) Add(ctx context.Context, c model.Capsule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.capsules {
		if r.capsules[i].ID == c.ID {
			return ErrDuplicateID
		}
	}
	next := make([]model.Capsule, 0, len(r.capsules)+1)
	next = append(next, c)
	next = append(next, r.capsules...)
	r.capsules = next
	return nil
}

func (r *capsuleRepo) Update(ctx context.Context, id string, patch model.CapsulePatch) (*model.Capsule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i := range r.capsules {
		if r.capsules[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	next := make([]model.Capsule, len(r.capsules))
	copy(next, r.capsules)
	next[idx] = patch.Apply(next[idx])
	r.capsules = next
	updated := next[idx]
	return &updated, nil
}

func (r *capsuleRepo) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]model.Capsule, 0, len(r.capsules))
	for _, c := range r.capsules {
		if c.ID != id {
			next = append(next, c)
		}
	}
	r.capsules = next
}

func (r *capsuleRepo) Replace(ctx context.Context, capsules []model.Capsule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capsules = append([]model.Capsule(nil), capsules...)
}
