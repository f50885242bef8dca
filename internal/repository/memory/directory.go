package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/arklim/user-admin-console/internal/core/domain"
	"github.com/arklim/user-admin-console/internal/core/port"
	"github.com/arklim/user-admin-console/internal/repository"
)

// DefaultCapacity bounds the directory when no explicit capacity is given.
const DefaultCapacity = 50

// Directory is an in-memory account collection indexed by id and by username.
// The maps are guarded by a single RWMutex; the User entities themselves are
// mutated by the single caller thread, per the process model.
type Directory struct {
	mu         sync.RWMutex
	capacity   int
	byID       map[string]*domain.User
	byUsername map[string]*domain.User
	order      []string
}

// NewDirectory constructs an empty directory bounded at capacity accounts.
func NewDirectory(capacity int) *Directory {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Directory{
		capacity:   capacity,
		byID:       make(map[string]*domain.User, capacity),
		byUsername: make(map[string]*domain.User, capacity),
	}
}

// Insert adds an account, enforcing capacity and id/username uniqueness.
func (d *Directory) Insert(_ context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("insert user: %w", repository.ErrNotFound)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.byID) >= d.capacity {
		return fmt.Errorf("insert user %s: %w", user.Username(), repository.ErrCapacityExceeded)
	}
	if _, exists := d.byID[user.ID()]; exists {
		return fmt.Errorf("insert user id %s: %w", user.ID(), repository.ErrConflict)
	}
	if _, exists := d.byUsername[user.Username()]; exists {
		return fmt.Errorf("insert username %s: %w", user.Username(), repository.ErrConflict)
	}

	d.byID[user.ID()] = user
	d.byUsername[user.Username()] = user
	d.order = append(d.order, user.ID())
	return nil
}

// FindByID returns the account with the given id.
func (d *Directory) FindByID(_ context.Context, id string) (*domain.User, error) {
	id = strings.TrimSpace(id)

	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

// FindByUsername returns the account with the given username.
func (d *Directory) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.byUsername[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

// Remove deletes the account with the given id.
func (d *Directory) Remove(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.byID[id]
	if !ok {
		return repository.ErrNotFound
	}

	delete(d.byID, id)
	delete(d.byUsername, user.Username())
	for i, stored := range d.order {
		if stored == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all accounts in insertion order.
func (d *Directory) List(_ context.Context) ([]*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*domain.User, 0, len(d.order))
	for _, id := range d.order {
		if user, ok := d.byID[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

// Count returns the number of stored accounts.
func (d *Directory) Count(_ context.Context) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID), nil
}

var _ port.Directory = (*Directory)(nil)
