package port

import (
	"context"

	"github.com/arklim/user-admin-console/internal/core/domain"
)

// Directory exposes the account collection keyed by id and by username.
// Implementations own uniqueness and capacity enforcement; the User entity
// does not check either.
type Directory interface {
	// Insert adds an account. Fails with repository.ErrConflict when the id
	// or username is taken, repository.ErrCapacityExceeded when full.
	Insert(ctx context.Context, user *domain.User) error
	// FindByID returns the account or repository.ErrNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername returns the account or repository.ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Remove deletes the account or returns repository.ErrNotFound.
	Remove(ctx context.Context, id string) error
	// List returns all accounts in insertion order.
	List(ctx context.Context) ([]*domain.User, error)
	// Count returns the number of stored accounts.
	Count(ctx context.Context) (int, error)
}
