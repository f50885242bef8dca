package port

import (
	"context"

	"github.com/arklim/user-admin-console/internal/core/domain"
)

// EventPublisher publishes domain events. Publishing is best-effort; a
// failed publish never fails the operation that produced the event.
type EventPublisher interface {
	PublishUserCreated(ctx context.Context, event domain.UserCreatedEvent) error
	PublishUserDeleted(ctx context.Context, event domain.UserDeletedEvent) error
	PublishUserBlocked(ctx context.Context, event domain.UserBlockedEvent) error
	PublishUserUnblocked(ctx context.Context, event domain.UserUnblockedEvent) error
	PublishRoleChanged(ctx context.Context, event domain.RoleChangedEvent) error
	PublishCredentialChanged(ctx context.Context, event domain.CredentialChangedEvent) error
	PublishLoginSucceeded(ctx context.Context, event domain.LoginSucceededEvent) error
	PublishLoginFailed(ctx context.Context, event domain.LoginFailedEvent) error
}
