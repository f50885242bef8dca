package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/user-admin-console/internal/core/domain"
	"github.com/arklim/user-admin-console/internal/core/port"
)

// LogPublisher emits domain events as structured log entries. The process is
// single-node, so the event stream lives in the log rather than on a broker.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher constructs a LogPublisher.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now()
	}

	p.logger.Info("event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at),
		zap.Any("payload", payload),
	)
}

// PublishUserCreated logs uac.user.created events.
func (p *LogPublisher) PublishUserCreated(_ context.Context, event domain.UserCreatedEvent) error {
	p.logEvent("uac.user.created", event.UserID, event.CreatedAt, map[string]any{
		"username":   event.Username,
		"full_name":  event.FullName,
		"role":       string(event.Role),
		"created_by": event.CreatedBy,
	})
	return nil
}

// PublishUserDeleted logs uac.user.deleted events.
func (p *LogPublisher) PublishUserDeleted(_ context.Context, event domain.UserDeletedEvent) error {
	p.logEvent("uac.user.deleted", event.UserID, event.DeletedAt, map[string]any{
		"username":   event.Username,
		"deleted_by": event.DeletedBy,
	})
	return nil
}

// PublishUserBlocked logs uac.user.blocked events.
func (p *LogPublisher) PublishUserBlocked(_ context.Context, event domain.UserBlockedEvent) error {
	p.logEvent("uac.user.blocked", event.UserID, event.BlockedAt, map[string]any{
		"username":        event.Username,
		"failed_attempts": event.FailedAttempts,
	})
	return nil
}

// PublishUserUnblocked logs uac.user.unblocked events.
func (p *LogPublisher) PublishUserUnblocked(_ context.Context, event domain.UserUnblockedEvent) error {
	p.logEvent("uac.user.unblocked", event.UserID, event.UnblockedAt, map[string]any{
		"username":     event.Username,
		"unblocked_by": event.UnblockedBy,
	})
	return nil
}

// PublishRoleChanged logs uac.user.role.changed events.
func (p *LogPublisher) PublishRoleChanged(_ context.Context, event domain.RoleChangedEvent) error {
	p.logEvent("uac.user.role.changed", event.UserID, event.ChangedAt, map[string]any{
		"username":   event.Username,
		"old_role":   string(event.OldRole),
		"new_role":   string(event.NewRole),
		"changed_by": event.ChangedBy,
	})
	return nil
}

// PublishCredentialChanged logs uac.user.credential.changed events. The
// credential itself never reaches the log.
func (p *LogPublisher) PublishCredentialChanged(_ context.Context, event domain.CredentialChangedEvent) error {
	p.logEvent("uac.user.credential.changed", event.UserID, event.ChangedAt, map[string]any{
		"username": event.Username,
	})
	return nil
}

// PublishLoginSucceeded logs uac.auth.login.succeeded events.
func (p *LogPublisher) PublishLoginSucceeded(_ context.Context, event domain.LoginSucceededEvent) error {
	p.logEvent("uac.auth.login.succeeded", event.UserID, event.At, map[string]any{
		"username": event.Username,
	})
	return nil
}

// PublishLoginFailed logs uac.auth.login.failed events.
func (p *LogPublisher) PublishLoginFailed(_ context.Context, event domain.LoginFailedEvent) error {
	p.logEvent("uac.auth.login.failed", event.UserID, event.At, map[string]any{
		"username": event.Username,
		"reason":   event.Reason,
		"locked":   event.Locked,
	})
	return nil
}

var _ port.EventPublisher = (*LogPublisher)(nil)
