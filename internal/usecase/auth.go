package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/user-admin-console/internal/core/domain"
	"github.com/arklim/user-admin-console/internal/core/port"
	"github.com/arklim/user-admin-console/internal/infra/logger"
	"github.com/arklim/user-admin-console/internal/repository"
)

// AuthFailureReason classifies the expected ways a login can fail.
type AuthFailureReason string

const (
	// AuthFailureEmptyInput indicates a missing username or credential.
	AuthFailureEmptyInput AuthFailureReason = "empty_input"
	// AuthFailureNotFound indicates no account matches the username.
	AuthFailureNotFound AuthFailureReason = "not_found"
	// AuthFailureBlocked indicates the account is locked out.
	AuthFailureBlocked AuthFailureReason = "blocked"
	// AuthFailureBadCredential indicates the credential did not match.
	AuthFailureBadCredential AuthFailureReason = "bad_credential"
)

// AuthFailure is the expected, recoverable outcome of a failed login. It is
// an error value so callers can wrap and match it, never a panic.
type AuthFailure struct {
	Reason AuthFailureReason
	// CausedLock is set when this very attempt pushed the account over the
	// failed-attempt threshold.
	CausedLock bool
}

// Error implements error.
func (f *AuthFailure) Error() string {
	switch f.Reason {
	case AuthFailureEmptyInput:
		return "username and credential are required"
	case AuthFailureNotFound:
		return "account not found"
	case AuthFailureBlocked:
		return "account is blocked"
	case AuthFailureBadCredential:
		if f.CausedLock {
			return "invalid credential; account is now blocked"
		}
		return "invalid credential"
	default:
		return "authentication failed"
	}
}

// AsAuthFailure unwraps err into an AuthFailure when it is one.
func AsAuthFailure(err error) (*AuthFailure, bool) {
	var failure *AuthFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// AuthService coordinates login, logout, credential change, unblock and role
// change, combining role capabilities with account mutations.
type AuthService struct {
	directory port.Directory
	events    port.EventPublisher
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(directory port.Directory, events port.EventPublisher, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{directory: directory, events: events, logger: logger}
}

// Login authenticates a username/credential pair. Checks run in a fixed
// order: input presence, account existence, blocked state, credential. Each
// earlier check short-circuits further state mutation.
func (s *AuthService) Login(ctx context.Context, username, credential string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || credential == "" {
		return nil, &AuthFailure{Reason: AuthFailureEmptyInput}
	}

	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No account to attach an audit entry to; log for security visibility.
			s.logger.Warn("login attempt for unknown username", zap.String("username", logger.MaskString(username)))
			s.publishLoginFailed(ctx, "", username, string(AuthFailureNotFound), false)
			return nil, &AuthFailure{Reason: AuthFailureNotFound}
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.Blocked() {
		_ = user.RecordAction("Failed login attempt: account is blocked")
		s.publishLoginFailed(ctx, user.ID(), username, string(AuthFailureBlocked), false)
		return nil, &AuthFailure{Reason: AuthFailureBlocked}
	}

	if !user.ValidateCredential(credential) {
		user.IncrementFailedAttempts()
		lockedNow := user.Blocked()
		_ = user.RecordAction("Failed login attempt: invalid credential")

		if lockedNow {
			s.logger.Warn("account locked after repeated failed logins",
				zap.String("user_id", user.ID()),
				zap.String("username", username),
			)
			s.publishUserBlocked(ctx, user)
		}
		s.publishLoginFailed(ctx, user.ID(), username, string(AuthFailureBadCredential), lockedNow)
		return nil, &AuthFailure{Reason: AuthFailureBadCredential, CausedLock: lockedNow}
	}

	user.ResetFailedAttempts()
	_ = user.RecordAction("Logged in")

	if s.events != nil {
		_ = s.events.PublishLoginSucceeded(ctx, domain.LoginSucceededEvent{
			UserID:   user.ID(),
			Username: user.Username(),
			At:       time.Now(),
		})
	}
	s.logger.Info("login succeeded", zap.String("user_id", user.ID()), zap.String("username", username))
	return user, nil
}

// Logout records the end of a session. Safe to call with nil.
func (s *AuthService) Logout(user *domain.User) {
	if user == nil {
		return
	}
	_ = user.RecordAction("Logged out")
	s.logger.Info("logout", zap.String("user_id", user.ID()))
}

// ChangeCredential replaces the account credential after verifying the
// current one. Returns false without mutation on a nil account, a wrong
// current credential, an unchanged value, or a format-invalid new value.
func (s *AuthService) ChangeCredential(ctx context.Context, user *domain.User, current, next string) bool {
	if user == nil {
		return false
	}

	if !user.ValidateCredential(current) {
		_ = user.RecordAction("Failed credential change attempt: invalid current credential")
		return false
	}

	if next == current {
		s.logger.Debug("credential change rejected: value unchanged", zap.String("user_id", user.ID()))
		return false
	}

	if err := user.SetCredential(next); err != nil {
		s.logger.Debug("credential change rejected", zap.String("user_id", user.ID()), zap.Error(err))
		return false
	}

	if s.events != nil {
		_ = s.events.PublishCredentialChanged(ctx, domain.CredentialChangedEvent{
			UserID:    user.ID(),
			Username:  user.Username(),
			ChangedAt: time.Now(),
		})
	}
	return true
}

// UnblockUser lifts a lockout on the target account. The permission check
// runs before the existence check, so a non-admin actor gets a plain denial
// even for a nonexistent target. Unblocking an account that is not blocked is
// an idempotent success with no audit entry.
func (s *AuthService) UnblockUser(ctx context.Context, targetID string, actor *domain.User) bool {
	if actor == nil || !actor.Role().Capabilities().UnblockUsers {
		return false
	}

	target, err := s.directory.FindByID(ctx, targetID)
	if err != nil {
		return false
	}

	if !target.Blocked() {
		return true
	}

	target.SetBlocked(false)
	_ = actor.RecordAction(fmt.Sprintf("Unblocked user: %s", target.Username()))

	if s.events != nil {
		_ = s.events.PublishUserUnblocked(ctx, domain.UserUnblockedEvent{
			UserID:      target.ID(),
			Username:    target.Username(),
			UnblockedBy: actor.ID(),
			UnblockedAt: time.Now(),
		})
	}
	s.logger.Info("user unblocked",
		zap.String("user_id", target.ID()),
		zap.String("unblocked_by", actor.ID()),
	)
	return true
}

// ChangeUserRole assigns a new role to the target account. Permission is
// checked before existence; actors can never change their own role. Assigning
// the role the target already holds is an idempotent success with no audit
// entry.
func (s *AuthService) ChangeUserRole(ctx context.Context, targetID string, newRole domain.Role, actor *domain.User) bool {
	if actor == nil || !actor.Role().Capabilities().ChangeRoles {
		return false
	}

	target, err := s.directory.FindByID(ctx, targetID)
	if err != nil {
		return false
	}

	if actor.ID() == target.ID() {
		s.logger.Warn("self role change rejected", zap.String("user_id", actor.ID()))
		return false
	}

	if target.Role() == newRole {
		return true
	}

	oldRole := target.Role()
	if err := target.ChangeRole(newRole); err != nil {
		s.logger.Debug("role change rejected", zap.String("user_id", target.ID()), zap.Error(err))
		return false
	}
	_ = actor.RecordAction(fmt.Sprintf("Changed role of %s from %s to %s",
		target.Username(), oldRole.DisplayName(), newRole.DisplayName()))

	if s.events != nil {
		_ = s.events.PublishRoleChanged(ctx, domain.RoleChangedEvent{
			UserID:    target.ID(),
			Username:  target.Username(),
			OldRole:   oldRole,
			NewRole:   newRole,
			ChangedBy: actor.ID(),
			ChangedAt: time.Now(),
		})
	}
	return true
}

func (s *AuthService) publishLoginFailed(ctx context.Context, userID, username, reason string, locked bool) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishLoginFailed(ctx, domain.LoginFailedEvent{
		UserID:   userID,
		Username: username,
		Reason:   reason,
		Locked:   locked,
		At:       time.Now(),
	})
}

func (s *AuthService) publishUserBlocked(ctx context.Context, user *domain.User) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishUserBlocked(ctx, domain.UserBlockedEvent{
		UserID:         user.ID(),
		Username:       user.Username(),
		FailedAttempts: user.FailedLoginAttempts(),
		BlockedAt:      time.Now(),
	})
}
