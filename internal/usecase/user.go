package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/user-admin-console/internal/core/domain"
	"github.com/arklim/user-admin-console/internal/core/port"
	"github.com/arklim/user-admin-console/internal/infra/security"
	"github.com/arklim/user-admin-console/internal/repository"
)

var (
	// ErrPermissionDenied indicates the actor's role does not allow the operation.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUserNotFound indicates the target account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrSelfDeletion indicates an actor tried to delete their own account.
	ErrSelfDeletion = errors.New("cannot delete own account")
	// ErrCurrentCredentialInvalid indicates the supplied current credential is wrong.
	ErrCurrentCredentialInvalid = errors.New("current credential is incorrect")
	// ErrNoChanges indicates an update request carried nothing to change.
	ErrNoChanges = errors.New("nothing to update")
)

// CreateUserInput captures the payload for account creation. ID is optional;
// when empty the entity generates one.
type CreateUserInput struct {
	ID         string
	FullName   string
	Username   string
	Credential string
	Role       domain.Role
}

// UpdateUserInput captures the payload for an account update. Empty fields
// are left unchanged. A credential change requires the current credential.
type UpdateUserInput struct {
	FullName          string
	NewCredential     string
	CurrentCredential string
}

// AccountStatus summarizes the security state of an account.
type AccountStatus struct {
	UserID             string
	Username           string
	Blocked            bool
	FailedAttempts     int
	Role               domain.Role
	CredentialStrength string
}

// UserService handles permission-checked account lifecycle operations over
// the directory.
type UserService struct {
	directory port.Directory
	events    port.EventPublisher
	strength  *security.StrengthMeter
	logger    *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(directory port.Directory, events port.EventPublisher, strength *security.StrengthMeter, logger *zap.Logger) *UserService {
	if strength == nil {
		strength = security.NewStrengthMeter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{directory: directory, events: events, strength: strength, logger: logger}
}

// CreateUser validates, constructs and stores a new account. The actor must
// hold the create-users capability. Directory capacity and uniqueness
// failures surface as wrapped repository sentinels.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput, actor *domain.User) (*domain.User, error) {
	if actor == nil || !actor.Role().Capabilities().CreateUsers {
		return nil, ErrPermissionDenied
	}

	var (
		user *domain.User
		err  error
	)
	if input.ID != "" {
		user, err = domain.NewUserWithID(input.ID, input.FullName, input.Username, input.Credential, input.Role)
	} else {
		user, err = domain.NewUser(input.FullName, input.Username, input.Credential, input.Role)
	}
	if err != nil {
		return nil, err
	}

	if err := s.directory.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	_ = actor.RecordAction(fmt.Sprintf("Created user: %s (%s)", user.Username(), user.FullName()))

	if s.events != nil {
		_ = s.events.PublishUserCreated(ctx, domain.UserCreatedEvent{
			UserID:    user.ID(),
			Username:  user.Username(),
			FullName:  user.FullName(),
			Role:      user.Role(),
			CreatedBy: actor.ID(),
			CreatedAt: time.Now(),
		})
	}
	s.logger.Info("user created",
		zap.String("user_id", user.ID()),
		zap.String("username", user.Username()),
		zap.String("created_by", actor.ID()),
	)
	return user, nil
}

// UpdateUser renames and/or changes the credential of the target account.
// Actors may always update themselves; updating another account requires the
// update-other-users capability. A credential change verifies the target's
// current credential first.
func (s *UserService) UpdateUser(ctx context.Context, targetID string, input UpdateUserInput, actor *domain.User) error {
	if actor == nil {
		return ErrPermissionDenied
	}

	target, err := s.directory.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if !actor.Role().CanUpdateUser(actor.ID(), target.ID()) {
		return ErrPermissionDenied
	}

	if input.NewCredential != "" && !target.ValidateCredential(input.CurrentCredential) {
		return ErrCurrentCredentialInvalid
	}

	updated := false
	if input.FullName != "" {
		if err := target.Rename(input.FullName); err != nil {
			return err
		}
		updated = true
	}
	if input.NewCredential != "" {
		if err := target.SetCredential(input.NewCredential); err != nil {
			return err
		}
		if s.events != nil {
			_ = s.events.PublishCredentialChanged(ctx, domain.CredentialChangedEvent{
				UserID:    target.ID(),
				Username:  target.Username(),
				ChangedAt: time.Now(),
			})
		}
		updated = true
	}
	if !updated {
		return ErrNoChanges
	}

	if actor.ID() != target.ID() {
		_ = actor.RecordAction(fmt.Sprintf("Updated user: %s", target.Username()))
	}
	return nil
}

// DeleteUser removes the target account from the directory. Requires the
// delete-users capability; actors can never delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, targetID string, actor *domain.User) error {
	if actor == nil || !actor.Role().Capabilities().DeleteUsers {
		return ErrPermissionDenied
	}

	target, err := s.directory.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if actor.ID() == target.ID() {
		return ErrSelfDeletion
	}

	if err := s.directory.Remove(ctx, target.ID()); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}

	_ = actor.RecordAction(fmt.Sprintf("Deleted user: %s (%s)", target.Username(), target.FullName()))

	if s.events != nil {
		_ = s.events.PublishUserDeleted(ctx, domain.UserDeletedEvent{
			UserID:    target.ID(),
			Username:  target.Username(),
			DeletedBy: actor.ID(),
			DeletedAt: time.Now(),
		})
	}
	s.logger.Info("user deleted",
		zap.String("user_id", target.ID()),
		zap.String("deleted_by", actor.ID()),
	)
	return nil
}

// ListUsers returns the accounts visible to the actor: all of them for roles
// with the view-all-users capability, otherwise just the actor's own.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if actor == nil {
		return nil, ErrPermissionDenied
	}
	if !actor.Role().Capabilities().ViewAllUsers {
		return []*domain.User{actor}, nil
	}
	users, err := s.directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AccountStatus reports the security state of the account with the given
// username, including an advisory credential strength label.
func (s *UserService) AccountStatus(ctx context.Context, username string) (AccountStatus, error) {
	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AccountStatus{}, ErrUserNotFound
		}
		return AccountStatus{}, fmt.Errorf("lookup user: %w", err)
	}

	return AccountStatus{
		UserID:             user.ID(),
		Username:           user.Username(),
		Blocked:            user.Blocked(),
		FailedAttempts:     user.FailedLoginAttempts(),
		Role:               user.Role(),
		CredentialStrength: s.strength.Label(user.Credential(), user.Username(), user.FullName()),
	}, nil
}
