package domain

import "time"

// UserCreatedEvent represents the payload for uac.user.created messages.
type UserCreatedEvent struct {
	UserID    string
	Username  string
	FullName  string
	Role      Role
	CreatedBy string
	CreatedAt time.Time
}

// UserDeletedEvent represents the payload for uac.user.deleted messages.
type UserDeletedEvent struct {
	UserID    string
	Username  string
	DeletedBy string
	DeletedAt time.Time
}

// UserBlockedEvent represents the payload for uac.user.blocked messages.
type UserBlockedEvent struct {
	UserID         string
	Username       string
	FailedAttempts int
	BlockedAt      time.Time
}

// UserUnblockedEvent represents the payload for uac.user.unblocked messages.
type UserUnblockedEvent struct {
	UserID      string
	Username    string
	UnblockedBy string
	UnblockedAt time.Time
}

// RoleChangedEvent represents the payload for uac.user.role.changed messages.
type RoleChangedEvent struct {
	UserID    string
	Username  string
	OldRole   Role
	NewRole   Role
	ChangedBy string
	ChangedAt time.Time
}

// CredentialChangedEvent represents the payload for uac.user.credential.changed messages.
type CredentialChangedEvent struct {
	UserID    string
	Username  string
	ChangedAt time.Time
}

// LoginSucceededEvent represents the payload for uac.auth.login.succeeded messages.
type LoginSucceededEvent struct {
	UserID   string
	Username string
	At       time.Time
}

// LoginFailedEvent represents the payload for uac.auth.login.failed messages.
type LoginFailedEvent struct {
	UserID   string
	Username string
	Reason   string
	Locked   bool
	At       time.Time
}
