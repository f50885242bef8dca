package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// HistoryCapacity bounds the per-account audit log.
	HistoryCapacity = 100
	// MaxFailedLoginAttempts is the lockout threshold.
	MaxFailedLoginAttempts = 3

	userIDPrefix = "USR_"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// User is the central account entity: identity, credential, role, lockout
// state, and a bounded audit history. Every mutator appends exactly one audit
// action describing the change, with the account's own id as actor.
//
// The entity is not safe for concurrent use; callers running it inside a
// concurrent server must serialize mutations per account.
type User struct {
	id       string
	fullName string
	username string
	// credential is stored and compared as a plain value. Known weakness kept
	// from the original system; must not survive into any persistence layer.
	credential string
	role       Role

	blocked             bool
	failedLoginAttempts int

	history *ActionLog
}

// NewUser creates an account with a generated id.
func NewUser(fullName, username, credential string, role Role) (*User, error) {
	return NewUserWithID(generateUserID(), fullName, username, credential, role)
}

// NewUserWithID creates an account with the supplied id. All fields are
// validated before anything is assigned, so a failed construction never
// yields a partial account. On success the history holds a single
// account-created action.
func NewUserWithID(id, fullName, username, credential string, role Role) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidArgument("id", "must not be empty")
	}
	fullName = strings.TrimSpace(fullName)
	if utf8.RuneCountInString(fullName) < 2 {
		return nil, invalidArgument("full_name", "must be at least 2 characters")
	}
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < 3 {
		return nil, invalidArgument("username", "must be at least 3 characters")
	}
	if !usernamePattern.MatchString(username) {
		return nil, invalidArgument("username", "may only contain letters, digits and underscores")
	}
	if err := validateCredentialFormat(credential); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, invalidArgument("role", "unknown role")
	}

	u := &User{
		id:         id,
		fullName:   fullName,
		username:   username,
		credential: credential,
		role:       role,
		history:    NewActionLog(HistoryCapacity),
	}
	u.record("Account created")
	return u, nil
}

// ID returns the immutable account id.
func (u *User) ID() string { return u.id }

// FullName returns the display name.
func (u *User) FullName() string { return u.fullName }

// Username returns the immutable login name.
func (u *User) Username() string { return u.username }

// Credential returns the stored credential. Plain value, same weakness as
// the storage itself.
func (u *User) Credential() string { return u.credential }

// Role returns the current role.
func (u *User) Role() Role { return u.role }

// Blocked reports whether the account is locked out.
func (u *User) Blocked() bool { return u.blocked }

// FailedLoginAttempts returns the consecutive failed-login counter.
func (u *User) FailedLoginAttempts() int { return u.failedLoginAttempts }

// IsAdministrator reports whether the account holds the administrator role.
func (u *User) IsAdministrator() bool { return u.role == RoleAdministrator }

// Rename updates the display name and records the old and new values.
func (u *User) Rename(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if utf8.RuneCountInString(fullName) < 2 {
		return invalidArgument("full_name", "must be at least 2 characters")
	}
	old := u.fullName
	u.fullName = fullName
	u.record(fmt.Sprintf("Full name changed from %q to %q", old, fullName))
	return nil
}

// ChangeRole assigns a new role and records the transition.
func (u *User) ChangeRole(role Role) error {
	if !role.Valid() {
		return invalidArgument("role", "unknown role")
	}
	old := u.role
	u.role = role
	u.record(fmt.Sprintf("Role changed from %s to %s", old.DisplayName(), role.DisplayName()))
	return nil
}

// SetBlocked transitions the account between active and blocked. Unblocking
// also clears the failed-login counter; the unblock entry covers both, no
// separate counter-reset entry is written on this path.
func (u *User) SetBlocked(blocked bool) {
	u.blocked = blocked
	if blocked {
		u.record("Account blocked")
		return
	}
	u.failedLoginAttempts = 0
	u.record("Account unblocked")
}

// ValidateCredential compares the candidate against the stored credential.
// Exact comparison, no side effects, no audit entry.
func (u *User) ValidateCredential(candidate string) bool {
	return u.credential == candidate
}

// SetCredential replaces the credential after format validation. Whether the
// new value differs from the old is the workflow's concern, not checked here.
func (u *User) SetCredential(credential string) error {
	if err := validateCredentialFormat(credential); err != nil {
		return err
	}
	u.credential = credential
	u.record("Credential updated")
	return nil
}

// IncrementFailedAttempts bumps the failed-login counter and records the
// attempt. Reaching the threshold blocks the account, which appends its own
// entry after the attempt entry.
func (u *User) IncrementFailedAttempts() {
	u.failedLoginAttempts++
	u.record(fmt.Sprintf("Failed login attempt #%d", u.failedLoginAttempts))

	if u.failedLoginAttempts >= MaxFailedLoginAttempts {
		u.SetBlocked(true)
	}
}

// ResetFailedAttempts clears the counter after a successful authentication.
// A no-op without an audit entry when the counter is already zero.
func (u *User) ResetFailedAttempts() {
	if u.failedLoginAttempts == 0 {
		return
	}
	u.failedLoginAttempts = 0
	u.record("Failed login attempt counter reset")
}

// RecordAction appends an audit entry for activity not owned by a specific
// mutator, e.g. a collaborator noting a profile view. Subject to the same
// bounded-history eviction.
func (u *User) RecordAction(description string) error {
	action, err := NewAction(description, u.id)
	if err != nil {
		return err
	}
	u.history.Append(action)
	return nil
}

// History returns a snapshot of the audit log, oldest first. The snapshot
// does not reflect later mutations.
func (u *User) History() []Action {
	return u.history.Snapshot()
}

// HistorySize returns the number of retained audit entries.
func (u *User) HistorySize() int {
	return u.history.Len()
}

// record appends an internally generated audit entry. Internal descriptions
// are never empty, so construction cannot fail.
func (u *User) record(description string) {
	action, err := NewAction(description, u.id)
	if err != nil {
		return
	}
	u.history.Append(action)
}

func validateCredentialFormat(credential string) error {
	if utf8.RuneCountInString(credential) < 4 {
		return invalidArgument("credential", "must be at least 4 characters")
	}
	return nil
}

func generateUserID() string {
	return userIDPrefix + strings.ToUpper(uuid.NewString()[:8])
}

func (u *User) String() string {
	return fmt.Sprintf("User{id=%s, username=%s, role=%s, blocked=%t, actions=%d}",
		u.id, u.username, u.role.DisplayName(), u.blocked, u.history.Len())
}
