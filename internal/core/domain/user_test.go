package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	user, err := NewUserWithID("USR_TEST", "Test User", "testuser", "pass1234", RoleStandard)
	if err != nil {
		t.Fatalf("NewUserWithID returned error: %v", err)
	}
	return user
}

func TestNewUserRecordsCreation(t *testing.T) {
	user, err := NewUser("Jane Doe", "jane_doe", "s3cret", RoleAdministrator)
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}

	if user.Blocked() {
		t.Fatalf("new account must start active")
	}
	if user.FailedLoginAttempts() != 0 {
		t.Fatalf("new account must start with zero failed attempts")
	}
	history := user.History()
	if len(history) != 1 {
		t.Fatalf("expected exactly the creation entry, got %d entries", len(history))
	}
	if history[0].Description() != "Account created" {
		t.Fatalf("expected creation entry, got %q", history[0].Description())
	}
	if history[0].ActorID() != user.ID() {
		t.Fatalf("creation entry must carry the account's own id")
	}
}

func TestNewUserGeneratesPrefixedID(t *testing.T) {
	user, err := NewUser("Jane Doe", "jane_doe", "s3cret", RoleStandard)
	if err != nil {
		t.Fatalf("NewUser returned error: %v", err)
	}

	pattern := regexp.MustCompile(`^USR_[0-9A-F]{8}$`)
	if !pattern.MatchString(user.ID()) {
		t.Fatalf("expected USR_ + 8 uppercase hex characters, got %q", user.ID())
	}
}

func TestNewUserValidation(t *testing.T) {
	cases := []struct {
		name       string
		id         string
		fullName   string
		username   string
		credential string
		role       Role
		field      string
	}{
		{"empty id", "  ", "Jane Doe", "jane", "s3cret", RoleStandard, "id"},
		{"short full name", "USR_1", "J", "jane", "s3cret", RoleStandard, "full_name"},
		{"whitespace full name", "USR_1", "   ", "jane", "s3cret", RoleStandard, "full_name"},
		{"short username", "USR_1", "Jane Doe", "jd", "s3cret", RoleStandard, "username"},
		{"bad username characters", "USR_1", "Jane Doe", "jane doe!", "s3cret", RoleStandard, "username"},
		{"short credential", "USR_1", "Jane Doe", "jane", "abc", RoleStandard, "credential"},
		{"unknown role", "USR_1", "Jane Doe", "jane", "s3cret", Role("root"), "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := NewUserWithID(tc.id, tc.fullName, tc.username, tc.credential, tc.role)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if user != nil {
				t.Fatalf("failed construction must not yield a partial account")
			}
			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validation.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, validation.Field)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument sentinel, got %v", err)
			}
		})
	}
}

func TestUserRename(t *testing.T) {
	user := newTestUser(t)

	if err := user.Rename("  New Name  "); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if user.FullName() != "New Name" {
		t.Fatalf("expected trimmed new name, got %q", user.FullName())
	}

	history := user.History()
	last := history[len(history)-1]
	if !strings.Contains(last.Description(), `"Test User"`) || !strings.Contains(last.Description(), `"New Name"`) {
		t.Fatalf("rename entry must mention old and new name, got %q", last.Description())
	}
}

func TestUserRenameInvalidLeavesStateUntouched(t *testing.T) {
	user := newTestUser(t)
	before := user.HistorySize()

	if err := user.Rename("x"); err == nil {
		t.Fatalf("expected validation error")
	}
	if user.FullName() != "Test User" {
		t.Fatalf("failed rename must not change the name")
	}
	if user.HistorySize() != before {
		t.Fatalf("failed rename must not append an audit entry")
	}
}

func TestUserChangeRole(t *testing.T) {
	user := newTestUser(t)

	if err := user.ChangeRole(RoleAdministrator); err != nil {
		t.Fatalf("ChangeRole returned error: %v", err)
	}
	if !user.IsAdministrator() {
		t.Fatalf("expected administrator role")
	}

	history := user.History()
	last := history[len(history)-1]
	if !strings.Contains(last.Description(), "Standard") || !strings.Contains(last.Description(), "Administrator") {
		t.Fatalf("role change entry must mention both roles, got %q", last.Description())
	}

	if err := user.ChangeRole(Role("root")); err == nil {
		t.Fatalf("expected unknown role to be rejected")
	}
}

func TestUserCredentialLifecycle(t *testing.T) {
	user := newTestUser(t)

	if !user.ValidateCredential("pass1234") {
		t.Fatalf("expected stored credential to validate")
	}
	if user.ValidateCredential("PASS1234") {
		t.Fatalf("credential comparison must be exact")
	}

	before := user.HistorySize()
	if user.ValidateCredential("wrong") {
		t.Fatalf("wrong credential must not validate")
	}
	if user.HistorySize() != before {
		t.Fatalf("ValidateCredential must not write audit entries")
	}

	if err := user.SetCredential("abc"); err == nil {
		t.Fatalf("expected short credential to be rejected")
	}
	if !user.ValidateCredential("pass1234") {
		t.Fatalf("failed SetCredential must not change the credential")
	}

	if err := user.SetCredential("newpass"); err != nil {
		t.Fatalf("SetCredential returned error: %v", err)
	}
	if !user.ValidateCredential("newpass") {
		t.Fatalf("expected new credential to validate")
	}
	history := user.History()
	if history[len(history)-1].Description() != "Credential updated" {
		t.Fatalf("expected credential update entry, got %q", history[len(history)-1].Description())
	}
}

func TestUserLockoutAfterThreeFailedAttempts(t *testing.T) {
	user := newTestUser(t)

	user.IncrementFailedAttempts()
	user.IncrementFailedAttempts()
	if user.Blocked() {
		t.Fatalf("two failed attempts must not block the account")
	}

	user.IncrementFailedAttempts()
	if !user.Blocked() {
		t.Fatalf("third failed attempt must block the account")
	}
	if user.FailedLoginAttempts() != MaxFailedLoginAttempts {
		t.Fatalf("expected counter %d, got %d", MaxFailedLoginAttempts, user.FailedLoginAttempts())
	}

	// Creation, three attempt entries, then the block entry, in that order.
	history := user.History()
	if len(history) != 5 {
		t.Fatalf("expected 5 audit entries, got %d", len(history))
	}
	if history[3].Description() != "Failed login attempt #3" {
		t.Fatalf("expected attempt entry before the block entry, got %q", history[3].Description())
	}
	if history[4].Description() != "Account blocked" {
		t.Fatalf("expected block entry last, got %q", history[4].Description())
	}
}

func TestUserResetFailedAttempts(t *testing.T) {
	user := newTestUser(t)

	before := user.HistorySize()
	user.ResetFailedAttempts()
	if user.HistorySize() != before {
		t.Fatalf("reset with zero counter must not append an audit entry")
	}

	user.IncrementFailedAttempts()
	user.ResetFailedAttempts()
	if user.FailedLoginAttempts() != 0 {
		t.Fatalf("expected counter reset to 0")
	}
	history := user.History()
	if history[len(history)-1].Description() != "Failed login attempt counter reset" {
		t.Fatalf("expected reset entry, got %q", history[len(history)-1].Description())
	}
}

func TestUserUnblockResetsCounterWithSingleEntry(t *testing.T) {
	user := newTestUser(t)
	user.IncrementFailedAttempts()
	user.IncrementFailedAttempts()
	user.IncrementFailedAttempts()
	if !user.Blocked() {
		t.Fatalf("expected blocked account")
	}

	before := user.HistorySize()
	user.SetBlocked(false)

	if user.Blocked() {
		t.Fatalf("expected unblocked account")
	}
	if user.FailedLoginAttempts() != 0 {
		t.Fatalf("unblocking must reset the failed attempt counter")
	}
	if user.HistorySize() != before+1 {
		t.Fatalf("unblock must append exactly one entry, got %d new", user.HistorySize()-before)
	}
	history := user.History()
	if history[len(history)-1].Description() != "Account unblocked" {
		t.Fatalf("expected unblock entry, got %q", history[len(history)-1].Description())
	}
}

func TestUserHistoryFIFOEviction(t *testing.T) {
	user := newTestUser(t)

	for i := 1; i <= 150; i++ {
		if err := user.RecordAction(fmt.Sprintf("activity %d", i)); err != nil {
			t.Fatalf("RecordAction returned error: %v", err)
		}
	}

	history := user.History()
	if len(history) != HistoryCapacity {
		t.Fatalf("expected history bounded at %d, got %d", HistoryCapacity, len(history))
	}
	// 151 entries total (creation + 150); the oldest 51 are gone, so the
	// oldest survivor is the 51st recorded activity.
	if history[0].Description() != "activity 51" {
		t.Fatalf("expected oldest survivor to be activity 51, got %q", history[0].Description())
	}
	if history[HistoryCapacity-1].Description() != "activity 150" {
		t.Fatalf("expected newest entry to be activity 150, got %q", history[HistoryCapacity-1].Description())
	}
}

func TestUserRecordActionValidation(t *testing.T) {
	user := newTestUser(t)
	if err := user.RecordAction("   "); err == nil {
		t.Fatalf("expected empty description to be rejected")
	}
}

func TestUserImmutableIdentity(t *testing.T) {
	user := newTestUser(t)
	if user.ID() != "USR_TEST" {
		t.Fatalf("unexpected id %q", user.ID())
	}
	if user.Username() != "testuser" {
		t.Fatalf("unexpected username %q", user.Username())
	}
}
