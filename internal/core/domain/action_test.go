package domain

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestNewActionTrimsFields(t *testing.T) {
	action, err := NewAction("  did something  ", "  USR_1  ")
	if err != nil {
		t.Fatalf("NewAction returned error: %v", err)
	}
	if action.Description() != "did something" {
		t.Fatalf("expected trimmed description, got %q", action.Description())
	}
	if action.ActorID() != "USR_1" {
		t.Fatalf("expected trimmed actor id, got %q", action.ActorID())
	}
	if action.Timestamp().IsZero() {
		t.Fatalf("expected timestamp to be assigned")
	}
}

func TestNewActionRejectsEmptyFields(t *testing.T) {
	cases := []struct {
		name        string
		description string
		actorID     string
	}{
		{"empty description", "", "USR_1"},
		{"whitespace description", "   ", "USR_1"},
		{"empty actor", "did something", ""},
		{"whitespace actor", "did something", "  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAction(tc.description, tc.actorID)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestActionFormattedTimestamp(t *testing.T) {
	action, err := NewAction("did something", "USR_1")
	if err != nil {
		t.Fatalf("NewAction returned error: %v", err)
	}

	formatted := action.FormattedTimestamp()
	pattern := regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`)
	if !pattern.MatchString(formatted) {
		t.Fatalf("expected DD/MM/YYYY HH:MM:SS, got %q", formatted)
	}
	if formatted != action.Timestamp().Format("02/01/2006 15:04:05") {
		t.Fatalf("formatted timestamp does not match the stored instant")
	}
}

func TestActionTimestampsNonDecreasing(t *testing.T) {
	first, err := NewAction("first", "USR_1")
	if err != nil {
		t.Fatalf("NewAction returned error: %v", err)
	}
	time.Sleep(time.Millisecond)
	second, err := NewAction("second", "USR_1")
	if err != nil {
		t.Fatalf("NewAction returned error: %v", err)
	}
	if second.Timestamp().Before(first.Timestamp()) {
		t.Fatalf("timestamps must be non-decreasing by construction order")
	}
}
