package events

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arklim/user-admin-console/internal/core/domain"
)

func TestLogPublisherEmitsStructuredEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewLogPublisher(zap.New(core))

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	err := publisher.PublishUserBlocked(context.Background(), domain.UserBlockedEvent{
		UserID:         "user1",
		Username:       "user1",
		FailedAttempts: 3,
		BlockedAt:      at,
	})
	if err != nil {
		t.Fatalf("PublishUserBlocked returned error: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event_type"] != "uac.user.blocked" {
		t.Fatalf("event_type = %v", fields["event_type"])
	}
	if fields["user_id"] != "user1" {
		t.Fatalf("user_id = %v", fields["user_id"])
	}
	if got, ok := fields["timestamp"].(time.Time); !ok || !got.Equal(at) {
		t.Fatalf("timestamp = %v", fields["timestamp"])
	}
}

func TestLogPublisherDefaultsZeroTimestamp(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewLogPublisher(zap.New(core))

	before := time.Now()
	if err := publisher.PublishLoginSucceeded(context.Background(), domain.LoginSucceededEvent{
		UserID:   "admin",
		Username: "admin",
	}); err != nil {
		t.Fatalf("PublishLoginSucceeded returned error: %v", err)
	}

	fields := logs.All()[0].ContextMap()
	got, ok := fields["timestamp"].(time.Time)
	if !ok || got.Before(before) {
		t.Fatalf("zero event time must default to now, got %v", fields["timestamp"])
	}
}

func TestLogPublisherNilLogger(t *testing.T) {
	publisher := NewLogPublisher(nil)
	if err := publisher.PublishLoginFailed(context.Background(), domain.LoginFailedEvent{
		Username: "ghost",
		Reason:   "not_found",
	}); err != nil {
		t.Fatalf("nil-logger publisher returned error: %v", err)
	}
}
