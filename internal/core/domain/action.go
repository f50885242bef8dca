package domain

import (
	"fmt"
	"strings"
	"time"
)

// actionTimestampLayout renders timestamps as DD/MM/YYYY HH:MM:SS.
const actionTimestampLayout = "02/01/2006 15:04:05"

// Action is an immutable audit record describing something an account did or
// had done to it. The timestamp is assigned at construction and never changes.
type Action struct {
	description string
	actorID     string
	timestamp   time.Time
}

// NewAction constructs an audit record. Description and actor id are trimmed
// and must be non-empty.
func NewAction(description, actorID string) (Action, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Action{}, invalidArgument("description", "must not be empty")
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return Action{}, invalidArgument("actor_id", "must not be empty")
	}

	return Action{
		description: description,
		actorID:     actorID,
		timestamp:   time.Now(),
	}, nil
}

// Description returns what happened.
func (a Action) Description() string {
	return a.description
}

// ActorID returns the id of the account the action belongs to.
func (a Action) ActorID() string {
	return a.actorID
}

// Timestamp returns when the action was recorded.
func (a Action) Timestamp() time.Time {
	return a.timestamp
}

// FormattedTimestamp returns the timestamp in local time as DD/MM/YYYY HH:MM:SS.
func (a Action) FormattedTimestamp() string {
	return a.timestamp.Format(actionTimestampLayout)
}

func (a Action) String() string {
	return fmt.Sprintf("[%s] %s (actor: %s)", a.FormattedTimestamp(), a.description, a.actorID)
}
