package domain

// ActionLog is a bounded FIFO log of audit actions. Appending beyond capacity
// silently evicts the oldest entry; that is the contract, not an error.
type ActionLog struct {
	capacity int
	entries  []Action
}

// NewActionLog constructs a log holding at most capacity entries.
func NewActionLog(capacity int) *ActionLog {
	if capacity < 1 {
		capacity = 1
	}
	return &ActionLog{capacity: capacity, entries: make([]Action, 0, capacity)}
}

// Append adds an action as the newest entry, evicting the oldest if full.
func (l *ActionLog) Append(action Action) {
	if len(l.entries) >= l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries[len(l.entries)-1] = action
		return
	}
	l.entries = append(l.entries, action)
}

// Snapshot returns a copy of the log, oldest first. Later appends do not
// affect the returned slice.
func (l *ActionLog) Snapshot() []Action {
	out := make([]Action, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries currently held.
func (l *ActionLog) Len() int {
	return len(l.entries)
}

// Capacity returns the maximum number of entries the log retains.
func (l *ActionLog) Capacity() int {
	return l.capacity
}
