package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/user-admin-console/internal/core/domain"
	"github.com/arklim/user-admin-console/internal/core/port"
)

// UserHistorySummary describes one account's audit trail for the admin-wide
// history view.
type UserHistorySummary struct {
	UserID   string
	Username string
	FullName string
	Role     domain.Role
	Blocked  bool
	Actions  []domain.Action
}

// HistoryStats aggregates audit figures across the directory.
type HistoryStats struct {
	TotalUsers        int
	BlockedUsers      int
	Administrators    int
	StandardUsers     int
	TotalActions      int
	AvgActionsPerUser float64
}

// HistoryService exposes audit-trail queries: per-user history, the
// admin-wide view, keyword search and text export.
type HistoryService struct {
	directory port.Directory
	logger    *zap.Logger
}

// NewHistoryService constructs HistoryService.
func NewHistoryService(directory port.Directory, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{directory: directory, logger: logger}
}

// Record appends an audit entry describing activity not owned by a specific
// account mutator.
func (s *HistoryService) Record(user *domain.User, description string) error {
	if user == nil {
		return ErrUserNotFound
	}
	return user.RecordAction(description)
}

// UserHistory returns a snapshot of the account's audit trail, oldest first.
func (s *HistoryService) UserHistory(user *domain.User) []domain.Action {
	if user == nil {
		return nil
	}
	return user.History()
}

// AllHistory returns per-account summaries and aggregate statistics for the
// whole directory. Requires the view-all-history capability; the consultation
// itself is recorded on the actor.
func (s *HistoryService) AllHistory(ctx context.Context, actor *domain.User) ([]UserHistorySummary, HistoryStats, error) {
	if actor == nil || !actor.Role().Capabilities().ViewAllHistory {
		return nil, HistoryStats{}, ErrPermissionDenied
	}

	users, err := s.directory.List(ctx)
	if err != nil {
		return nil, HistoryStats{}, fmt.Errorf("list users: %w", err)
	}

	_ = actor.RecordAction("Consulted the audit history of all users")

	summaries := make([]UserHistorySummary, 0, len(users))
	stats := HistoryStats{TotalUsers: len(users)}
	for _, user := range users {
		actions := user.History()
		summaries = append(summaries, UserHistorySummary{
			UserID:   user.ID(),
			Username: user.Username(),
			FullName: user.FullName(),
			Role:     user.Role(),
			Blocked:  user.Blocked(),
			Actions:  actions,
		})

		if user.Blocked() {
			stats.BlockedUsers++
		}
		switch user.Role() {
		case domain.RoleAdministrator:
			stats.Administrators++
		case domain.RoleStandard:
			stats.StandardUsers++
		}
		stats.TotalActions += len(actions)
	}
	if stats.TotalUsers > 0 {
		stats.AvgActionsPerUser = float64(stats.TotalActions) / float64(stats.TotalUsers)
	}

	return summaries, stats, nil
}

// Search returns the account's actions whose description contains the
// keyword, case-insensitively. Oldest first.
func (s *HistoryService) Search(user *domain.User, keyword string) []domain.Action {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if user == nil || keyword == "" {
		return nil
	}

	var matches []domain.Action
	for _, action := range user.History() {
		if strings.Contains(strings.ToLower(action.Description()), keyword) {
			matches = append(matches, action)
		}
	}
	return matches
}

// Export renders the account's audit trail as plain text and records the
// export on the account itself.
func (s *HistoryService) Export(user *domain.User) (string, error) {
	if user == nil {
		return "", ErrUserNotFound
	}

	_ = user.RecordAction("Exported own audit history")
	history := user.History()

	var b strings.Builder
	b.WriteString("AUDIT HISTORY EXPORT\n")
	b.WriteString("=====================================\n")
	fmt.Fprintf(&b, "User: %s\n", user.FullName())
	fmt.Fprintf(&b, "Username: %s\n", user.Username())
	fmt.Fprintf(&b, "ID: %s\n", user.ID())
	fmt.Fprintf(&b, "Role: %s\n", user.Role().DisplayName())
	fmt.Fprintf(&b, "Exported at: %s\n", time.Now().Format("02/01/2006 15:04:05"))
	fmt.Fprintf(&b, "Total actions: %d\n", len(history))
	b.WriteString("=====================================\n\n")

	for i, action := range history {
		fmt.Fprintf(&b, "%d. %s\n", i+1, action.String())
	}
	if len(history) == 0 {
		b.WriteString("No actions recorded.\n")
	}

	b.WriteString("\n=====================================\n")
	b.WriteString("End of export\n")
	return b.String(), nil
}
