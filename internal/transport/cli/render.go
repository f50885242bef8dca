package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arklim/user-admin-console/internal/core/domain"
	"github.com/arklim/user-admin-console/internal/usecase"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	blockedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type renderer struct{}

func (renderer) title(text string) string {
	return "\n" + titleStyle.Render(text) + "\n"
}

func (renderer) success(text string) string {
	return successStyle.Render("✓ " + text)
}

func (renderer) failure(text string) string {
	return errorStyle.Render("✗ " + text)
}

func (renderer) info(text string) string {
	return infoStyle.Render(text)
}

func (renderer) statusBadge(blocked bool) string {
	if blocked {
		return blockedStyle.Render("BLOCKED")
	}
	return activeStyle.Render("ACTIVE")
}

func (r renderer) userTable(users []*domain.User) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-14s %-16s %-24s %-14s %-8s %s",
		"ID", "USERNAME", "FULL NAME", "ROLE", "STATUS", "ACTIONS")))
	b.WriteString("\n")
	for _, user := range users {
		b.WriteString(fmt.Sprintf("%-14s %-16s %-24s %-14s %-8s %d\n",
			user.ID(),
			user.Username(),
			user.FullName(),
			user.Role().DisplayName(),
			r.statusBadge(user.Blocked()),
			user.HistorySize(),
		))
	}
	return b.String()
}

func (renderer) historyList(actions []domain.Action) string {
	if len(actions) == 0 {
		return infoStyle.Render("No actions recorded.")
	}

	var b strings.Builder
	// Newest first for reading; the snapshot itself is oldest first.
	for i := len(actions) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%3d. %s\n", len(actions)-i, actions[i].String())
	}
	return b.String()
}

func (r renderer) historySummary(summary usecase.UserHistorySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) | %s | %s | %d actions\n",
		summary.FullName,
		summary.Username,
		summary.Role.DisplayName(),
		r.statusBadge(summary.Blocked),
		len(summary.Actions),
	)
	if n := len(summary.Actions); n > 0 {
		fmt.Fprintf(&b, "     last: %s\n", summary.Actions[n-1].String())
	}
	return b.String()
}

func (r renderer) stats(stats usecase.HistoryStats) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Directory statistics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Total users:          %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "  Active users:         %d\n", stats.TotalUsers-stats.BlockedUsers)
	fmt.Fprintf(&b, "  Blocked users:        %d\n", stats.BlockedUsers)
	fmt.Fprintf(&b, "  Administrators:       %d\n", stats.Administrators)
	fmt.Fprintf(&b, "  Standard users:       %d\n", stats.StandardUsers)
	fmt.Fprintf(&b, "  Recorded actions:     %d\n", stats.TotalActions)
	fmt.Fprintf(&b, "  Avg actions per user: %.2f\n", stats.AvgActionsPerUser)
	return b.String()
}

func (r renderer) accountStatus(status usecase.AccountStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Account %q\n", status.Username)
	fmt.Fprintf(&b, "  State:               %s\n", r.statusBadge(status.Blocked))
	fmt.Fprintf(&b, "  Failed attempts:     %d\n", status.FailedAttempts)
	fmt.Fprintf(&b, "  Role:                %s\n", status.Role.DisplayName())
	fmt.Fprintf(&b, "  Credential strength: %s\n", status.CredentialStrength)
	return b.String()
}
