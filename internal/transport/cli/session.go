package cli

import "github.com/arklim/user-admin-console/internal/core/domain"

// Session carries the authenticated account through the menu loop. It is an
// explicit value handed to each handler; there is no process-wide current
// user.
type Session struct {
	user *domain.User
}

// Active reports whether someone is logged in.
func (s *Session) Active() bool {
	return s.user != nil
}

// User returns the authenticated account, nil when logged out.
func (s *Session) User() *domain.User {
	return s.user
}

func (s *Session) start(user *domain.User) {
	s.user = user
}

func (s *Session) end() {
	s.user = nil
}
