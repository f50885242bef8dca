package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arklim/user-admin-console/internal/core/domain"
	"github.com/arklim/user-admin-console/internal/usecase"
)

// Menu is the interactive console front end. It renders outcomes and collects
// input; every permission and validation decision routes through the
// usecases.
type Menu struct {
	appName string
	auth    *usecase.AuthService
	users   *usecase.UserService
	history *usecase.HistoryService
	logger  *zap.Logger

	prompter *Prompter
	render   renderer
}

// NewMenu constructs the console menu.
func NewMenu(appName string, auth *usecase.AuthService, users *usecase.UserService, history *usecase.HistoryService, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{
		appName: appName,
		auth:    auth,
		users:   users,
		history: history,
		logger:  logger,
	}
}

// Run drives the menu loop until the operator exits or the context is
// cancelled. A panic in a single handler is logged and the loop continues;
// only explicit exit terminates the process.
func (m *Menu) Run(ctx context.Context) error {
	m.prompter = NewPrompter()
	defer m.prompter.Close()

	fmt.Println(m.render.title(m.appName))

	session := &Session{}
	for {
		if err := ctx.Err(); err != nil {
			m.auth.Logout(session.User())
			return err
		}

		var exit bool
		m.safely(func() {
			if session.Active() {
				exit = m.mainMenu(ctx, session)
			} else {
				exit = m.loginMenu(ctx, session)
			}
		})
		if exit {
			m.auth.Logout(session.User())
			fmt.Println(m.render.info("Goodbye."))
			return nil
		}
	}
}

// safely runs a menu handler, recovering from panics so one bad operation
// never kills the loop.
func (m *Menu) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("menu handler panicked", zap.Any("panic", r))
			fmt.Println(m.render.failure("unexpected error, returning to menu"))
		}
	}()
	fn()
}

func (m *Menu) loginMenu(ctx context.Context, session *Session) bool {
	fmt.Println(m.render.title("Sign in"))
	fmt.Println("  1. Log in")
	fmt.Println("  0. Exit")

	choice, err := m.prompter.Line("> ")
	if err != nil {
		return true
	}

	switch choice {
	case "1":
		m.handleLogin(ctx, session)
	case "0":
		return true
	default:
		fmt.Println(m.render.failure("unknown option"))
	}
	return false
}

func (m *Menu) mainMenu(ctx context.Context, session *Session) bool {
	user := session.User()
	caps := user.Role().Capabilities()

	fmt.Println(m.render.title(fmt.Sprintf("%s | %s (%s)", m.appName, user.FullName(), user.Role().DisplayName())))
	fmt.Println("  1. List users")
	if caps.CreateUsers {
		fmt.Println("  2. Create user")
	}
	fmt.Println("  3. Update user")
	if caps.DeleteUsers {
		fmt.Println("  4. Delete user")
	}
	if caps.UnblockUsers {
		fmt.Println("  5. Unblock user")
	}
	if caps.ChangeRoles {
		fmt.Println("  6. Change user role")
	}
	fmt.Println("  7. My history")
	if caps.ViewAllHistory {
		fmt.Println("  8. All users history")
	}
	fmt.Println("  9. Search my history")
	fmt.Println(" 10. Export my history")
	fmt.Println(" 11. Account status")
	fmt.Println(" 12. Change my credential")
	fmt.Println("  0. Log out")

	choice, err := m.prompter.Line("> ")
	if err != nil {
		return true
	}

	switch choice {
	case "1":
		m.handleListUsers(ctx, session)
	case "2":
		m.handleCreateUser(ctx, session)
	case "3":
		m.handleUpdateUser(ctx, session)
	case "4":
		m.handleDeleteUser(ctx, session)
	case "5":
		m.handleUnblockUser(ctx, session)
	case "6":
		m.handleChangeRole(ctx, session)
	case "7":
		fmt.Println(m.render.historyList(m.history.UserHistory(session.User())))
	case "8":
		m.handleAllHistory(ctx, session)
	case "9":
		m.handleSearchHistory(session)
	case "10":
		m.handleExportHistory(session)
	case "11":
		m.handleAccountStatus(ctx)
	case "12":
		m.handleChangeCredential(ctx, session)
	case "0":
		m.auth.Logout(session.User())
		session.end()
		fmt.Println(m.render.info("Logged out."))
	default:
		fmt.Println(m.render.failure("unknown option"))
	}
	return false
}

func (m *Menu) handleLogin(ctx context.Context, session *Session) {
	username, err := m.prompter.Line("Username: ")
	if err != nil {
		return
	}
	credential, err := m.prompter.Password("Credential: ")
	if err != nil {
		return
	}

	user, err := m.auth.Login(ctx, username, credential)
	if err != nil {
		if failure, ok := usecase.AsAuthFailure(err); ok {
			fmt.Println(m.render.failure(failure.Error()))
			return
		}
		m.logger.Error("login failed unexpectedly", zap.Error(err))
		fmt.Println(m.render.failure("login failed"))
		return
	}

	session.start(user)
	fmt.Println(m.render.success(fmt.Sprintf("Welcome, %s!", user.FullName())))
}

func (m *Menu) handleListUsers(ctx context.Context, session *Session) {
	users, err := m.users.ListUsers(ctx, session.User())
	if err != nil {
		fmt.Println(m.render.failure(err.Error()))
		return
	}
	fmt.Println(m.render.userTable(users))
}

func (m *Menu) handleCreateUser(ctx context.Context, session *Session) {
	fullName, err := m.prompter.Line("Full name: ")
	if err != nil {
		return
	}
	username, err := m.prompter.Line("Username: ")
	if err != nil {
		return
	}
	credential, err := m.prompter.Password("Credential: ")
	if err != nil {
		return
	}
	role := domain.RoleStandard
	if m.prompter.Confirm("Administrator role?") {
		role = domain.RoleAdministrator
	}

	user, err := m.users.CreateUser(ctx, usecase.CreateUserInput{
		FullName:   fullName,
		Username:   username,
		Credential: credential,
		Role:       role,
	}, session.User())
	if err != nil {
		fmt.Println(m.render.failure(err.Error()))
		return
	}
	fmt.Println(m.render.success(fmt.Sprintf("User %q created with id %s", user.Username(), user.ID())))
}

func (m *Menu) handleUpdateUser(ctx context.Context, session *Session) {
	targetID, err := m.prompter.Line("Target user id (empty for yourself): ")
	if err != nil {
		return
	}
	if targetID == "" {
		targetID = session.User().ID()
	}

	fullName, err := m.prompter.Line("New full name (empty to keep): ")
	if err != nil {
		return
	}

	var current, next string
	if m.prompter.Confirm("Change credential?") {
		if current, err = m.prompter.Password("Current credential: "); err != nil {
			return
		}
		if next, err = m.prompter.Password("New credential: "); err != nil {
			return
		}
	}

	err = m.users.UpdateUser(ctx, targetID, usecase.UpdateUserInput{
		FullName:          fullName,
		NewCredential:     next,
		CurrentCredential: current,
	}, session.User())
	if err != nil {
		fmt.Println(m.render.failure(err.Error()))
		return
	}
	fmt.Println(m.render.success("User updated"))
}

func (m *Menu) handleDeleteUser(ctx context.Context, session *Session) {
	targetID, err := m.prompter.Line("Target user id: ")
	if err != nil {
		return
	}
	if !m.prompter.Confirm(fmt.Sprintf("Really delete %s?", targetID)) {
		return
	}

	if err := m.users.DeleteUser(ctx, targetID, session.User()); err != nil {
		fmt.Println(m.render.failure(err.Error()))
		return
	}
	fmt.Println(m.render.success("User deleted"))
}

func (m *Menu) handleUnblockUser(ctx context.Context, session *Session) {
	targetID, err := m.prompter.Line("Target user id: ")
	if err != nil {
		return
	}
	if m.auth.UnblockUser(ctx, targetID, session.User()) {
		fmt.Println(m.render.success("User is unblocked"))
		return
	}
	fmt.Println(m.render.failure("could not unblock user"))
}

func (m *Menu) handleChangeRole(ctx context.Context, session *Session) {
	targetID, err := m.prompter.Line("Target user id: ")
	if err != nil {
		return
	}
	role := domain.RoleStandard
	if m.prompter.Confirm("Administrator role?") {
		role = domain.RoleAdministrator
	}

	if m.auth.ChangeUserRole(ctx, targetID, role, session.User()) {
		fmt.Println(m.render.success(fmt.Sprintf("Role set to %s", role.DisplayName())))
		return
	}
	fmt.Println(m.render.failure("could not change role"))
}

func (m *Menu) handleAllHistory(ctx context.Context, session *Session) {
	summaries, stats, err := m.history.AllHistory(ctx, session.User())
	if err != nil {
		fmt.Println(m.render.failure(err.Error()))
		return
	}
	for _, summary := range summaries {
		fmt.Print(m.render.historySummary(summary))
	}
	fmt.Println(m.render.stats(stats))
}

func (m *Menu) handleSearchHistory(session *Session) {
	keyword, err := m.prompter.Line("Keyword: ")
	if err != nil {
		return
	}
	matches := m.history.Search(session.User(), keyword)
	if len(matches) == 0 {
		fmt.Println(m.render.info(fmt.Sprintf("No actions match %q.", keyword)))
		return
	}
	fmt.Println(m.render.historyList(matches))
}

func (m *Menu) handleExportHistory(session *Session) {
	export, err := m.history.Export(session.User())
	if err != nil {
		fmt.Println(m.render.failure(err.Error()))
		return
	}
	fmt.Println(export)
}

func (m *Menu) handleAccountStatus(ctx context.Context) {
	username, err := m.prompter.Line("Username: ")
	if err != nil {
		return
	}
	status, err := m.users.AccountStatus(ctx, username)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			fmt.Println(m.render.failure("user not found"))
			return
		}
		fmt.Println(m.render.failure(err.Error()))
		return
	}
	fmt.Print(m.render.accountStatus(status))
}

func (m *Menu) handleChangeCredential(ctx context.Context, session *Session) {
	current, err := m.prompter.Password("Current credential: ")
	if err != nil {
		return
	}
	next, err := m.prompter.Password("New credential: ")
	if err != nil {
		return
	}

	if m.auth.ChangeCredential(ctx, session.User(), current, next) {
		fmt.Println(m.render.success("Credential changed"))
		return
	}
	fmt.Println(m.render.failure("credential not changed"))
}
