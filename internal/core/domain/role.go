package domain

// Role enumerates the account roles known to the system.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleStandard      Role = "standard"
)

// Capabilities is the fixed permission set attached to a role.
type Capabilities struct {
	CreateUsers      bool
	DeleteUsers      bool
	UpdateOtherUsers bool
	ViewAllUsers     bool
	ViewAllHistory   bool
	UnblockUsers     bool
	ChangeRoles      bool
}

// roleCapabilities is the closed capability table. Adding a role variant
// without an entry here makes Valid() reject it, so the table stays exhaustive.
var roleCapabilities = map[Role]Capabilities{
	RoleAdministrator: {
		CreateUsers:      true,
		DeleteUsers:      true,
		UpdateOtherUsers: true,
		ViewAllUsers:     true,
		ViewAllHistory:   true,
		UnblockUsers:     true,
		ChangeRoles:      true,
	},
	RoleStandard: {},
}

var roleDisplayNames = map[Role]string{
	RoleAdministrator: "Administrator",
	RoleStandard:      "Standard",
}

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Capabilities returns the permission set for the role. Unknown roles get the
// zero set, which denies everything.
func (r Role) Capabilities() Capabilities {
	return roleCapabilities[r]
}

// DisplayName returns the human-facing role name.
func (r Role) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// CanUpdateUser reports whether an actor with this role may update the target
// account. Self-updates are always permitted.
func (r Role) CanUpdateUser(actorID, targetID string) bool {
	if actorID == targetID {
		return true
	}
	return r.Capabilities().UpdateOtherUsers
}

func (r Role) String() string {
	return r.DisplayName()
}
