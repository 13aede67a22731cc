package domain

// Role is a fixed identity category determining permitted operations.
type Role string

const (
	RoleClient      Role = "client"
	RoleCashier     Role = "cashier"
	RoleHeadCashier Role = "head-cashier"
	RoleAdmin       Role = "admin"
	RoleCreator     Role = "creator"
	RoleNikitovsky  Role = "nikitovsky"
	RoleSuperAdmin  Role = "super-admin"
)

// Capability is one atomic permission checked before any mutating operation.
type Capability string

const (
	CapCreateDocument        Capability = "create-document"
	CapViewArchive           Capability = "view-archive"
	CapManageUsers           Capability = "manage-users"
	CapDeleteDocument        Capability = "delete-document"
	CapManagePrivilegedUsers Capability = "manage-privileged-users"
)

// capabilityMatrix is the explicit per-role permission table. Roles are not
// hierarchical: super-admin happens to hold a superset of nikitovsky's
// capabilities, but neither is derived from the other.
var capabilityMatrix = map[Role]map[Capability]struct{}{
	RoleClient:  {},
	RoleCashier: caps(CapCreateDocument),
	RoleHeadCashier: caps(
		CapCreateDocument, CapDeleteDocument),
	RoleAdmin: caps(
		CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument),
	RoleCreator: caps(
		CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument),
	RoleNikitovsky: caps(
		CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument),
	RoleSuperAdmin: caps(
		CapCreateDocument, CapViewArchive, CapManageUsers, CapDeleteDocument,
		CapManagePrivilegedUsers),
}

func caps(cs ...Capability) map[Capability]struct{} {
	m := make(map[Capability]struct{}, len(cs))
	for _, c := range cs {
		m[c] = struct{}{}
	}
	return m
}

// Can reports whether the role holds the given capability.
func (r Role) Can(c Capability) bool {
	set, ok := capabilityMatrix[r]
	if !ok {
		return false
	}
	_, ok = set[c]
	return ok
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := capabilityMatrix[r]
	return ok
}

// Privileged reports whether the role belongs to one of the two special
// identities that authenticate through the dual-secret path.
func (r Role) Privileged() bool {
	return r == RoleNikitovsky || r == RoleSuperAdmin
}

// Roles lists every known role in a stable order.
func Roles() []Role {
	return []Role{
		RoleClient, RoleCashier, RoleHeadCashier, RoleAdmin,
		RoleCreator, RoleNikitovsky, RoleSuperAdmin,
	}
}
