// Package policy is the pure role-based visibility and mutation policy.
// The sync coordinator consults it before building every remote read query
// and before permitting a cross-owner write.
package policy

// Role is a user's role within the fleet.
type Role string

const (
	RoleDriver  Role = "driver"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a role claim to a Role. Unknown values degrade to
// RoleDriver, the most restrictive role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleManager:
		return RoleManager
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleDriver
	}
}

// CanViewAll reports whether the role may read records of every owner.
// Drivers see only their own records.
func CanViewAll(role Role) bool {
	return role == RoleManager || role == RoleAdmin
}

// CanMutateExisting reports whether the role may edit or delete records
// that have already been persisted. Drivers and managers may only create.
func CanMutateExisting(role Role) bool {
	return role == RoleAdmin
}

// CanCreateFor reports whether the role may create a record attributed to
// ownerID. Anyone may create records for themselves; only an admin may
// attribute a record to someone else.
func CanCreateFor(role Role, ownerID, currentUserID string) bool {
	if ownerID == "" || ownerID == currentUserID {
		return true
	}
	return role == RoleAdmin
}
