package domain

// Role is an access level carried in operator tokens.
type Role string

const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

var roleLevels = map[Role]int{
	RoleOperator: 1,
	RoleAdmin:    2,
}

// HasPermission reports whether the role grants at least minRole's access.
func (r Role) HasPermission(minRole Role) bool {
	return roleLevels[r] >= roleLevels[minRole]
}

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}
