package authorization

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleReadonly UserRole = "readonly"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// CanWrite reports whether the role may create or mutate resources.
func (r UserRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleReadonly
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleReadonly
}
