package nav

// Role is the authorization role of a signed-in user.
type Role string

const (
	// RoleUser is the regular customer role.
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// AuthState describes the signed-in user. A nil *AuthState means the
// visitor is not authenticated.
type AuthState struct {
	UserName string
	Role     Role
}
