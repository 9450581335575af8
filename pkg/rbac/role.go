package rbac

// Role is a user's access level. Users without a stored role are Guests.
type Role uint8

const (
	Guest Role = iota
	Admin
)

// ParseRole maps a stored role string onto the enum. Anything other than
// "admin" is a Guest.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return Admin
	default:
		return Guest
	}
}

// String returns the stored form of r. Guest has no stored form.
func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	default:
		return ""
	}
}
