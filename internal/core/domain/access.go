package domain

// AccessLevel is the minimum privilege an operation requires.
type AccessLevel int

const (
	AccessAny AccessLevel = iota
	AccessEmployeeOrAdmin
	AccessAdminOnly
)

func (l AccessLevel) String() string {
	switch l {
	case AccessAny:
		return "any"
	case AccessEmployeeOrAdmin:
		return "employee_or_admin"
	case AccessAdminOnly:
		return "admin_only"
	default:
		return "unknown"
	}
}

// Authorize reports whether identity satisfies level. A nil identity never
// passes: authorization is only meaningful after the token was verified.
func Authorize(identity *Identity, level AccessLevel) bool {
	if identity == nil || !identity.Role.Valid() {
		return false
	}
	switch level {
	case AccessAny:
		return true
	case AccessEmployeeOrAdmin:
		return identity.Role == RoleEmployee || identity.Role == RoleAdmin
	case AccessAdminOnly:
		return identity.Role == RoleAdmin
	default:
		return false
	}
}
