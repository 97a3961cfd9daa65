package booking

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEmployee   Role = "employee"
	RoleUser       Role = "user"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleEmployee, RoleUser:
		return true
	}
	return false
}

// IsSalonScoped reports whether the role carries a salon binding that
// must constrain every query it makes.
func (r Role) IsSalonScoped() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// ===============================
// Principal
// ===============================

// Principal is a resolved identity. The role is assigned by the table
// the record was found in, never taken from the token alone.
type Principal struct {
	ID      uint
	Role    Role
	Name    string
	SalonID *uint
}

// Salon returns the bound salon id for salon-scoped principals.
func (p *Principal) Salon() (uint, bool) {
	if p.SalonID == nil {
		return 0, false
	}
	return *p.SalonID, true
}
