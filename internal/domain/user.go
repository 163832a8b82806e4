package domain

import "time"

// Role enumerates account roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

// Capabilities describes what a role is permitted to do.
type Capabilities struct {
	ManageUsers    bool
	ManageTickets  bool
	ViewAllTickets bool
	ViewAllUsers   bool
}

var roleCapabilities = map[Role]Capabilities{
	RoleUser:  {},
	RoleStaff: {},
	RoleAdmin: {
		ManageTickets: true,
	},
	RoleSuperAdmin: {
		ManageUsers:    true,
		ManageTickets:  true,
		ViewAllTickets: true,
		ViewAllUsers:   true,
	},
}

// CapabilitiesFor returns the capability set for a role. Unknown roles get none.
func CapabilitiesFor(role Role) Capabilities {
	return roleCapabilities[role]
}

// ValidRole reports whether the role is one of the enumerated values.
func ValidRole(role Role) bool {
	switch role {
	case RoleUser, RoleStaff, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is the credential record for an account.
type User struct {
	ID                   string
	CompanyID            string
	Email                string
	PasswordHash         string
	Role                 Role
	IsTrial              bool
	IsActive             bool
	IsNotificationActive bool
	IsDeleted            bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// UserListing is a user row joined with its profile name for admin listings.
type UserListing struct {
	User
	Name string
}
