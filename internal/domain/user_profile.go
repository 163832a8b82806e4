package domain

import "time"

// UserProfile holds display and contact attributes, 1:1 with a User.
type UserProfile struct {
	ID          string
	UserID      string
	Name        string
	Address     *string
	State       *string
	Country     *string
	UserDetails map[string]any
	IsActive    bool
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
