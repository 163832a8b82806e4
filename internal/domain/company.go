package domain

import "time"

// Company is the tenant record grouping users under one account.
type Company struct {
	ID        string
	Name      string
	IsTrial   bool
	IsActive  bool
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
