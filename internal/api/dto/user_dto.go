package dto

import "github.com/spec-kit/support-desk/internal/domain"

// UpdateProfileRequest carries self-service profile mutations. Omitted fields
// are left untouched.
type UpdateProfileRequest struct {
	Name                 *string `json:"name" validate:"omitempty,min=2,max=120"`
	Email                *string `json:"email" validate:"omitempty,email"`
	Password             *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role                 *string `json:"role" validate:"omitempty,oneof=user staff admin super-admin"`
	IsNotificationActive *bool   `json:"isNotificationActive"`
}

// AddUserRequest is the super-admin account creation payload.
type AddUserRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=120"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=6,max=72"`
	Role        string         `json:"role" validate:"omitempty,oneof=user staff admin"`
	Address     *string        `json:"address"`
	State       *string        `json:"state"`
	Country     *string        `json:"country"`
	UserDetails map[string]any `json:"userDetails"`
}

// UserListingResponse is a user row in role listings, enriched with the
// profile name.
type UserListingResponse struct {
	UserResponse
	Name string `json:"name"`
}

// NewUserListingResponse maps a listing row.
func NewUserListingResponse(l domain.UserListing) UserListingResponse {
	return UserListingResponse{
		UserResponse: NewUserResponse(&l.User),
		Name:         l.Name,
	}
}
