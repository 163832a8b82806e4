package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// RegisterRequest is the self-service signup payload.
type RegisterRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=120"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=6,max=72"`
	CompanyName string         `json:"companyName" validate:"omitempty,min=2,max=120"`
	Role        string         `json:"role" validate:"omitempty,oneof=user staff admin super-admin"`
	Address     *string        `json:"address"`
	State       *string        `json:"state"`
	Country     *string        `json:"country"`
	UserDetails map[string]any `json:"userDetails"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID                   string    `json:"id"`
	CompanyID            string    `json:"companyId"`
	Email                string    `json:"email"`
	Role                 string    `json:"role"`
	IsTrial              bool      `json:"isTrial"`
	IsActive             bool      `json:"isActive"`
	IsNotificationActive bool      `json:"isNotificationActive"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// ProfileResponse is the public shape of a profile.
type ProfileResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Name        string         `json:"name"`
	Address     *string        `json:"address,omitempty"`
	State       *string        `json:"state,omitempty"`
	Country     *string        `json:"country,omitempty"`
	UserDetails map[string]any `json:"userDetails,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// CompanyResponse is the public shape of a tenant company.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsTrial   bool      `json:"isTrial"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse maps a domain user to its API shape.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		CompanyID:            u.CompanyID,
		Email:                u.Email,
		Role:                 string(u.Role),
		IsTrial:              u.IsTrial,
		IsActive:             u.IsActive,
		IsNotificationActive: u.IsNotificationActive,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

// NewCompanyResponse maps a domain company; nil in, nil out.
func NewCompanyResponse(c *domain.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsTrial:   c.IsTrial,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewProfileResponse maps a domain profile; nil in, nil out.
func NewProfileResponse(p *domain.UserProfile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Address:     p.Address,
		State:       p.State,
		Country:     p.Country,
		UserDetails: p.UserDetails,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
