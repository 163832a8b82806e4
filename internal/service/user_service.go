package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// UserService covers profile access and super-admin user administration.
type UserService struct {
	users      repository.UserRepository
	profiles   repository.UserProfileRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// UserDependencies bundles repo requirements for the user service.
type UserDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.UserProfileRepository
	Dispatcher  events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// UpdateProfileInput carries optional profile mutations; nil fields are left
// untouched.
type UpdateProfileInput struct {
	Name                 *string
	Email                *string
	Password             *string
	Role                 *domain.Role
	IsNotificationActive *bool
}

// GetProfile fetches the caller's profile.
func (s *UserService) GetProfile(ctx context.Context, caller *domain.User) (*domain.UserProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user profile", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// UpdateProfile applies the caller's own mutations. Role changes require an
// admin role; email changes are checked for uniqueness among active users.
func (s *UserService) UpdateProfile(ctx context.Context, caller *domain.User, input UpdateProfileInput) (*domain.User, *domain.UserProfile, error) {
	if input.Role != nil && caller.Role != domain.RoleAdmin && caller.Role != domain.RoleSuperAdmin {
		return nil, nil, apperrors.NewForbidden("only admins can change roles")
	}

	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}
	profile, err := s.profiles.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user profile", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}

	if err := s.applyUserMutations(ctx, user, input); err != nil {
		return nil, nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		profile.Name = strings.TrimSpace(*input.Name)
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, nil, apperrors.MapError(err)
		}
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventUpdateProfile,
		ActorID:     caller.ID,
		Description: fmt.Sprintf("User %s updated their profile", user.Email),
		Metadata: map[string]any{
			"email": user.Email,
			"role":  user.Role,
		},
	})

	return user, profile, nil
}

// ListByRole returns non-deleted users of the given role with profile names.
func (s *UserService) ListByRole(ctx context.Context, role domain.Role) ([]domain.UserListing, error) {
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("invalid role", nil)
	}
	listings, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return listings, nil
}

// AddUser creates an account under the acting super-admin's company.
// Creating another super-admin is not allowed.
func (s *UserService) AddUser(ctx context.Context, actor *domain.User, input RegisterInput) (*domain.User, *domain.UserProfile, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, nil, apperrors.NewValidationError("invalid role", nil)
	}
	if role == domain.RoleSuperAdmin {
		return nil, nil, apperrors.NewForbidden("cannot create another super-admin")
	}

	email := normalizeEmail(input.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewConflict("e-mail is already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	user := &domain.User{
		ID:                   uuid.NewString(),
		CompanyID:            actor.CompanyID,
		Email:                email,
		PasswordHash:         hash,
		Role:                 role,
		IsTrial:              true,
		IsActive:             true,
		IsNotificationActive: true,
	}
	profile := &domain.UserProfile{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Name:        strings.TrimSpace(input.Name),
		Address:     input.Address,
		State:       input.State,
		Country:     input.Country,
		UserDetails: input.UserDetails,
	}
	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventAdminAddUser,
		ActorID:     actor.ID,
		Description: fmt.Sprintf("Super-admin %s added user %s", actor.Email, user.Email),
	})

	return user, profile, nil
}

// UpdateUser applies admin mutations to another account. Super-admin accounts
// cannot be edited.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, targetID string, input UpdateProfileInput) (*domain.User, *domain.UserProfile, error) {
	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}
	if user.Role == domain.RoleSuperAdmin {
		return nil, nil, apperrors.NewForbidden("super-admin accounts cannot be modified")
	}
	profile, err := s.profiles.GetByUserID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user profile", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}

	if err := s.applyUserMutations(ctx, user, input); err != nil {
		return nil, nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if input.Name != nil {
		profile.Name = strings.TrimSpace(*input.Name)
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, nil, apperrors.MapError(err)
		}
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventAdminUpdateUser,
		ActorID:     actor.ID,
		Description: fmt.Sprintf("Super-admin %s updated user %s", actor.Email, user.Email),
		Metadata: map[string]any{
			"target_user_id": user.ID,
			"role":           user.Role,
		},
	})

	return user, profile, nil
}

// DeleteUser soft-deletes an account and its profile in one transaction.
// Super-admin accounts cannot be deleted, and re-deleting an already-deleted
// account is a conflict, not a silent success.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, targetID string) error {
	user, err := s.users.GetByIDIncludingDeleted(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}
	if user.IsDeleted {
		return apperrors.NewConflict("user is already deleted", nil)
	}
	if user.Role == domain.RoleSuperAdmin {
		return apperrors.NewForbidden("super-admins cannot delete other super-admins")
	}

	if err := s.users.SoftDeleteWithProfile(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewConflict("user is already deleted", nil)
		}
		return apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventAdminDeleteUser,
		ActorID:     actor.ID,
		Description: fmt.Sprintf("Super-admin %s deleted user %s", actor.Email, user.Email),
		Metadata:    map[string]any{"target_user_id": user.ID},
	})

	return nil
}

func (s *UserService) applyUserMutations(ctx context.Context, user *domain.User, input UpdateProfileInput) error {
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			taken, err := s.users.EmailTaken(ctx, email, user.ID)
			if err != nil {
				return apperrors.MapError(err)
			}
			if taken {
				return apperrors.NewConflict("e-mail is already registered", nil)
			}
			user.Email = email
		}
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return apperrors.NewValidationError("invalid role", nil)
		}
		user.Role = *input.Role
	}
	if input.IsNotificationActive != nil {
		user.IsNotificationActive = *input.IsNotificationActive
	}
	return nil
}
