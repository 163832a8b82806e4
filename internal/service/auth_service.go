package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// dummyHash is compared against when login hits an unknown email, so the
// unknown-email and wrong-password paths take comparable time.
var dummyHash, _ = auth.HashPassword("credentials-placeholder", 10)

// AuthService coordinates registration, login, and token verification.
type AuthService struct {
	users      repository.UserRepository
	profiles   repository.UserProfileRepository
	companies  repository.CompanyRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies bundles repo requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.UserProfileRepository
	CompanyRepo repository.CompanyRepository
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		profiles:   deps.ProfileRepo,
		companies:  deps.CompanyRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes a registration payload.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Address     *string
	State       *string
	Country     *string
	UserDetails map[string]any
	Role        domain.Role
	CompanyName string
}

// RegisterResult is what a successful registration produces.
type RegisterResult struct {
	User      *domain.User
	Profile   *domain.UserProfile
	Company   *domain.Company
	Token     string
	ExpiresAt time.Time
}

// Register creates the tenant company (when needed), the user with a hashed
// password, and the matching profile. User and profile are written in one
// transaction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("e-mail is already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("invalid role", nil)
	}

	company, err := s.resolveCompany(ctx, input)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		ID:                   uuid.NewString(),
		CompanyID:            company.ID,
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
		return nil, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventRegistration,
		ActorID:     user.ID,
		Description: fmt.Sprintf("User %s registered", user.Email),
	})

	return &RegisterResult{
		User:      user,
		Profile:   profile,
		Company:   company,
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

// Login authenticates a user. Unknown email and wrong password produce the
// same error to avoid account enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.UserProfile, string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = auth.ComparePassword(dummyHash, password)
			return nil, nil, "", apperrors.NewUnauthorized("invalid email or password")
		}
		return nil, nil, "", apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, "", apperrors.NewUnauthorized("invalid email or password")
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, "", apperrors.MapError(err)
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, nil, "", apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:        domain.EventLogin,
		ActorID:     user.ID,
		Description: fmt.Sprintf("User %s logged in", user.Email),
	})

	return user, profile, token, nil
}

// VerifyToken validates a session token and resolves its user. A token for a
// soft-deleted user fails verification.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, *domain.UserProfile, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid or expired token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid or expired token")
		}
		return nil, nil, apperrors.MapError(err)
	}

	profile, err := s.profiles.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperrors.MapError(err)
	}

	return user, profile, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) resolveCompany(ctx context.Context, input RegisterInput) (*domain.Company, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		name = fmt.Sprintf("%s Workspace", strings.TrimSpace(input.Name))
	}

	company, err := s.companies.GetByName(ctx, name)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	company = &domain.Company{
		ID:       uuid.NewString(),
		Name:     name,
		IsTrial:  true,
		IsActive: true,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, apperrors.MapError(err)
	}
	return company, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
