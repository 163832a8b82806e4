package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// UserRepository defines persistence access for user accounts. Reads filter
// soft-deleted rows except GetByIDIncludingDeleted, which the delete path
// uses to reject a double delete with a conflict.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.UserProfile) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByIDIncludingDeleted(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.UserListing, error)
	SoftDeleteWithProfile(ctx context.Context, userID string) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `user_id, company_id, email, password_hash, role, is_trial, is_active,
       is_notification_active, is_deleted, created_at, updated_at`

// CreateWithProfile inserts the user and its profile in one transaction so a
// partial failure never leaves an orphan of either record.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.UserProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const userQuery = `
        INSERT INTO users (user_id, company_id, email, password_hash, role, is_trial, is_active, is_notification_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`
	if err := tx.QueryRow(ctx, userQuery,
		user.ID,
		user.CompanyID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsTrial,
		user.IsActive,
		user.IsNotificationActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	const profileQuery = `
        INSERT INTO user_profiles (user_profile_id, user_id, name, address, state, country, user_details)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at`
	if err := tx.QueryRow(ctx, profileQuery,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Address,
		profile.State,
		profile.Country,
		profile.UserDetails,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET email=$1, password_hash=$2, role=$3, is_trial=$4, is_active=$5,
            is_notification_active=$6, updated_at=NOW()
        WHERE user_id=$7 AND is_deleted=FALSE`

	cmd, err := r.pool.Exec(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsTrial,
		user.IsActive,
		user.IsNotificationActive,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByIDIncludingDeleted(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + `
        FROM users WHERE email=$1 AND is_active=TRUE AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, email)
}

// EmailTaken reports whether an active, non-deleted user other than
// excludeUserID already holds the email.
func (r *userRepository) EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM users
            WHERE email=$1 AND user_id <> $2 AND is_active=TRUE AND is_deleted=FALSE
        )`
	var taken bool
	if err := r.pool.QueryRow(ctx, query, email, excludeUserID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.UserListing, error) {
	const query = `
        SELECT u.user_id, u.company_id, u.email, u.password_hash, u.role, u.is_trial, u.is_active,
               u.is_notification_active, u.is_deleted, u.created_at, u.updated_at,
               COALESCE(p.name, '')
        FROM users u
        LEFT JOIN user_profiles p ON p.user_id = u.user_id AND p.is_deleted=FALSE
        WHERE u.role=$1 AND u.is_deleted=FALSE
        ORDER BY u.created_at DESC`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserListing
	for rows.Next() {
		var listing domain.UserListing
		if err := rows.Scan(
			&listing.ID,
			&listing.CompanyID,
			&listing.Email,
			&listing.PasswordHash,
			&listing.Role,
			&listing.IsTrial,
			&listing.IsActive,
			&listing.IsNotificationActive,
			&listing.IsDeleted,
			&listing.CreatedAt,
			&listing.UpdatedAt,
			&listing.Name,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}

// SoftDeleteWithProfile flags the user and its profile deleted in one
// transaction. Returns pgx.ErrNoRows when the user does not exist or is
// already deleted.
func (r *userRepository) SoftDeleteWithProfile(ctx context.Context, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE users SET is_deleted=TRUE, updated_at=NOW() WHERE user_id=$1 AND is_deleted=FALSE`,
		userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx,
		`UPDATE user_profiles SET is_deleted=TRUE, updated_at=NOW() WHERE user_id=$1 AND is_deleted=FALSE`,
		userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	const query = `SELECT COUNT(*) FROM users WHERE role=$1 AND is_deleted=FALSE`
	var count int64
	if err := r.pool.QueryRow(ctx, query, role).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.CompanyID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsTrial,
		&user.IsActive,
		&user.IsNotificationActive,
		&user.IsDeleted,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
