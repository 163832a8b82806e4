package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// UserProfileRepository defines persistence access for user profiles.
type UserProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)
	Update(ctx context.Context, profile *domain.UserProfile) error
}

type userProfileRepository struct {
	pool *pgxpool.Pool
}

// NewUserProfileRepository returns a Postgres-backed implementation.
func NewUserProfileRepository(pool *pgxpool.Pool) UserProfileRepository {
	return &userProfileRepository{pool: pool}
}

func (r *userProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	const query = `
        SELECT user_profile_id, user_id, name, address, state, country, user_details,
               is_active, is_deleted, created_at, updated_at
        FROM user_profiles WHERE user_id=$1 AND is_deleted=FALSE`

	var profile domain.UserProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Address,
		&profile.State,
		&profile.Country,
		&profile.UserDetails,
		&profile.IsActive,
		&profile.IsDeleted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userProfileRepository) Update(ctx context.Context, profile *domain.UserProfile) error {
	const query = `
        UPDATE user_profiles SET name=$1, address=$2, state=$3, country=$4, user_details=$5, updated_at=NOW()
        WHERE user_id=$6 AND is_deleted=FALSE`

	cmd, err := r.pool.Exec(ctx, query,
		profile.Name,
		profile.Address,
		profile.State,
		profile.Country,
		profile.UserDetails,
		profile.UserID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
