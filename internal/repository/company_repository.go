package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CompanyRepository defines persistence access for tenant companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (company_id, name, is_trial, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		company.ID,
		company.Name,
		company.IsTrial,
		company.IsActive,
	).Scan(&company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	const query = `
        SELECT company_id, name, is_trial, is_active, is_deleted, created_at, updated_at
        FROM companies WHERE company_id=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, id)
}

func (r *companyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	const query = `
        SELECT company_id, name, is_trial, is_active, is_deleted, created_at, updated_at
        FROM companies WHERE name=$1 AND is_deleted=FALSE`
	return r.fetchSingle(ctx, query, name)
}

func (r *companyRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Company, error) {
	var company domain.Company
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&company.ID,
		&company.Name,
		&company.IsTrial,
		&company.IsActive,
		&company.IsDeleted,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}
