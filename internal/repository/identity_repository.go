package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/course-service/internal/domain"
)

// IdentityRepository defines persistence access for the identity provider's
// account records.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	SetRoleClaim(ctx context.Context, uid string, role domain.Role) error
	GetByUID(ctx context.Context, uid string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
}

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository returns a Postgres-backed implementation.
func NewIdentityRepository(pool *pgxpool.Pool) IdentityRepository {
	return &identityRepository{pool: pool}
}

func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	const query = `
        INSERT INTO identities (uid, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		identity.UID,
		identity.Email,
		identity.PasswordHash,
		identity.Role,
	).Scan(&identity.CreatedAt)
}

func (r *identityRepository) SetRoleClaim(ctx context.Context, uid string, role domain.Role) error {
	const query = `UPDATE identities SET role=$1 WHERE uid=$2`

	cmd, err := r.pool.Exec(ctx, query, role, uid)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *identityRepository) GetByUID(ctx context.Context, uid string) (*domain.Identity, error) {
	const query = `
        SELECT uid, email, password_hash, role, created_at
        FROM identities WHERE uid=$1`

	return r.fetchSingle(ctx, query, uid)
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `
        SELECT uid, email, password_hash, role, created_at
        FROM identities WHERE email=$1`

	return r.fetchSingle(ctx, query, email)
}

func (r *identityRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Identity, error) {
	var identity domain.Identity
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&identity.UID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.Role,
		&identity.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &identity, nil
}
