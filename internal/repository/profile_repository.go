package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/course-service/internal/domain"
)

// ProfileRepository persists the profile documents mirrored at sign-up.
type ProfileRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUID(ctx context.Context, uid string) (*domain.User, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO profiles (uid, email, role)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		user.UID,
		user.Email,
		user.Role,
	).Scan(&user.CreatedAt)
}

func (r *profileRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	const query = `
        SELECT uid, email, role, created_at
        FROM profiles WHERE uid=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, uid).Scan(
		&user.UID,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
