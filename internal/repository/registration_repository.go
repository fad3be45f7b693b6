package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/course-service/internal/domain"
)

// RegistrationRepository encapsulates registration persistence. Create never
// deduplicates: each call inserts a fresh row.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *domain.Registration) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository instantiates repository.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

func (r *registrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	const query = `
        INSERT INTO registrations (id, user_id, course_id, registered_at)
        VALUES ($1,$2,$3,$4)`

	_, err := r.pool.Exec(ctx, query,
		registration.ID,
		registration.UserID,
		registration.CourseID,
		registration.RegisteredAt,
	)
	return err
}

// Exists reports whether at least one registration row matches the pair.
func (r *registrationRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM registrations WHERE user_id=$1 AND course_id=$2
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
