package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/course-service/internal/domain"
)

// CourseRepository encapsulates course persistence.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	List(ctx context.Context) ([]domain.Course, error)
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository instantiates repository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (id, name, description, teacher, start_date, end_date, price)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err := r.pool.Exec(ctx, query,
		course.ID,
		course.Name,
		course.Description,
		course.Teacher,
		course.StartDate,
		course.EndDate,
		course.Price,
	)
	return err
}

// List returns every course in store-default order; no pagination.
func (r *courseRepository) List(ctx context.Context) ([]domain.Course, error) {
	const query = `
        SELECT id, name, description, teacher, start_date, end_date, price
        FROM courses`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

func scanCourses(rows pgx.Rows) ([]domain.Course, error) {
	var result []domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Description,
			&course.Teacher,
			&course.StartDate,
			&course.EndDate,
			&course.Price,
		); err != nil {
			return nil, err
		}
		result = append(result, course)
	}
	return result, rows.Err()
}
