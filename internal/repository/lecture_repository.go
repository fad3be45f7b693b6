package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/course-service/internal/domain"
)

// LectureRepository encapsulates lecture persistence.
type LectureRepository interface {
	Create(ctx context.Context, lecture *domain.Lecture) error
	ListByCourse(ctx context.Context, courseID string) ([]domain.Lecture, error)
}

type lectureRepository struct {
	pool *pgxpool.Pool
}

// NewLectureRepository instantiates repository.
func NewLectureRepository(pool *pgxpool.Pool) LectureRepository {
	return &lectureRepository{pool: pool}
}

func (r *lectureRepository) Create(ctx context.Context, lecture *domain.Lecture) error {
	const query = `
        INSERT INTO lectures (id, course_id, title, description, video_url)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, query,
		lecture.ID,
		lecture.CourseID,
		lecture.Title,
		lecture.Description,
		lecture.VideoURL,
	)
	return err
}

func (r *lectureRepository) ListByCourse(ctx context.Context, courseID string) ([]domain.Lecture, error) {
	const query = `
        SELECT id, course_id, title, description, video_url
        FROM lectures WHERE course_id=$1`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLectures(rows)
}

func scanLectures(rows pgx.Rows) ([]domain.Lecture, error) {
	var result []domain.Lecture
	for rows.Next() {
		var lecture domain.Lecture
		if err := rows.Scan(
			&lecture.ID,
			&lecture.CourseID,
			&lecture.Title,
			&lecture.Description,
			&lecture.VideoURL,
		); err != nil {
			return nil, err
		}
		result = append(result, lecture)
	}
	return result, rows.Err()
}
