package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursehub/backend/internal/app/models"
	"github.com/coursehub/backend/internal/pkg/apperrors"
)

const courseColumns = `
	id, title, image_url, price, duration, category, description, is_featured,
	instructor_name, instructor_email, instructor_photo_url,
	rating_average, rating_count, created_at, updated_at`

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.ImageURL,
		&c.Price,
		&c.Duration,
		&c.Category,
		&c.Description,
		&c.IsFeatured,
		&c.Instructor.Name,
		&c.Instructor.Email,
		&c.Instructor.PhotoURL,
		&c.RatingAverage,
		&c.RatingCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCourses(rows pgx.Rows) ([]*models.Course, error) {
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// List retrieves courses newest-first, optionally filtered by category
func (r *CourseRepository) List(ctx context.Context, category string, limit int) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return collectCourses(rows)
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// GetByIDs retrieves multiple courses in one batched query
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return collectCourses(rows)
}

// ListByInstructorEmail retrieves all courses owned by the given instructor
// email, case-insensitively, newest-first.
func (r *CourseRepository) ListByInstructorEmail(ctx context.Context, email string) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + `
		FROM courses
		WHERE LOWER(instructor_email) = LOWER($1)
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("error listing instructor courses: %w", err)
	}
	return collectCourses(rows)
}

// Create inserts a new course and fills in its generated fields
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (
			title, image_url, price, duration, category, description, is_featured,
			instructor_name, instructor_email, instructor_photo_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, rating_average, rating_count, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		course.Title,
		course.ImageURL,
		course.Price,
		course.Duration,
		course.Category,
		course.Description,
		course.IsFeatured,
		course.Instructor.Name,
		course.Instructor.Email,
		course.Instructor.PhotoURL,
	).Scan(&course.ID, &course.RatingAverage, &course.RatingCount, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// Update writes the mutable fields of a course back to its row
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses SET
			title = $2, image_url = $3, price = $4, duration = $5, category = $6,
			description = $7, is_featured = $8,
			instructor_name = $9, instructor_email = $10, instructor_photo_url = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		course.ID,
		course.Title,
		course.ImageURL,
		course.Price,
		course.Duration,
		course.Category,
		course.Description,
		course.IsFeatured,
		course.Instructor.Name,
		course.Instructor.Email,
		course.Instructor.PhotoURL,
	).Scan(&course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// UpdateRating writes the derived rating fields onto a course row. Only the
// rating aggregator calls this.
func (r *CourseRepository) UpdateRating(ctx context.Context, id uuid.UUID, average float64, count int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE courses SET rating_average = $2, rating_count = $3, updated_at = NOW() WHERE id = $1`,
		id, average, count)
	if err != nil {
		return fmt.Errorf("error updating course rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete hard-deletes a course
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Count returns the total course count
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}

// ListIDs returns every course id. The rating sweep iterates over these.
func (r *CourseRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM courses`)
	if err != nil {
		return nil, fmt.Errorf("error listing course ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
