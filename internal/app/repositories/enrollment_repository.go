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

const enrollmentColumns = `
	id, user_email, course_id, progress, rating, review, completed_at,
	created_at, updated_at`

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	err := row.Scan(
		&e.ID,
		&e.UserEmail,
		&e.CourseID,
		&e.Progress,
		&e.Rating,
		&e.Review,
		&e.CompletedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEnrollments(rows pgx.Rows) ([]*models.Enrollment, error) {
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// GetOrCreate enrolls userEmail into courseID, or returns the existing
// enrollment. The unique index on (lower(user_email), course_id) makes this
// race-free: a concurrent duplicate insert loses the conflict and falls
// through to the lookup. The boolean reports whether a new row was created.
func (r *EnrollmentRepository) GetOrCreate(ctx context.Context, userEmail string, courseID uuid.UUID) (*models.Enrollment, bool, error) {
	insert := `
		INSERT INTO enrollments (user_email, course_id)
		VALUES ($1, $2)
		ON CONFLICT (lower(user_email), course_id) DO NOTHING
		RETURNING ` + enrollmentColumns

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, insert, userEmail, courseID))
	if err == nil {
		return enrollment, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("error creating enrollment: %w", err)
	}

	existing, err := r.FindByUserAndCourse(ctx, userEmail, courseID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindByUserAndCourse retrieves the enrollment for (userEmail, courseID)
func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userEmail string, courseID uuid.UUID) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE LOWER(user_email) = LOWER($1) AND course_id = $2`

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, query, userEmail, courseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return enrollment, nil
}

// GetOwned retrieves an enrollment by id only when it belongs to userEmail.
// A wrong owner is indistinguishable from a missing row.
func (r *EnrollmentRepository) GetOwned(ctx context.Context, id uuid.UUID, userEmail string) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE id = $1 AND LOWER(user_email) = LOWER($2)`

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, query, id, userEmail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return enrollment, nil
}

// ListByUserEmail retrieves all enrollments of a student, newest-first
func (r *EnrollmentRepository) ListByUserEmail(ctx context.Context, userEmail string) ([]*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE LOWER(user_email) = LOWER($1)
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	return collectEnrollments(rows)
}

// ListRecent retrieves the most recent enrollments across all users
func (r *EnrollmentRepository) ListRecent(ctx context.Context, limit int) ([]*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + `
		FROM enrollments
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing recent enrollments: %w", err)
	}
	return collectEnrollments(rows)
}

// Update writes the mutable fields of an enrollment back to its row
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		UPDATE enrollments SET
			progress = $2, rating = $3, review = $4, completed_at = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		enrollment.ID,
		enrollment.Progress,
		enrollment.Rating,
		enrollment.Review,
		enrollment.CompletedAt,
	).Scan(&enrollment.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrEnrollmentNotFound
		}
		return fmt.Errorf("error updating enrollment: %w", err)
	}
	return nil
}

// AggregateRatings computes the mean (rounded to 2 decimals) and count of
// all non-null ratings for a course. No rated enrollments yields (0, 0).
func (r *EnrollmentRepository) AggregateRatings(ctx context.Context, courseID uuid.UUID) (float64, int, error) {
	query := `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0), COUNT(*)
		FROM enrollments
		WHERE course_id = $1 AND rating IS NOT NULL`

	var average float64
	var count int
	if err := r.db.QueryRow(ctx, query, courseID).Scan(&average, &count); err != nil {
		return 0, 0, fmt.Errorf("error aggregating ratings: %w", err)
	}
	return average, count, nil
}

// RatingBreakdown returns rating-value → count for a course
func (r *EnrollmentRepository) RatingBreakdown(ctx context.Context, courseID uuid.UUID) (map[int]int, error) {
	query := `
		SELECT rating, COUNT(*)
		FROM enrollments
		WHERE course_id = $1 AND rating IS NOT NULL
		GROUP BY rating`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error computing rating breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := map[int]int{}
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		breakdown[rating] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// RecentReviews returns the most recently updated non-empty reviews of a
// course, newest-first.
func (r *EnrollmentRepository) RecentReviews(ctx context.Context, courseID uuid.UUID, limit int) ([]models.CourseReview, error) {
	query := `
		SELECT rating, review, user_email, updated_at
		FROM enrollments
		WHERE course_id = $1 AND rating IS NOT NULL AND review <> ''
		ORDER BY updated_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, courseID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.CourseReview
	for rows.Next() {
		var review models.CourseReview
		if err := rows.Scan(&review.Rating, &review.Review, &review.UserEmail, &review.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}
