package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coursehub/backend/internal/app/models"
	"github.com/coursehub/backend/internal/app/models/dto"
	"github.com/coursehub/backend/internal/pkg/apperrors"
	"github.com/coursehub/backend/internal/pkg/auth"
)

const (
	// RecentLimitDefault and RecentLimitMax bound GET /api/enrollments.
	RecentLimitDefault = 10
	RecentLimitMax     = 25

	reviewsPerCourse = 6
)

// EnrollmentService defines enrollment operations for the controllers
type EnrollmentService interface {
	Enroll(ctx context.Context, identity *auth.Identity, courseID string) (*models.Enrollment, bool, error)
	Status(ctx context.Context, email, courseID string) (bool, error)
	ListMine(ctx context.Context, identity *auth.Identity) ([]*dto.EnrollmentWithCourse, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Enrollment, error)
	UpdateProgress(ctx context.Context, identity *auth.Identity, id string, progress int) (*models.Enrollment, error)
	SubmitRating(ctx context.Context, identity *auth.Identity, id string, rating int, review string) (*models.Enrollment, error)
	Ratings(ctx context.Context, courseID string) (*dto.RatingsSummaryResponse, error)
}

// enrollmentStore is the slice of the enrollment repository this service needs
type enrollmentStore interface {
	GetOrCreate(ctx context.Context, userEmail string, courseID uuid.UUID) (*models.Enrollment, bool, error)
	FindByUserAndCourse(ctx context.Context, userEmail string, courseID uuid.UUID) (*models.Enrollment, error)
	GetOwned(ctx context.Context, id uuid.UUID, userEmail string) (*models.Enrollment, error)
	ListByUserEmail(ctx context.Context, userEmail string) ([]*models.Enrollment, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	AggregateRatings(ctx context.Context, courseID uuid.UUID) (float64, int, error)
	RatingBreakdown(ctx context.Context, courseID uuid.UUID) (map[int]int, error)
	RecentReviews(ctx context.Context, courseID uuid.UUID, limit int) ([]models.CourseReview, error)
}

// enrollmentCourseStore is the slice of the course repository used for
// enrichment and existence checks.
type enrollmentCourseStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Course, error)
}

// ratingNotifier triggers a deferred course-rating recomputation
type ratingNotifier interface {
	Enqueue(courseID uuid.UUID)
}

type enrollmentService struct {
	enrollments enrollmentStore
	courses     enrollmentCourseStore
	aggregator  ratingNotifier
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollments enrollmentStore, courses enrollmentCourseStore, aggregator ratingNotifier, lgr zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		aggregator:  aggregator,
		logger:      lgr,
		now:         time.Now,
	}
}

func parseEnrollmentID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("Invalid enrollment ID")
	}
	return parsed, nil
}

func (s *enrollmentService) Enroll(ctx context.Context, identity *auth.Identity, courseID string) (*models.Enrollment, bool, error) {
	if courseID == "" {
		return nil, false, apperrors.NewValidationError("courseId is required")
	}
	parsed, err := uuid.Parse(courseID)
	if err != nil {
		return nil, false, apperrors.NewValidationError("Invalid course ID")
	}

	// Enrolling into a course that does not exist is a 404, not a foreign
	// key violation.
	if _, err := s.courses.GetByID(ctx, parsed); err != nil {
		return nil, false, err
	}

	enrollment, created, err := s.enrollments.GetOrCreate(ctx, NormalizeEmail(identity.Email), parsed)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.logger.Info().
			Str("courseId", parsed.String()).
			Str("student", enrollment.UserEmail).
			Msg("Enrollment created")
	}
	return enrollment, created, nil
}

func (s *enrollmentService) Status(ctx context.Context, email, courseID string) (bool, error) {
	if email == "" {
		return false, nil
	}
	parsed, err := uuid.Parse(courseID)
	if err != nil {
		// A malformed id cannot match an enrollment.
		return false, nil
	}

	_, err = s.enrollments.FindByUserAndCourse(ctx, email, parsed)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *enrollmentService) ListMine(ctx context.Context, identity *auth.Identity) ([]*dto.EnrollmentWithCourse, error) {
	enrollments, err := s.enrollments.ListByUserEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return []*dto.EnrollmentWithCourse{}, nil
	}

	// Batched course lookup rather than a join, so a deleted course shows
	// up as a null course instead of hiding the enrollment.
	seen := map[uuid.UUID]struct{}{}
	var courseIDs []uuid.UUID
	for _, e := range enrollments {
		if _, ok := seen[e.CourseID]; !ok {
			seen[e.CourseID] = struct{}{}
			courseIDs = append(courseIDs, e.CourseID)
		}
	}

	courses, err := s.courses.GetByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	courseByID := make(map[uuid.UUID]*models.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}

	enriched := make([]*dto.EnrollmentWithCourse, 0, len(enrollments))
	for _, e := range enrollments {
		enriched = append(enriched, &dto.EnrollmentWithCourse{
			Enrollment: *e,
			Course:     courseByID[e.CourseID],
		})
	}
	return enriched, nil
}

func (s *enrollmentService) ListRecent(ctx context.Context, limit int) ([]*models.Enrollment, error) {
	if limit <= 0 {
		limit = RecentLimitDefault
	}
	if limit > RecentLimitMax {
		limit = RecentLimitMax
	}
	return s.enrollments.ListRecent(ctx, limit)
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, identity *auth.Identity, id string, progress int) (*models.Enrollment, error) {
	enrollmentID, err := parseEnrollmentID(id)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollments.GetOwned(ctx, enrollmentID, identity.Email)
	if err != nil {
		return nil, err
	}

	enrollment.Progress = clampProgress(progress)
	if enrollment.Progress >= 100 {
		// First crossing into 100 stamps completion; later updates at 100
		// keep the original timestamp.
		if enrollment.CompletedAt == nil {
			now := s.now()
			enrollment.CompletedAt = &now
		}
	} else {
		enrollment.CompletedAt = nil
	}

	if err := s.enrollments.Update(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *enrollmentService) SubmitRating(ctx context.Context, identity *auth.Identity, id string, rating int, review string) (*models.Enrollment, error) {
	enrollmentID, err := parseEnrollmentID(id)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollments.GetOwned(ctx, enrollmentID, identity.Email)
	if err != nil {
		return nil, err
	}
	if !enrollment.Completed() {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrCourseNotCompleted,
			Message: "Complete the course before leaving a review",
		}
	}
	if rating < 1 || rating > 5 {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrInvalidRating,
			Message: "Rating must be between 1 and 5",
		}
	}

	enrollment.Rating = &rating
	enrollment.Review = review

	if err := s.enrollments.Update(ctx, enrollment); err != nil {
		return nil, err
	}

	// Deferred, not awaited: a failed aggregation never fails the request.
	s.aggregator.Enqueue(enrollment.CourseID)

	return enrollment, nil
}

func (s *enrollmentService) Ratings(ctx context.Context, courseID string) (*dto.RatingsSummaryResponse, error) {
	parsed, err := parseCourseID(courseID)
	if err != nil {
		return nil, err
	}

	average, count, err := s.enrollments.AggregateRatings(ctx, parsed)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.enrollments.RatingBreakdown(ctx, parsed)
	if err != nil {
		return nil, err
	}
	reviews, err := s.enrollments.RecentReviews(ctx, parsed, reviewsPerCourse)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.CourseReview{}
	}

	return &dto.RatingsSummaryResponse{
		Average:   average,
		Count:     count,
		Breakdown: breakdown,
		Reviews:   reviews,
	}, nil
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
