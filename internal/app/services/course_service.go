package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/coursehub/backend/internal/app/models"
	"github.com/coursehub/backend/internal/app/models/dto"
	"github.com/coursehub/backend/internal/pkg/apperrors"
	"github.com/coursehub/backend/internal/pkg/auth"
)

// DefaultListLimit caps the public course listing page.
const DefaultListLimit = 10

// CourseService defines course operations for the controllers
type CourseService interface {
	List(ctx context.Context, category string) ([]*models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	ListMine(ctx context.Context, identity *auth.Identity) ([]*models.Course, error)
	Create(ctx context.Context, identity *auth.Identity, req *dto.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, identity *auth.Identity, id string, req *dto.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, identity *auth.Identity, id string) error
	Count(ctx context.Context) (int64, error)
}

// courseStore is the slice of the course repository this service needs
type courseStore interface {
	List(ctx context.Context, category string, limit int) ([]*models.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListByInstructorEmail(ctx context.Context, email string) ([]*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type courseService struct {
	courses courseStore
	logger  zerolog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(courses courseStore, lgr zerolog.Logger) CourseService {
	return &courseService{courses: courses, logger: lgr}
}

// NormalizeEmail lower-cases and trims an email for ownership comparisons
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// parseCourseID turns a path parameter into a uuid, mapping malformed input
// to a validation error (400) rather than a lookup miss (404).
func parseCourseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("Invalid course ID")
	}
	return parsed, nil
}

func (s *courseService) List(ctx context.Context, category string) ([]*models.Course, error) {
	return s.courses.List(ctx, category, DefaultListLimit)
}

func (s *courseService) Get(ctx context.Context, id string) (*models.Course, error) {
	courseID, err := parseCourseID(id)
	if err != nil {
		return nil, err
	}
	return s.courses.GetByID(ctx, courseID)
}

func (s *courseService) ListMine(ctx context.Context, identity *auth.Identity) ([]*models.Course, error) {
	return s.courses.ListByInstructorEmail(ctx, NormalizeEmail(identity.Email))
}

func (s *courseService) Create(ctx context.Context, identity *auth.Identity, req *dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("Title is required")
	}

	course := &models.Course{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Duration:    req.Duration,
		Category:    req.Category,
		Description: req.Description,
		IsFeatured:  req.IsFeatured,
		Instructor: models.Instructor{
			// The owner is always the caller, whatever the body says.
			Email: NormalizeEmail(identity.Email),
			Name:  identity.Name,
		},
	}
	if req.Instructor != nil {
		if req.Instructor.Name != nil && *req.Instructor.Name != "" {
			course.Instructor.Name = *req.Instructor.Name
		}
		if req.Instructor.PhotoURL != nil && *req.Instructor.PhotoURL != "" {
			course.Instructor.PhotoURL = *req.Instructor.PhotoURL
		}
	}
	if course.Instructor.PhotoURL == "" {
		course.Instructor.PhotoURL = identity.Picture
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("courseId", course.ID.String()).
		Str("instructor", course.Instructor.Email).
		Msg("Course created")
	return course, nil
}

func (s *courseService) Update(ctx context.Context, identity *auth.Identity, id string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	courseID, err := parseCourseID(id)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(identity, course); err != nil {
		return nil, err
	}

	applyCoursePatch(course, req)

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	courseID, err := parseCourseID(id)
	if err != nil {
		return err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if err := checkOwnership(identity, course); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, courseID); err != nil {
		return err
	}

	s.logger.Info().
		Str("courseId", courseID.String()).
		Str("instructor", course.Instructor.Email).
		Msg("Course deleted")
	return nil
}

func (s *courseService) Count(ctx context.Context) (int64, error) {
	return s.courses.Count(ctx)
}

// checkOwnership verifies the caller owns the course, comparing emails
// case-insensitively.
func checkOwnership(identity *auth.Identity, course *models.Course) error {
	if NormalizeEmail(identity.Email) != NormalizeEmail(course.Instructor.Email) {
		return apperrors.NewForbiddenError("Forbidden")
	}
	return nil
}

// applyCoursePatch merges the provided fields of a patch onto a course.
// Absent fields stay untouched; a patched instructor email is normalized.
func applyCoursePatch(course *models.Course, req *dto.UpdateCourseRequest) {
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.ImageURL != nil {
		course.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.IsFeatured != nil {
		course.IsFeatured = *req.IsFeatured
	}
	if req.Instructor != nil {
		if req.Instructor.Name != nil {
			course.Instructor.Name = *req.Instructor.Name
		}
		if req.Instructor.Email != nil {
			course.Instructor.Email = NormalizeEmail(*req.Instructor.Email)
		}
		if req.Instructor.PhotoURL != nil {
			course.Instructor.PhotoURL = *req.Instructor.PhotoURL
		}
	}
}
