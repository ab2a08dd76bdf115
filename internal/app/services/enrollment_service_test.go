package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/backend/internal/app/models"
	"github.com/coursehub/backend/internal/pkg/apperrors"
	"github.com/coursehub/backend/internal/pkg/auth"
)

// fakeEnrollmentStore is an in-memory enrollmentStore
type fakeEnrollmentStore struct {
	enrollments map[uuid.UUID]*models.Enrollment
	reviews     []models.CourseReview
	average     float64
	ratingCount int
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: map[uuid.UUID]*models.Enrollment{}}
}

func (f *fakeEnrollmentStore) GetOrCreate(_ context.Context, userEmail string, courseID uuid.UUID) (*models.Enrollment, bool, error) {
	for _, e := range f.enrollments {
		if e.UserEmail == userEmail && e.CourseID == courseID {
			copied := *e
			return &copied, false, nil
		}
	}
	e := &models.Enrollment{
		ID:        uuid.New(),
		UserEmail: userEmail,
		CourseID:  courseID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.enrollments[e.ID] = e
	copied := *e
	return &copied, true, nil
}

func (f *fakeEnrollmentStore) FindByUserAndCourse(_ context.Context, userEmail string, courseID uuid.UUID) (*models.Enrollment, error) {
	for _, e := range f.enrollments {
		if NormalizeEmail(e.UserEmail) == NormalizeEmail(userEmail) && e.CourseID == courseID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) GetOwned(_ context.Context, id uuid.UUID, userEmail string) (*models.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok || NormalizeEmail(e.UserEmail) != NormalizeEmail(userEmail) {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEnrollmentStore) ListByUserEmail(_ context.Context, userEmail string) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if NormalizeEmail(e.UserEmail) == NormalizeEmail(userEmail) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListRecent(_ context.Context, limit int) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if len(out) == limit {
			break
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeEnrollmentStore) Update(_ context.Context, enrollment *models.Enrollment) error {
	if _, ok := f.enrollments[enrollment.ID]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	stored := *enrollment
	f.enrollments[enrollment.ID] = &stored
	return nil
}

func (f *fakeEnrollmentStore) AggregateRatings(context.Context, uuid.UUID) (float64, int, error) {
	return f.average, f.ratingCount, nil
}

func (f *fakeEnrollmentStore) RatingBreakdown(context.Context, uuid.UUID) (map[int]int, error) {
	return map[int]int{}, nil
}

func (f *fakeEnrollmentStore) RecentReviews(context.Context, uuid.UUID, int) ([]models.CourseReview, error) {
	return f.reviews, nil
}

// fakeEnrollmentCourses is an in-memory enrollmentCourseStore
type fakeEnrollmentCourses struct {
	courses map[uuid.UUID]*models.Course
}

func (f *fakeEnrollmentCourses) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeEnrollmentCourses) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Course, error) {
	var out []*models.Course
	for _, id := range ids {
		if course, ok := f.courses[id]; ok {
			out = append(out, course)
		}
	}
	return out, nil
}

// fakeNotifier records enqueued course ids
type fakeNotifier struct {
	enqueued []uuid.UUID
}

func (f *fakeNotifier) Enqueue(courseID uuid.UUID) {
	f.enqueued = append(f.enqueued, courseID)
}

type enrollmentFixture struct {
	svc      *enrollmentService
	store    *fakeEnrollmentStore
	courses  *fakeEnrollmentCourses
	notifier *fakeNotifier
	courseID uuid.UUID
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()
	store := newFakeEnrollmentStore()
	courseID := uuid.New()
	courses := &fakeEnrollmentCourses{courses: map[uuid.UUID]*models.Course{
		courseID: {ID: courseID, Title: "Go Basics"},
	}}
	notifier := &fakeNotifier{}

	svc := NewEnrollmentService(store, courses, notifier, zerolog.Nop()).(*enrollmentService)
	return &enrollmentFixture{svc: svc, store: store, courses: courses, notifier: notifier, courseID: courseID}
}

func bob() *auth.Identity {
	return &auth.Identity{Email: "Bob@Example.com", Name: "Bob"}
}

func TestEnrollRequiresCourseID(t *testing.T) {
	fx := newEnrollmentFixture(t)

	_, _, err := fx.svc.Enroll(context.Background(), bob(), "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "courseId is required", apperrors.Message(err, ""))
}

func TestEnrollRejectsMalformedCourseID(t *testing.T) {
	fx := newEnrollmentFixture(t)

	_, _, err := fx.svc.Enroll(context.Background(), bob(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Invalid course ID", apperrors.Message(err, ""))
}

func TestEnrollUnknownCourse(t *testing.T) {
	fx := newEnrollmentFixture(t)

	_, _, err := fx.svc.Enroll(context.Background(), bob(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollIsIdempotent(t *testing.T) {
	fx := newEnrollmentFixture(t)

	first, created, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 0, first.Progress)
	assert.Equal(t, "bob@example.com", first.UserEmail)

	second, created, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestStatusForAnonymousCaller(t *testing.T) {
	fx := newEnrollmentFixture(t)

	enrolled, err := fx.svc.Status(context.Background(), "", fx.courseID.String())
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestStatusMalformedCourseIDIsNotEnrolled(t *testing.T) {
	fx := newEnrollmentFixture(t)

	enrolled, err := fx.svc.Status(context.Background(), "bob@example.com", "nope")
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestStatusReflectsEnrollment(t *testing.T) {
	fx := newEnrollmentFixture(t)

	enrolled, err := fx.svc.Status(context.Background(), "bob@example.com", fx.courseID.String())
	require.NoError(t, err)
	assert.False(t, enrolled)

	_, _, err = fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)

	enrolled, err = fx.svc.Status(context.Background(), "BOB@example.com", fx.courseID.String())
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestUpdateProgressClampsRange(t *testing.T) {
	fx := newEnrollmentFixture(t)
	enrollment, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)

	updated, err := fx.svc.UpdateProgress(context.Background(), bob(), enrollment.ID.String(), 150)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Progress)

	updated, err = fx.svc.UpdateProgress(context.Background(), bob(), enrollment.ID.String(), -10)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Progress)
}

func TestUpdateProgressStampsCompletionOnce(t *testing.T) {
	fx := newEnrollmentFixture(t)
	enrollment, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)

	firstCompletion := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fx.svc.now = func() time.Time { return firstCompletion }

	updated, err := fx.svc.UpdateProgress(context.Background(), bob(), enrollment.ID.String(), 100)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, firstCompletion, *updated.CompletedAt)

	// A later update at 100 keeps the original stamp.
	fx.svc.now = func() time.Time { return firstCompletion.Add(48 * time.Hour) }
	updated, err = fx.svc.UpdateProgress(context.Background(), bob(), enrollment.ID.String(), 100)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, firstCompletion, *updated.CompletedAt)
}

func TestUpdateProgressClearsCompletionBelow100(t *testing.T) {
	fx := newEnrollmentFixture(t)
	enrollment, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)

	_, err = fx.svc.UpdateProgress(context.Background(), bob(), enrollment.ID.String(), 100)
	require.NoError(t, err)

	updated, err := fx.svc.UpdateProgress(context.Background(), bob(), enrollment.ID.String(), 60)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateProgressOnForeignEnrollment(t *testing.T) {
	fx := newEnrollmentFixture(t)
	enrollment, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)

	intruder := &auth.Identity{Email: "mallory@example.com"}
	_, err = fx.svc.UpdateProgress(context.Background(), intruder, enrollment.ID.String(), 50)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestSubmitRatingRequiresCompletion(t *testing.T) {
	fx := newEnrollmentFixture(t)
	enrollment, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)

	_, err = fx.svc.SubmitRating(context.Background(), bob(), enrollment.ID.String(), 5, "great")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotCompleted)
	assert.Equal(t, "Complete the course before leaving a review", apperrors.Message(err, ""))
	assert.Empty(t, fx.notifier.enqueued)
}

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	fx := newEnrollmentFixture(t)
	enrollment, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)
	_, err = fx.svc.UpdateProgress(context.Background(), bob(), enrollment.ID.String(), 100)
	require.NoError(t, err)

	for _, rating := range []int{0, 6, -1} {
		_, err = fx.svc.SubmitRating(context.Background(), bob(), enrollment.ID.String(), rating, "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidRating)
		assert.Equal(t, "Rating must be between 1 and 5", apperrors.Message(err, ""))
	}

	// A rejected rating leaves the record unmodified.
	stored := fx.store.enrollments[enrollment.ID]
	assert.Nil(t, stored.Rating)
	assert.Empty(t, fx.notifier.enqueued)
}

func TestSubmitRatingStoresAndNotifies(t *testing.T) {
	fx := newEnrollmentFixture(t)
	enrollment, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)
	_, err = fx.svc.UpdateProgress(context.Background(), bob(), enrollment.ID.String(), 100)
	require.NoError(t, err)

	updated, err := fx.svc.SubmitRating(context.Background(), bob(), enrollment.ID.String(), 5, "great course")
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)
	assert.Equal(t, "great course", updated.Review)
	assert.Equal(t, []uuid.UUID{fx.courseID}, fx.notifier.enqueued)
}

func TestListMineEnrichesWithCourses(t *testing.T) {
	fx := newEnrollmentFixture(t)
	_, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)

	enriched, err := fx.svc.ListMine(context.Background(), bob())
	require.NoError(t, err)
	require.Len(t, enriched, 1)
	require.NotNil(t, enriched[0].Course)
	assert.Equal(t, "Go Basics", enriched[0].Course.Title)
}

func TestListMineKeepsEnrollmentWhenCourseDeleted(t *testing.T) {
	fx := newEnrollmentFixture(t)
	_, _, err := fx.svc.Enroll(context.Background(), bob(), fx.courseID.String())
	require.NoError(t, err)

	delete(fx.courses.courses, fx.courseID)

	enriched, err := fx.svc.ListMine(context.Background(), bob())
	require.NoError(t, err)
	require.Len(t, enriched, 1)
	assert.Nil(t, enriched[0].Course)
}

func TestListMineEmpty(t *testing.T) {
	fx := newEnrollmentFixture(t)

	enriched, err := fx.svc.ListMine(context.Background(), bob())
	require.NoError(t, err)
	assert.NotNil(t, enriched)
	assert.Empty(t, enriched)
}

func TestRatingsSummaryNeverReturnsNilReviews(t *testing.T) {
	fx := newEnrollmentFixture(t)
	fx.store.average = 4.5
	fx.store.ratingCount = 2

	summary, err := fx.svc.Ratings(context.Background(), fx.courseID.String())
	require.NoError(t, err)
	assert.Equal(t, 4.5, summary.Average)
	assert.Equal(t, 2, summary.Count)
	assert.NotNil(t, summary.Reviews)
	assert.Empty(t, summary.Reviews)
}

func TestRatingsRejectsMalformedCourseID(t *testing.T) {
	fx := newEnrollmentFixture(t)

	_, err := fx.svc.Ratings(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
