package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/backend/internal/app/models"
	"github.com/coursehub/backend/internal/app/models/dto"
	"github.com/coursehub/backend/internal/pkg/apperrors"
	"github.com/coursehub/backend/internal/pkg/auth"
)

// fakeCourseStore is an in-memory courseStore
type fakeCourseStore struct {
	courses map[uuid.UUID]*models.Course
	deleted []uuid.UUID
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: map[uuid.UUID]*models.Course{}}
}

func (f *fakeCourseStore) List(_ context.Context, category string, _ int) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseStore) ListByInstructorEmail(_ context.Context, email string) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if NormalizeEmail(c.Instructor.Email) == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = uuid.New()
	stored := *course
	f.courses[course.ID] = &stored
	return nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	stored := *course
	f.courses[course.ID] = &stored
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCourseStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.courses)), nil
}

func alice() *auth.Identity {
	return &auth.Identity{Email: "Alice@Example.com", Name: "Alice", Picture: "https://example.com/alice.png"}
}

func TestCreateCourseRequiresTitle(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), zerolog.Nop())

	_, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{Title: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Title is required", apperrors.Message(err, ""))
}

func TestCreateCourseOwnerComesFromIdentity(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())

	mallory := "mallory@evil.com"
	course, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{
		Title:      "Go Basics",
		Instructor: &dto.InstructorPayload{Email: &mallory},
	})
	require.NoError(t, err)

	// The body cannot claim ownership for someone else, and the stored email
	// is normalized.
	assert.Equal(t, "alice@example.com", course.Instructor.Email)
	assert.Equal(t, "Alice", course.Instructor.Name)
	assert.Equal(t, "https://example.com/alice.png", course.Instructor.PhotoURL)
}

func TestCreateCourseInstructorOverrides(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), zerolog.Nop())

	name := "Dr. Alice"
	photo := "https://example.com/custom.png"
	course, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{
		Title:      "Go Basics",
		Instructor: &dto.InstructorPayload{Name: &name, PhotoURL: &photo},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Alice", course.Instructor.Name)
	assert.Equal(t, photo, course.Instructor.PhotoURL)
}

func TestGetCourseInvalidID(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), zerolog.Nop())

	_, err := svc.Get(context.Background(), "not-a-valid-id")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Invalid course ID", apperrors.Message(err, ""))
}

func TestGetCourseMissing(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore(), zerolog.Nop())

	_, err := svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUpdateCourseOwnershipIsCaseInsensitive(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())

	created, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)

	title := "Go Basics, 2nd Edition"
	caller := &auth.Identity{Email: "ALICE@example.COM"}
	updated, err := svc.Update(context.Background(), caller, created.ID.String(), &dto.UpdateCourseRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestUpdateCourseByNonOwnerForbidden(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())

	created, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)

	title := "Hijacked"
	intruder := &auth.Identity{Email: "bob@example.com"}
	_, err = svc.Update(context.Background(), intruder, created.ID.String(), &dto.UpdateCourseRequest{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The record must be untouched after a rejected update.
	stored, err := svc.Get(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", stored.Title)
}

func TestUpdateCourseMergesOnlyProvidedFields(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())

	created, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{
		Title:       "Go Basics",
		Price:       49.99,
		Category:    "programming",
		Description: "An introduction.",
	})
	require.NoError(t, err)

	price := 59.99
	updated, err := svc.Update(context.Background(), alice(), created.ID.String(), &dto.UpdateCourseRequest{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 59.99, updated.Price)
	assert.Equal(t, "Go Basics", updated.Title)
	assert.Equal(t, "programming", updated.Category)
	assert.Equal(t, "An introduction.", updated.Description)
}

func TestUpdateCourseNormalizesPatchedInstructorEmail(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())

	created, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)

	email := "  New.Owner@Example.COM "
	updated, err := svc.Update(context.Background(), alice(), created.ID.String(), &dto.UpdateCourseRequest{
		Instructor: &dto.InstructorPayload{Email: &email},
	})
	require.NoError(t, err)
	assert.Equal(t, "new.owner@example.com", updated.Instructor.Email)
}

func TestDeleteCourseByNonOwnerForbidden(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())

	created, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)

	intruder := &auth.Identity{Email: "bob@example.com"}
	err = svc.Delete(context.Background(), intruder, created.ID.String())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, store.deleted)
}

func TestDeleteCourseByOwner(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())

	created, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), alice(), created.ID.String()))
	assert.Equal(t, []uuid.UUID{created.ID}, store.deleted)
}

func TestListMineUsesNormalizedEmail(t *testing.T) {
	store := newFakeCourseStore()
	svc := NewCourseService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), alice(), &dto.CreateCourseRequest{Title: "Go Basics"})
	require.NoError(t, err)

	caller := &auth.Identity{Email: " ALICE@EXAMPLE.COM "}
	mine, err := svc.ListMine(context.Background(), caller)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
