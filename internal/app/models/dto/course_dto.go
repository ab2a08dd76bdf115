package dto

import "github.com/coursehub/backend/internal/app/models"

// InstructorPayload is the instructor block a client may send when creating
// or updating a course. The email is always overwritten from the caller's
// identity on create and normalized on update.
type InstructorPayload struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	PhotoURL *string `json:"photoURL"`
}

// CreateCourseRequest is the body of POST /api/courses
type CreateCourseRequest struct {
	Title       string             `json:"title"`
	ImageURL    string             `json:"imageUrl"`
	Price       float64            `json:"price"`
	Duration    string             `json:"duration"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	IsFeatured  bool               `json:"isFeatured"`
	Instructor  *InstructorPayload `json:"instructor"`
}

// UpdateCourseRequest is the body of PUT /api/courses/:id. Absent fields are
// left untouched (merge semantics), hence the pointers.
type UpdateCourseRequest struct {
	Title       *string            `json:"title"`
	ImageURL    *string            `json:"imageUrl"`
	Price       *float64           `json:"price"`
	Duration    *string            `json:"duration"`
	Category    *string            `json:"category"`
	Description *string            `json:"description"`
	IsFeatured  *bool              `json:"isFeatured"`
	Instructor  *InstructorPayload `json:"instructor"`
}

// CourseListResponse wraps the cached course listing
type CourseListResponse struct {
	Courses []*models.Course `json:"courses"`
}

// CountResponse is the body of GET /api/courses/count
type CountResponse struct {
	Count int64 `json:"count"`
}

// RatingsSummaryResponse is the body of GET /api/courses/:id/ratings
type RatingsSummaryResponse struct {
	Average   float64               `json:"average"`
	Count     int                   `json:"count"`
	Breakdown map[int]int           `json:"breakdown"`
	Reviews   []models.CourseReview `json:"reviews"`
}
