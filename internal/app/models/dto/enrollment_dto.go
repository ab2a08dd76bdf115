package dto

import "github.com/coursehub/backend/internal/app/models"

// CreateEnrollmentRequest is the body of POST /api/enrollments
type CreateEnrollmentRequest struct {
	CourseID string `json:"courseId"`
}

// UpdateProgressRequest is the body of PATCH /api/enrollments/:id/progress.
// Progress is a pointer so that an absent field can be told apart from 0.
type UpdateProgressRequest struct {
	Progress *int `json:"progress"`
}

// SubmitRatingRequest is the body of POST /api/enrollments/:id/rating
type SubmitRatingRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// EnrollmentWithCourse is one row of GET /api/enrollments/mine: the
// enrollment enriched with its course's public fields, or a null course when
// the course no longer exists.
type EnrollmentWithCourse struct {
	models.Enrollment
	Course *models.Course `json:"course"`
}

// RecentEnrollmentsResponse is the body of GET /api/enrollments
type RecentEnrollmentsResponse struct {
	Enrollments []*models.Enrollment `json:"enrollments"`
	Count       int                  `json:"count"`
}

// EnrollmentStatusResponse is the body of GET /api/enrollments/status/:courseId
type EnrollmentStatusResponse struct {
	Enrolled bool `json:"enrolled"`
}
