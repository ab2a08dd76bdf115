package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is a student's relationship to one course. At most one exists
// per (student email, course), enforced by a unique index. Rating and review
// may only be set once progress reaches 100.
type Enrollment struct {
	ID          uuid.UUID  `json:"id"`
	UserEmail   string     `json:"userEmail"`
	CourseID    uuid.UUID  `json:"courseId"`
	Progress    int        `json:"progress"`
	Rating      *int       `json:"rating,omitempty"`
	Review      string     `json:"review"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Completed reports whether the student finished the course.
func (e *Enrollment) Completed() bool {
	return e.Progress >= 100
}

// CourseReview is one public review row of a course's rating summary.
type CourseReview struct {
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	UserEmail string    `json:"userEmail"`
	UpdatedAt time.Time `json:"updatedAt"`
}
