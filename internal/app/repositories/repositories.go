package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories is the container of all data access objects
type Repositories struct {
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories creates all repositories over one shared pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
	}
}
