package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/coursehub/backend/internal/app/models"
	appRepos "github.com/coursehub/backend/internal/app/repositories"
)

// CreateDefaultCourses fills an empty catalog with a starter set of courses
// so a fresh deployment has something to render. A non-empty catalog is left
// alone.
func CreateDefaultCourses(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	courseRepo := appRepos.NewCourseRepository(dbPool)

	count, err := courseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Debug().Int64("courses", count).Msg("Catalog not empty, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding default course catalog...")
	for _, course := range defaultCourses() {
		if err := courseRepo.Create(ctx, course); err != nil {
			return err
		}
	}
	lgr.Info().Int("courses", len(defaultCourses())).Msg("Default course catalog seeded")
	return nil
}

func defaultCourses() []*appModels.Course {
	instructor := appModels.Instructor{
		Name:  "CourseHub Team",
		Email: "team@coursehub.dev",
	}

	return []*appModels.Course{
		{
			Title:       "Go for Backend Developers",
			Price:       49.99,
			Duration:    "12h",
			Category:    "programming",
			Description: "Build production HTTP services in Go, from routing to deployment.",
			IsFeatured:  true,
			Instructor:  instructor,
		},
		{
			Title:       "PostgreSQL Fundamentals",
			Price:       39.99,
			Duration:    "8h",
			Category:    "databases",
			Description: "Schema design, indexing and query tuning for application developers.",
			Instructor:  instructor,
		},
		{
			Title:       "REST API Design",
			Price:       29.99,
			Duration:    "6h",
			Category:    "programming",
			Description: "Resource modeling, error contracts and versioning for HTTP APIs.",
			Instructor:  instructor,
		},
	}
}
