package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/backend/internal/app/controllers"
	"github.com/coursehub/backend/internal/app/models/dto"
	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/pkg/apperrors"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	healthController *controllers.HealthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse("Method not allowed"))
	})
	router.NoRoute(func(c *gin.Context) {
		middleware.HandleAPIError(c, apperrors.NewNotFoundError("Not found"))
	})

	router.GET("/ping", healthController.Ping)

	api := router.Group("/api")

	api.GET("/health", healthController.Health)

	courses := api.Group("/courses")
	{
		courses.GET("", authMiddleware.OptionalAuth(), courseController.ListCourses)
		courses.GET("/count", courseController.CountCourses)
		courses.GET("/mine", authMiddleware.RequireAuth(), courseController.ListMyCourses)
		courses.GET("/:id", authMiddleware.OptionalAuth(), courseController.GetCourse)
		courses.GET("/:id/ratings", enrollmentController.GetCourseRatings)
		courses.POST("", authMiddleware.RequireAuth(), courseController.CreateCourse)
		courses.PUT("/:id", authMiddleware.RequireAuth(), courseController.UpdateCourse)
		courses.DELETE("/:id", authMiddleware.RequireAuth(), courseController.DeleteCourse)
	}

	enrollments := api.Group("/enrollments")
	{
		enrollments.GET("", authMiddleware.OptionalAuth(), enrollmentController.ListRecentEnrollments)
		enrollments.POST("", authMiddleware.RequireAuth(), enrollmentController.CreateEnrollment)
		enrollments.GET("/mine", authMiddleware.RequireAuth(), enrollmentController.ListMyEnrollments)
		enrollments.GET("/status/:courseId", authMiddleware.OptionalAuth(), enrollmentController.GetEnrollmentStatus)
		enrollments.PATCH("/:id/progress", authMiddleware.RequireAuth(), enrollmentController.UpdateProgress)
		enrollments.POST("/:id/rating", authMiddleware.RequireAuth(), enrollmentController.SubmitRating)
	}
}
