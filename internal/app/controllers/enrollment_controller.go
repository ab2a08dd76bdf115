package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/backend/internal/app/models"
	"github.com/coursehub/backend/internal/app/models/dto"
	"github.com/coursehub/backend/internal/app/services"
	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/pkg/apperrors"
	"github.com/coursehub/backend/internal/pkg/respcache"
)

// EnrollmentController handles enrollment and rating operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	recentCache       *respcache.Cache
	ratingsCache      *respcache.Cache
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, recentCache, ratingsCache *respcache.Cache) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		recentCache:       recentCache,
		ratingsCache:      ratingsCache,
	}
}

// ListRecentEnrollments handles the recent-enrollments feed
// @Summary List recent enrollments
// @Description Retrieves the most recent enrollments across all students. Responses are cached briefly.
// @Tags enrollments
// @Produce json
// @Param limit query int false "Maximum rows (capped at 25)" default(10)
// @Success 200 {object} dto.RecentEnrollmentsResponse "Enrollments retrieved successfully"
// @Router /enrollments [get]
func (c *EnrollmentController) ListRecentEnrollments(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	if limit <= 0 {
		limit = services.RecentLimitDefault
	}
	if limit > services.RecentLimitMax {
		limit = services.RecentLimitMax
	}
	cacheKey := strconv.Itoa(limit)

	if payload, ok := c.recentCache.Get(cacheKey); ok {
		ctx.Header("X-Cache", "HIT")
		ctx.Data(http.StatusOK, jsonContentType, payload)
		return
	}
	ctx.Header("X-Cache", "MISS")

	if !middleware.DatabaseAvailable(ctx) {
		ctx.JSON(http.StatusOK, dto.RecentEnrollmentsResponse{Enrollments: []*models.Enrollment{}})
		return
	}

	enrollments, err := c.enrollmentService.ListRecent(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if enrollments == nil {
		enrollments = []*models.Enrollment{}
	}

	response := dto.RecentEnrollmentsResponse{Enrollments: enrollments, Count: len(enrollments)}
	if payload, err := json.Marshal(response); err == nil {
		c.recentCache.Set(cacheKey, payload)
		ctx.Data(http.StatusOK, jsonContentType, payload)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// CreateEnrollment handles enrolling the caller into a course
// @Summary Enroll in a course
// @Description Enrolls the caller into the given course. Enrolling twice returns the existing enrollment.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Course to enroll in"
// @Success 201 {object} models.Enrollment "Enrollment created"
// @Success 200 {object} models.Enrollment "Already enrolled"
// @Failure 400 {object} dto.ErrorResponse "courseId is required"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrDatabaseUnavailable)
		return
	}

	var req dto.CreateEnrollmentRequest
	_ = ctx.ShouldBindJSON(&req)

	enrollment, created, err := c.enrollmentService.Enroll(ctx.Request.Context(), middleware.IdentityFrom(ctx), req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.recentCache.Flush()

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, enrollment)
}

// ListMyEnrollments handles retrieving the caller's enrollments
// @Summary List my enrollments
// @Description Retrieves the caller's enrollments, each enriched with its course. A deleted course appears as null.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EnrollmentWithCourse "Enrollments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /enrollments/mine [get]
func (c *EnrollmentController) ListMyEnrollments(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		ctx.JSON(http.StatusOK, []*dto.EnrollmentWithCourse{})
		return
	}

	enrollments, err := c.enrollmentService.ListMine(ctx.Request.Context(), middleware.IdentityFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollments)
}

// GetEnrollmentStatus handles the per-course enrollment check
// @Summary Check enrollment status
// @Description Reports whether the caller is enrolled in the course. Anonymous callers are never enrolled.
// @Tags enrollments
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.EnrollmentStatusResponse "Status retrieved successfully"
// @Router /enrollments/status/{courseId} [get]
func (c *EnrollmentController) GetEnrollmentStatus(ctx *gin.Context) {
	identity := middleware.IdentityFrom(ctx)
	email := ""
	if identity != nil {
		email = identity.Email
	}

	if email == "" || !middleware.DatabaseAvailable(ctx) {
		ctx.JSON(http.StatusOK, dto.EnrollmentStatusResponse{Enrolled: false})
		return
	}

	enrolled, err := c.enrollmentService.Status(ctx.Request.Context(), email, ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.EnrollmentStatusResponse{Enrolled: enrolled})
}

// UpdateProgress handles progress updates on the caller's enrollment
// @Summary Update enrollment progress
// @Description Updates course progress, clamped into [0,100]. Reaching 100 stamps the completion time once.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param request body dto.UpdateProgressRequest true "New progress"
// @Success 200 {object} models.Enrollment "Enrollment updated"
// @Failure 400 {object} dto.ErrorResponse "Progress is required"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /enrollments/{id}/progress [patch]
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrDatabaseUnavailable)
		return
	}

	var req dto.UpdateProgressRequest
	_ = ctx.ShouldBindJSON(&req)
	// An absent progress field is not a reset to 0.
	if req.Progress == nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Progress is required"))
		return
	}

	enrollment, err := c.enrollmentService.UpdateProgress(ctx.Request.Context(), middleware.IdentityFrom(ctx), ctx.Param("id"), *req.Progress)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollment)
}

// SubmitRating handles rating a completed course
// @Summary Rate a completed course
// @Description Stores a rating and optional review on the caller's completed enrollment and schedules a course rating recompute.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Enrollment ID"
// @Param request body dto.SubmitRatingRequest true "Rating and review"
// @Success 200 {object} models.Enrollment "Rating stored"
// @Failure 400 {object} dto.ErrorResponse "Rating must be between 1 and 5"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /enrollments/{id}/rating [post]
func (c *EnrollmentController) SubmitRating(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrDatabaseUnavailable)
		return
	}

	var req dto.SubmitRatingRequest
	_ = ctx.ShouldBindJSON(&req)

	enrollment, err := c.enrollmentService.SubmitRating(ctx.Request.Context(), middleware.IdentityFrom(ctx), ctx.Param("id"), req.Rating, req.Review)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The aggregate changes shortly; stale summaries would outlive the write.
	c.ratingsCache.Invalidate(enrollment.CourseID.String())
	ctx.JSON(http.StatusOK, enrollment)
}

// GetCourseRatings handles the per-course rating summary
// @Summary Get course ratings
// @Description Retrieves the rating average, count, per-star breakdown and recent reviews of a course. Responses are cached briefly.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.RatingsSummaryResponse "Summary retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Router /courses/{id}/ratings [get]
func (c *EnrollmentController) GetCourseRatings(ctx *gin.Context) {
	courseID := ctx.Param("id")

	if payload, ok := c.ratingsCache.Get(courseID); ok {
		ctx.Header("X-Cache", "HIT")
		ctx.Data(http.StatusOK, jsonContentType, payload)
		return
	}
	ctx.Header("X-Cache", "MISS")

	if !middleware.DatabaseAvailable(ctx) {
		ctx.JSON(http.StatusOK, dto.RatingsSummaryResponse{
			Breakdown: map[int]int{},
			Reviews:   []models.CourseReview{},
		})
		return
	}

	summary, err := c.enrollmentService.Ratings(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if payload, err := json.Marshal(summary); err == nil {
		c.ratingsCache.Set(courseID, payload)
		ctx.Data(http.StatusOK, jsonContentType, payload)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
