package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/backend/internal/app/models"
	"github.com/coursehub/backend/internal/app/models/dto"
	"github.com/coursehub/backend/internal/app/services"
	"github.com/coursehub/backend/internal/middleware"
	"github.com/coursehub/backend/internal/pkg/apperrors"
	"github.com/coursehub/backend/internal/pkg/logger"
	"github.com/coursehub/backend/internal/pkg/respcache"
)

const jsonContentType = "application/json; charset=utf-8"

// CourseController handles course catalog operations
type CourseController struct {
	courseService services.CourseService
	listCache     *respcache.Cache
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, listCache *respcache.Cache) *CourseController {
	return &CourseController{
		courseService: courseService,
		listCache:     listCache,
	}
}

// ListCourses handles the public course listing
// @Summary List courses
// @Description Retrieves the newest courses, optionally filtered by category. Responses are cached briefly.
// @Tags courses
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} dto.CourseListResponse "Courses retrieved successfully"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	category := ctx.Query("category")
	cacheKey := category
	if cacheKey == "" {
		cacheKey = "all"
	}

	if payload, ok := c.listCache.Get(cacheKey); ok {
		ctx.Header("X-Cache", "HIT")
		ctx.Data(http.StatusOK, jsonContentType, payload)
		return
	}
	ctx.Header("X-Cache", "MISS")

	if !middleware.DatabaseAvailable(ctx) {
		ctx.JSON(http.StatusOK, dto.CourseListResponse{Courses: []*models.Course{}})
		return
	}

	courses, err := c.courseService.List(ctx.Request.Context(), category)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	response := dto.CourseListResponse{Courses: courses}
	if payload, err := json.Marshal(response); err == nil {
		c.listCache.Set(cacheKey, payload)
		ctx.Data(http.StatusOK, jsonContentType, payload)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// GetCourse handles retrieving one course by id
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrDatabaseUnavailable)
		return
	}

	course, err := c.courseService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// ListMyCourses handles retrieving the caller's own courses
// @Summary List my courses
// @Description Retrieves every course whose instructor email matches the caller.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Course "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /courses/mine [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		ctx.JSON(http.StatusOK, []*models.Course{})
		return
	}

	courses, err := c.courseService.ListMine(ctx.Request.Context(), middleware.IdentityFrom(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	ctx.JSON(http.StatusOK, courses)
}

// CountCourses handles the public course count
// @Summary Count courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CountResponse "Count retrieved successfully"
// @Router /courses/count [get]
func (c *CourseController) CountCourses(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		ctx.JSON(http.StatusOK, dto.CountResponse{Count: 0})
		return
	}

	count, err := c.courseService.Count(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// CreateCourse handles course creation
// @Summary Create a course
// @Description Creates a course owned by the caller. The instructor email always comes from the token.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} models.Course "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Title is required"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrDatabaseUnavailable)
		return
	}

	// A malformed body is treated as an empty one; field validation decides.
	var req dto.CreateCourseRequest
	_ = ctx.ShouldBindJSON(&req)

	course, err := c.courseService.Create(ctx.Request.Context(), middleware.IdentityFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.listCache.Flush()
	ctx.JSON(http.StatusCreated, course)
}

// UpdateCourse handles course updates by the owning instructor
// @Summary Update a course
// @Description Merges the provided fields onto the course. Only the owning instructor may update.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} models.Course "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrDatabaseUnavailable)
		return
	}

	var req dto.UpdateCourseRequest
	_ = ctx.ShouldBindJSON(&req)

	course, err := c.courseService.Update(ctx.Request.Context(), middleware.IdentityFrom(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.listCache.Flush()
	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse handles course deletion by the owning instructor
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204 "Course deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if !middleware.DatabaseAvailable(ctx) {
		middleware.HandleAPIError(ctx, apperrors.ErrDatabaseUnavailable)
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), middleware.IdentityFrom(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.listCache.Flush()
	logger.Debug().Str("courseId", ctx.Param("id")).Msg("Course list cache flushed")
	ctx.Status(http.StatusNoContent)
}
