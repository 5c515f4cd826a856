package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nclex-prep/quiz-service/internal/services"
	"github.com/nclex-prep/quiz-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
	quizService   services.QuizService
}

func NewCourseHandler(
	courseService services.CourseService,
	quizService services.QuizService,
	logger utils.Logger,
) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
		quizService:   quizService,
	}
}

// ListCourses lists courses with pagination
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} services.CourseListResponse
// @Failure 500 {object} ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context(), h.parseCourseFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// GetCourse retrieves a course by ID
// @Summary Get course
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// GetCourseModules lists the modules of a course
// @Summary Get course modules
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {array} models.Module
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /courses/{id}/modules [get]
func (h *CourseHandler) GetCourseModules(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	modules, err := h.courseService.GetModules(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, modules)
}

// GetCourseVideos lists the videos of a course
// @Summary Get course videos
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {array} models.Video
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /courses/{id}/videos [get]
func (h *CourseHandler) GetCourseVideos(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	videos, err := h.courseService.GetVideos(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

// GetCourseQuizzes lists the quizzes attached to a course
// @Summary Get course quizzes
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} services.QuizListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /courses/{id}/quizzes [get]
func (h *CourseHandler) GetCourseQuizzes(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	quizzes, err := h.quizService.GetByCourse(c.Request.Context(), id, h.parseQuizFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// GetCourseQuizStats summarizes the quizzes attached to a course
// @Summary Get course quiz statistics
// @Tags courses
// @Produce json
// @Param id path uint true "Course ID"
// @Success 200 {object} repositories.QuizStats
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /courses/{id}/quizzes/stats [get]
func (h *CourseHandler) GetCourseQuizStats(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	stats, err := h.quizService.GetCourseStats(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
