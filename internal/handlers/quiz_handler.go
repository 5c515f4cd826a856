package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nclex-prep/quiz-service/internal/services"
	"github.com/nclex-prep/quiz-service/internal/utils"
)

type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	exportService services.ExportService
}

func NewQuizHandler(
	quizService services.QuizService,
	exportService services.ExportService,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger),
		quizService:   quizService,
		exportService: exportService,
	}
}

// CreateQuiz creates a new quiz
// @Summary Create quiz
// @Description Creates a new quiz draft for a course
// @Tags quizzes
// @Accept json
// @Produce json
// @Param quiz body services.SaveQuizRequest true "Quiz data"
// @Success 201 {object} services.QuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	h.LogRequest(c, "Creating quiz")

	var req services.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// GetQuiz retrieves a quiz by ID
// @Summary Get quiz
// @Description Retrieves a quiz with its full question list
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} services.QuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// UpdateQuiz replaces a quiz document
// @Summary Update quiz
// @Description Replaces the quiz document with the submitted one
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path uint true "Quiz ID"
// @Param quiz body services.SaveQuizRequest true "Quiz data"
// @Success 200 {object} services.QuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Updating quiz", "quiz_id", id)

	var req services.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz soft deletes a quiz
// @Summary Delete quiz
// @Description Soft deletes a quiz
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting quiz", "quiz_id", id)

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Quiz deleted successfully", nil)
}

// ListQuizzes lists quizzes with filtering and pagination
// @Summary List quizzes
// @Description Lists quizzes, filterable by course, module and status
// @Tags quizzes
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param course_id query uint false "Course filter"
// @Param status query string false "Status filter"
// @Success 200 {object} services.QuizListResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	filters := h.parseQuizFilters(c)

	quizzes, err := h.quizService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// SearchQuizzes searches quizzes by title
// @Summary Search quizzes
// @Description Searches quizzes by title text
// @Tags quizzes
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} services.QuizListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes/search [get]
func (h *QuizHandler) SearchQuizzes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Search query is required",
		})
		return
	}

	quizzes, err := h.quizService.Search(c.Request.Context(), query, h.parseQuizFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// PublishQuiz transitions a draft quiz to published
// @Summary Publish quiz
// @Description Validates and publishes a draft quiz
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} services.QuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes/{id}/publish [post]
func (h *QuizHandler) PublishQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Publishing quiz", "quiz_id", id)

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	quiz, err := h.quizService.Publish(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ArchiveQuiz transitions a published quiz to archived
// @Summary Archive quiz
// @Description Archives a published quiz
// @Tags quizzes
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} services.QuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes/{id}/archive [post]
func (h *QuizHandler) ArchiveQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Archiving quiz", "quiz_id", id)

	userID := h.currentUserID(c)
	if userID == 0 {
		return
	}

	quiz, err := h.quizService.Archive(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ExportQuiz downloads the quiz with its answer key as an xlsx file
// @Summary Export quiz
// @Description Exports the quiz questions and answer key as an Excel file
// @Tags quizzes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Quiz ID"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /quizzes/{id}/export [get]
func (h *QuizHandler) ExportQuiz(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Exporting quiz", "quiz_id", id)

	data, filename, err := h.exportService.ExportQuizToExcel(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
