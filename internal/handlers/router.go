package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nclex-prep/quiz-service/internal/repositories"
	"github.com/nclex-prep/quiz-service/internal/services"
	"github.com/nclex-prep/quiz-service/internal/utils"
)

type HandlerManager struct {
	quizHandler   *QuizHandler
	courseHandler *CourseHandler
	repo          repositories.Repository
}

func NewHandlerManager(
	quizService services.QuizService,
	courseService services.CourseService,
	exportService services.ExportService,
	repo repositories.Repository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:   NewQuizHandler(quizService, exportService, logger),
		courseHandler: NewCourseHandler(courseService, quizService, logger),
		repo:          repo,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(gatewayIdentity())
	{
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/search", hm.quizHandler.SearchQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
			quizzes.POST("/:id/publish", hm.quizHandler.PublishQuiz)
			quizzes.POST("/:id/archive", hm.quizHandler.ArchiveQuiz)
			quizzes.GET("/:id/export", hm.quizHandler.ExportQuiz)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.GET("/:id/modules", hm.courseHandler.GetCourseModules)
			courses.GET("/:id/videos", hm.courseHandler.GetCourseVideos)
			courses.GET("/:id/quizzes", hm.courseHandler.GetCourseQuizzes)
			courses.GET("/:id/quizzes/stats", hm.courseHandler.GetCourseQuizStats)
		}
	}
}

// gatewayIdentity trusts the user identity the API gateway injects. Actual
// authentication happens upstream.
func gatewayIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("X-User-ID"); header != "" {
			if id, err := strconv.ParseUint(header, 10, 32); err == nil {
				c.Set("user_id", uint(id))
			}
		}
		c.Next()
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
