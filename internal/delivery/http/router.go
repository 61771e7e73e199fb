package http

import (
	"net/http"
	"os"
	"strings"
	"time"

	"lingolearn-backend/internal/domain"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/oauth", h.OAuthLogin)
		auth.POST("/forgot-password", h.ForgotPassword)
	}

	users := api.Group("/users", AuthMiddleware())
	{
		users.GET("", AuthMiddleware(domain.RoleAdmin), h.GetAllUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	lessons := api.Group("/lessons", AuthMiddleware())
	{
		lessons.GET("", h.ListLessons)
		lessons.POST("", AuthMiddleware(domain.RoleTeacher, domain.RoleAdmin), h.CreateLesson)
		lessons.PUT("/:id", AuthMiddleware(domain.RoleTeacher, domain.RoleAdmin), h.UpdateLesson)
		lessons.DELETE("/:id", AuthMiddleware(domain.RoleTeacher, domain.RoleAdmin), h.DeleteLesson)

		lessons.POST("/:id/watch", AuthMiddleware(domain.RoleStudent), h.MarkLessonWatched)

		lessons.GET("/:id/feedback", h.ListFeedback)
		lessons.POST("/:id/feedback", h.CreateFeedback)
	}

	feedback := api.Group("/feedback", AuthMiddleware())
	{
		feedback.PUT("/:id", h.UpdateFeedback)
		feedback.DELETE("/:id", h.DeleteFeedback)
		feedback.POST("/:id/replies", h.CreateReply)
		feedback.PUT("/:id/replies/:replyId", h.UpdateReply)
		feedback.DELETE("/:id/replies/:replyId", h.DeleteReply)
	}

	announcements := api.Group("/announcements", AuthMiddleware())
	{
		announcements.GET("", h.ListAnnouncements)
		announcements.POST("", AuthMiddleware(domain.RoleTeacher, domain.RoleAdmin), h.CreateAnnouncement)
		announcements.PUT("/:id", AuthMiddleware(domain.RoleTeacher, domain.RoleAdmin), h.UpdateAnnouncement)
		announcements.DELETE("/:id", AuthMiddleware(domain.RoleTeacher, domain.RoleAdmin), h.DeleteAnnouncement)
	}

	assignments := api.Group("/assignments", AuthMiddleware())
	{
		assignments.GET("", h.ListAssignments)
		assignments.GET("/:id", h.GetAssignment)
		assignments.POST("", AuthMiddleware(domain.RoleTeacher), h.CreateAssignment)
		assignments.PUT("/:id", AuthMiddleware(domain.RoleTeacher), h.UpdateAssignment)
		assignments.DELETE("/:id", AuthMiddleware(domain.RoleTeacher), h.DeleteAssignment)

		assignments.PATCH("/:id/approve", AuthMiddleware(domain.RoleAdmin), h.ApproveAssignment)
		assignments.PATCH("/:id/reject", AuthMiddleware(domain.RoleAdmin), h.RejectAssignment)

		assignments.POST("/:id/submissions", AuthMiddleware(domain.RoleStudent), h.SubmitAssignment)
		assignments.GET("/:id/submissions", AuthMiddleware(domain.RoleTeacher), h.ListAssignmentSubmissions)
		assignments.GET("/:id/submissions/me", AuthMiddleware(domain.RoleStudent), h.GetOwnAssignmentSubmission)
	}

	submissions := api.Group("/submissions", AuthMiddleware(domain.RoleTeacher))
	{
		submissions.PATCH("/:submissionId/mark", h.MarkSubmission)
	}

	quizzes := api.Group("/quizzes", AuthMiddleware())
	{
		quizzes.GET("", h.ListQuizzes)
		quizzes.GET("/:id", h.GetQuiz)
		quizzes.POST("", AuthMiddleware(domain.RoleTeacher), h.CreateQuiz)
		quizzes.PUT("/:id", AuthMiddleware(domain.RoleTeacher), h.UpdateQuiz)
		quizzes.DELETE("/:id", AuthMiddleware(domain.RoleTeacher), h.DeleteQuiz)

		quizzes.POST("/:id/questions", AuthMiddleware(domain.RoleTeacher), h.AddQuestion)

		quizzes.PATCH("/:id/approve", AuthMiddleware(domain.RoleAdmin), h.ApproveQuiz)
		quizzes.PATCH("/:id/reject", AuthMiddleware(domain.RoleAdmin), h.RejectQuiz)

		quizzes.POST("/:id/submissions", AuthMiddleware(domain.RoleStudent), h.SubmitQuiz)
		quizzes.GET("/:id/submissions", AuthMiddleware(domain.RoleTeacher, domain.RoleAdmin), h.ListQuizSubmissions)
		quizzes.GET("/:id/submissions/me", AuthMiddleware(domain.RoleStudent), h.GetOwnQuizSubmission)
	}

	questions := api.Group("/questions", AuthMiddleware(domain.RoleTeacher))
	{
		questions.PUT("/:questionId", h.UpdateQuestion)
		questions.DELETE("/:questionId", h.DeleteQuestion)
	}

	progress := api.Group("/progress", AuthMiddleware())
	{
		progress.GET("/me", AuthMiddleware(domain.RoleStudent), h.GetOwnProgress)
		progress.GET("/leaderboard", h.Leaderboard)
		progress.POST("/reset-weekly", AuthMiddleware(domain.RoleAdmin), h.ResetWeeklyPoints)
	}

	return r
}

func allowedOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		return strings.Split(v, ",")
	}
	return []string{"http://localhost:3000"}
}
