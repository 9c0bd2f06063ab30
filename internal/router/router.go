package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/conceptlens/conceptlens-backend/internal/config"
	"github.com/conceptlens/conceptlens-backend/internal/handler"
	"github.com/conceptlens/conceptlens-backend/internal/middleware"
	"github.com/conceptlens/conceptlens-backend/internal/response"
	"github.com/conceptlens/conceptlens-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	Analytics     *handler.AnalyticsHandler
	Misconception *handler.MisconceptionHandler
	Exam          *handler.ExamHandler
	Class         *handler.ClassHandler
	StudentPortal *handler.StudentPortalHandler
	Notification  *handler.NotificationHandler
	WS            *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// CORS: if AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Auth group (public, rate limited).
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// Analytics group (professor only).
	analytics := router.Group("/api/v1/analytics")
	analytics.Use(middleware.RequireProfessorJWT(authService))
	{
		analytics.GET("/dashboard/stats", handlers.Analytics.DashboardStats)
		analytics.GET("/reports/trends", handlers.Analytics.Trends)
		analytics.GET("/assessments", handlers.Analytics.Assessments)

		analytics.GET("/misconceptions", handlers.Misconception.List)
		analytics.GET("/misconceptions/grouped", handlers.Analytics.GroupedMisconceptions)
		analytics.GET("/misconceptions/:id", handlers.Misconception.Get)
		analytics.PUT("/misconceptions/:id/status", handlers.Misconception.UpdateStatus)
	}

	// Teacher review group (professor only).
	teacher := router.Group("/api/v1/teacher")
	teacher.Use(middleware.RequireProfessorJWT(authService))
	{
		teacher.POST("/misconceptions/:id/validate", handlers.Misconception.Validate)
	}

	// Exam management group (professor only).
	exams := router.Group("/api/v1/exams")
	exams.Use(middleware.RequireProfessorJWT(authService))
	{
		exams.POST("", handlers.Exam.Create)
		exams.GET("", handlers.Exam.List)
		exams.GET("/:id", handlers.Exam.Get)
		exams.PUT("/:id", handlers.Exam.Update)
		exams.DELETE("/:id", handlers.Exam.Delete)
		exams.PUT("/:id/validate", handlers.Exam.SetValidated)
		exams.GET("/:id/students", handlers.Exam.AttemptedStudents)
	}

	// Class management group (professor only).
	classes := router.Group("/api/v1/classes")
	classes.Use(middleware.RequireProfessorJWT(authService))
	{
		classes.POST("", handlers.Class.Create)
		classes.GET("", handlers.Class.List)
		classes.GET("/:id", handlers.Class.Get)
		classes.DELETE("/:id", handlers.Class.Delete)
		classes.GET("/:id/students", handlers.Class.Roster)
		classes.GET("/:id/requests", handlers.Class.PendingRequests)
		classes.POST("/requests/:request_id/approve", handlers.Class.Approve)
		classes.POST("/requests/:request_id/reject", handlers.Class.Reject)
	}

	// Student group.
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(middleware.RequireStudentJWT(authService))
	{
		studentAPI.GET("/classes", handlers.Class.List)
		studentAPI.POST("/classes/join", handlers.Class.Join)
		studentAPI.GET("/exams", handlers.StudentPortal.ListExams)
		studentAPI.POST("/exams/:id/responses", handlers.StudentPortal.SubmitResponses)
	}

	// Notifications (any authenticated user).
	notifications := router.Group("/api/v1/notifications")
	notifications.Use(middleware.RequireJWT(authService))
	{
		notifications.GET("", handlers.Notification.List)
		notifications.GET("/unread", handlers.Notification.UnreadCount)
		notifications.PUT("/:id/read", handlers.Notification.MarkRead)
	}

	// WebSocket group (token via ?token= query).
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireJWT(authService))
	{
		ws.GET("/notifications", handlers.WS.NotificationStream)
	}

	return router
}
