package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mioraralevason/suivi-backend/internal/config"
	"github.com/mioraralevason/suivi-backend/internal/handler"
	"github.com/mioraralevason/suivi-backend/internal/middleware"
	"github.com/mioraralevason/suivi-backend/internal/model"
	"github.com/mioraralevason/suivi-backend/internal/response"
	"github.com/mioraralevason/suivi-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Assessment  *handler.AssessmentHandler
	Institution *handler.InstitutionHandler
	Country     *handler.CountryHandler
	Section     *handler.SectionHandler
	Question    *handler.QuestionHandler
	Rule        *handler.RuleHandler
	Threshold   *handler.ThresholdHandler
	User        *handler.UserHandler
	Dashboard   *handler.DashboardHandler
	System      *handler.SystemHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
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

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Institution Group (JWT + Single Device) ────────────────────
	institutionAPI := router.Group("/api/v1/institution")
	institutionAPI.Use(
		middleware.RequireInstitutionJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		institutionAPI.GET("/form", handlers.Assessment.GetForm)
		institutionAPI.PUT("/answers", handlers.Assessment.SaveAnswer)
		institutionAPI.GET("/axis-scores", handlers.Assessment.AxisScores)
		institutionAPI.GET("/question-scores", handlers.Assessment.QuestionScores)
		institutionAPI.POST("/submit", handlers.Assessment.Submit)
		institutionAPI.GET("/assessments", handlers.Assessment.History)
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/institution/assessment",
			middleware.CheckSingleDeviceSession(authService),
			handlers.WS.AssessmentStream,
		)
		ws.GET("/admin/dashboard", handlers.WS.DashboardStream)
	}

	// ─── 4. Admin Group (JWT + RBAC) ───────────────────────────────────
	// Superviseurs read everything; structural writes and user
	// management stay admin-only.
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireJWT(authService),
		middleware.RequireRole(model.RoleAdmin, model.RoleSuperviseur),
	)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	{
		// Questionnaire structure
		adminAPI.GET("/sections", handlers.Section.List)
		adminAPI.POST("/sections", adminOnly, handlers.Section.Create)
		adminAPI.PUT("/sections/:id", adminOnly, handlers.Section.Update)
		adminAPI.DELETE("/sections/:id", adminOnly, handlers.Section.Delete)

		adminAPI.POST("/sub-sections", adminOnly, handlers.Section.CreateSubSection)
		adminAPI.PUT("/sub-sections/:id", adminOnly, handlers.Section.UpdateSubSection)
		adminAPI.DELETE("/sub-sections/:id", adminOnly, handlers.Section.DeleteSubSection)
		adminAPI.GET("/sub-sections/:id/questions", handlers.Question.ListBySubSection)

		// Questions
		adminAPI.GET("/questions/:id", handlers.Question.Get)
		adminAPI.POST("/questions", adminOnly, handlers.Question.Create)
		adminAPI.PUT("/questions/:id", adminOnly, handlers.Question.Update)
		adminAPI.DELETE("/questions/:id", adminOnly, handlers.Question.Delete)

		// Scoring rules
		adminAPI.GET("/questions/:id/rules", handlers.Rule.ListByQuestion)
		adminAPI.PUT("/questions/:id/rules/order", adminOnly, handlers.Rule.Reorder)
		adminAPI.POST("/rules", adminOnly, handlers.Rule.Create)
		adminAPI.PUT("/rules/:id", adminOnly, handlers.Rule.Update)
		adminAPI.DELETE("/rules/:id", adminOnly, handlers.Rule.Delete)

		// Risk thresholds
		adminAPI.GET("/thresholds", handlers.Threshold.List)
		adminAPI.PUT("/thresholds", adminOnly, handlers.Threshold.Save)

		// Institutions
		adminAPI.GET("/institutions", handlers.Institution.List)
		adminAPI.GET("/institutions/:id", handlers.Institution.Get)
		adminAPI.POST("/institutions", adminOnly, handlers.Institution.Create)
		adminAPI.PUT("/institutions/:id", adminOnly, handlers.Institution.Update)
		adminAPI.DELETE("/institutions/:id", adminOnly, handlers.Institution.Delete)
		adminAPI.GET("/institutions/:id/assessments", handlers.Institution.History)
		adminAPI.GET("/institutions/:id/axis-scores", handlers.Institution.AxisScores)

		// Country risk lists
		adminAPI.GET("/countries", handlers.Country.List)
		adminAPI.POST("/countries", adminOnly, handlers.Country.Create)
		adminAPI.PUT("/countries/:id", adminOnly, handlers.Country.Update)
		adminAPI.DELETE("/countries/:id", adminOnly, handlers.Country.Delete)

		// User management
		adminAPI.GET("/users", adminOnly, handlers.User.List)
		adminAPI.POST("/users", adminOnly, handlers.User.Create)
		adminAPI.PUT("/users/:id", adminOnly, handlers.User.Update)
		adminAPI.DELETE("/users/:id", adminOnly, handlers.User.Delete)
		adminAPI.POST("/users/:id/reset-session", adminOnly, handlers.User.ResetSession)

		// Dashboard
		adminAPI.GET("/dashboard", handlers.Dashboard.GetDashboard)

		// System Monitoring
		adminAPI.GET("/system/metrics", handlers.System.SystemMetricsSSE)
	}

	return router
}
