package app

import (
	"time"

	"studyhive_backend/internal/config"
	"studyhive_backend/internal/controller"
	"studyhive_backend/internal/middleware"
	"studyhive_backend/internal/model"
	"studyhive_backend/pkg/monitoring"
	"studyhive_backend/pkg/security"
	"studyhive_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type controllers struct {
	health        *controller.HealthController
	auth          *controller.AuthController
	users         *controller.UserController
	levels        *controller.LevelController
	courses       *controller.CourseController
	pastQuestions *controller.PastQuestionController
	officialNotes *controller.OfficialNoteController
	notes         *controller.CommunityNoteController
	comments      *controller.CommentController
	quizzes       *controller.QuizController
	requests      *controller.RequestController
	leaderboard   *controller.LeaderboardController
	search        *controller.SearchController
	uploads       *controller.UploadController
}

func setupRouter(cfg *config.Config, ctls *controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(security.CORS(cfg.CORS.AllowedOrigins))
	r.Use(security.Secure())
	r.Use(monitoring.MetricsMiddleware())

	if cfg.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}

	if cfg.RateLimit.MaxRequests > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		if window == 0 {
			window = time.Minute
		}
		r.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}

	r.GET("/health", ctls.health.Check)
	r.GET("/metrics", monitoring.PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := middleware.Auth(cfg.JWT.AccessSecret)
	tryAuth := middleware.TryAuth(cfg.JWT.AccessSecret)
	repOnly := middleware.RequireRole(model.RoleRep)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctls.auth.Register)
			auth.POST("/verify-email", ctls.auth.VerifyEmail)
			auth.POST("/resend-otp", ctls.auth.ResendOTP)
			auth.POST("/login", ctls.auth.Login)
			auth.POST("/refresh", ctls.auth.Refresh)
			auth.POST("/forgot-password", ctls.auth.ForgotPassword)
			auth.POST("/reset-password", ctls.auth.ResetPassword)
			auth.POST("/logout", authed, ctls.auth.Logout)
			auth.POST("/change-password", authed, ctls.auth.ChangePassword)
		}

		users := api.Group("/users", authed)
		{
			users.GET("/me", ctls.users.Me)
			users.PUT("/me", ctls.users.UpdateMe)
			users.GET("/me/contributions", ctls.users.MyContributions)
			users.GET("/me/saved-notes", ctls.users.MySavedNotes)
			users.GET("/me/attempts", ctls.users.MyAttempts)
			users.GET("", adminOnly, ctls.users.List)
			users.PUT("/:id/role", adminOnly, ctls.users.SetRole)
			users.PUT("/:id/active", adminOnly, ctls.users.SetActive)
		}

		api.GET("/levels", ctls.levels.List)
		api.POST("/levels", authed, adminOnly, ctls.levels.Create)
		api.PUT("/levels/:id", authed, adminOnly, ctls.levels.Update)
		api.DELETE("/levels/:id", authed, adminOnly, ctls.levels.Delete)

		courses := api.Group("/courses")
		{
			courses.GET("", ctls.courses.List)
			courses.GET("/:id", ctls.courses.Get)
			courses.POST("", authed, repOnly, ctls.courses.Create)
			courses.PUT("/:id", authed, repOnly, ctls.courses.Update)
			courses.DELETE("/:id", authed, adminOnly, ctls.courses.Delete)

			courses.GET("/:id/past-questions", ctls.pastQuestions.ListByCourse)
			courses.GET("/:id/official-notes", ctls.officialNotes.ListByCourse)
			courses.GET("/:id/notes", ctls.notes.ListByCourse)
			courses.GET("/:id/quizzes", authed, ctls.quizzes.ListByCourse)
		}

		pastQuestions := api.Group("/past-questions")
		{
			pastQuestions.GET("/:id", ctls.pastQuestions.Get)
			pastQuestions.GET("/:id/download", authed, ctls.pastQuestions.Download)
			pastQuestions.POST("", authed, repOnly, ctls.pastQuestions.Create)
			pastQuestions.DELETE("/:id", authed, repOnly, ctls.pastQuestions.Delete)
		}

		officialNotes := api.Group("/official-notes")
		{
			officialNotes.GET("/:id", ctls.officialNotes.Get)
			officialNotes.GET("/:id/download", authed, ctls.officialNotes.Download)
			officialNotes.POST("", authed, repOnly, ctls.officialNotes.Create)
			officialNotes.DELETE("/:id", authed, repOnly, ctls.officialNotes.Delete)
		}

		notes := api.Group("/notes")
		{
			notes.GET("/:id", tryAuth, ctls.notes.Get)
			notes.GET("/:id/comments", ctls.notes.ListComments)
			notes.POST("", authed, ctls.notes.Create)
			notes.PUT("/:id", authed, ctls.notes.Update)
			notes.GET("/:id/download", authed, ctls.notes.Download)
			notes.POST("/:id/save", authed, ctls.notes.ToggleSave)
			notes.POST("/:id/vote", authed, ctls.notes.Vote)
			notes.DELETE("/:id/vote", authed, ctls.notes.Unvote)
			notes.POST("/:id/report", authed, ctls.notes.Report)
			notes.PUT("/:id/pin", authed, repOnly, ctls.notes.SetPinned)
			notes.PUT("/:id/hide", authed, repOnly, ctls.notes.SetHidden)
			notes.POST("/:id/comments", authed, ctls.notes.CreateComment)
			notes.DELETE("/:id", authed, ctls.notes.Delete)
		}

		comments := api.Group("/comments", authed)
		{
			comments.POST("/:id/vote", ctls.comments.Vote)
			comments.DELETE("/:id/vote", ctls.comments.Unvote)
			comments.DELETE("/:id", ctls.comments.Delete)
		}

		quizzes := api.Group("/quizzes", authed)
		{
			quizzes.GET("/:id", ctls.quizzes.Get)
			quizzes.GET("/:id/stats", ctls.quizzes.Stats)
			quizzes.GET("/:id/attempts", ctls.quizzes.Attempts)
			quizzes.POST("/:id/submit", ctls.quizzes.Submit)
			quizzes.POST("", repOnly, ctls.quizzes.Create)
			quizzes.PATCH("/:id/status", repOnly, ctls.quizzes.SetStatus)
			quizzes.DELETE("/:id", repOnly, ctls.quizzes.Delete)
		}

		api.GET("/attempts/:id", authed, ctls.quizzes.GetAttempt)

		requests := api.Group("/requests")
		{
			requests.GET("", ctls.requests.List)
			requests.GET("/stats", ctls.requests.Stats)
			requests.GET("/mine", authed, ctls.requests.Mine)
			requests.GET("/:id", ctls.requests.Get)
			requests.POST("", authed, ctls.requests.Create)
			requests.PUT("/:id", authed, ctls.requests.Update)
			requests.POST("/:id/vote", authed, ctls.requests.Vote)
			requests.DELETE("/:id/vote", authed, ctls.requests.Unvote)
			requests.POST("/:id/claim", authed, repOnly, ctls.requests.Claim)
			requests.POST("/:id/fulfill", authed, repOnly, ctls.requests.Fulfill)
			requests.POST("/:id/reject", authed, repOnly, ctls.requests.Reject)
			requests.DELETE("/:id", authed, ctls.requests.Delete)
		}

		api.GET("/leaderboard", ctls.leaderboard.Top)
		api.GET("/leaderboard/contributors", ctls.leaderboard.Contributors)
		api.GET("/leaderboard/quiz", ctls.leaderboard.QuizChampions)
		api.GET("/leaderboard/me", authed, ctls.leaderboard.Mine)

		api.GET("/search", ctls.search.Search)

		api.POST("/uploads/presign", authed, ctls.uploads.Presign)
	}

	return r
}
