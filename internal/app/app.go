package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyhive_backend/internal/config"
	"studyhive_backend/internal/controller"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/service"
	"studyhive_backend/pkg/configwatcher"
	"studyhive_backend/pkg/database"
	"studyhive_backend/pkg/logger"
	"studyhive_backend/pkg/monitoring"
	"studyhive_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run wires the application together and serves until interrupted.
func Run(cfg *config.Config, configPath string) error {
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	if cfg.MigrateOnly {
		logger.Log.Info("Migration complete, exiting")
		return nil
	}

	redisClient, err := database.InitRedis(cfg)
	if err != nil {
		// The leaderboard cache degrades to DB reads without Redis.
		logger.Log.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("studyhive-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Warn("Tracing unavailable", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = tp.Shutdown(ctx)
			}()
		}
	}

	storage, err := service.NewStorageService(cfg.Storage)
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	levelRepo := repository.NewLevelRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	pastQuestionRepo := repository.NewPastQuestionRepository(db)
	officialNoteRepo := repository.NewOfficialNoteRepository(db)
	noteRepo := repository.NewCommunityNoteRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewQuizAttemptRepository(db)
	requestRepo := repository.NewRequestRepository(db)

	// Services
	emailSvc := service.NewEmailService(cfg.SMTP)
	authSvc := service.NewAuthService(userRepo, levelRepo, emailSvc, cfg)
	userSvc := service.NewUserService(userRepo, levelRepo, noteRepo)
	courseSvc := service.NewCourseService(courseRepo, levelRepo)
	pastQuestionSvc := service.NewPastQuestionService(pastQuestionRepo, courseRepo, storage)
	officialNoteSvc := service.NewOfficialNoteService(officialNoteRepo, courseRepo, storage)
	leaderboardSvc := service.NewLeaderboardService(userRepo, redisClient)
	noteSvc := service.NewCommunityNoteService(noteRepo, courseRepo, storage, leaderboardSvc)
	voteSvc := service.NewVoteService(voteRepo, noteRepo, commentRepo, requestRepo, leaderboardSvc)
	commentSvc := service.NewCommentService(commentRepo, noteRepo, leaderboardSvc)
	quizSvc := service.NewQuizService(quizRepo, attemptRepo, courseRepo, leaderboardSvc)
	requestSvc := service.NewRequestService(requestRepo, courseRepo)
	searchSvc := service.NewSearchService(courseRepo, pastQuestionRepo, officialNoteRepo, noteRepo, quizRepo)

	ctls := &controllers{
		health:        controller.NewHealthController(),
		auth:          controller.NewAuthController(authSvc),
		users:         controller.NewUserController(userSvc, quizSvc),
		levels:        controller.NewLevelController(levelRepo),
		courses:       controller.NewCourseController(courseSvc),
		pastQuestions: controller.NewPastQuestionController(pastQuestionSvc),
		officialNotes: controller.NewOfficialNoteController(officialNoteSvc),
		notes:         controller.NewCommunityNoteController(noteSvc, voteSvc, commentSvc),
		comments:      controller.NewCommentController(commentSvc, voteSvc),
		quizzes:       controller.NewQuizController(quizSvc),
		requests:      controller.NewRequestController(requestSvc, voteSvc),
		leaderboard:   controller.NewLeaderboardController(leaderboardSvc),
		search:        controller.NewSearchController(searchSvc),
		uploads:       controller.NewUploadController(storage),
	}

	router := setupRouter(cfg, ctls)

	go configwatcher.WatchConfig(configPath, func(newCfg *config.Config) {
		// Hot-reloadable settings only; connections keep their startup config.
		cfg.RateLimit = newCfg.RateLimit
		cfg.CORS = newCfg.CORS
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Log.Info("Server stopped")
	return nil
}
