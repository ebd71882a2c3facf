package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/controller"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/pkg/database"
	"quizdesk_backend/pkg/logger"
	"quizdesk_backend/pkg/mailer"
	"quizdesk_backend/pkg/monitoring"
	"quizdesk_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type repositories struct {
	User          *repository.UserRepository
	Course        *repository.CourseRepository
	Quiz          *repository.QuizRepository
	Submission    *repository.SubmissionRepository
	Complaint     *repository.ComplaintRepository
	EmailSettings *repository.EmailSettingsRepository
}

type services struct {
	Auth         *service.AuthService
	User         *service.UserService
	Course       *service.CourseService
	Quiz         *service.QuizService
	Submission   *service.SubmissionService
	Ranking      *service.RankingService
	Complaint    *service.ComplaintService
	Dashboard    *service.DashboardService
	Notification *service.NotificationService
	Token        *service.TokenService
	Storage      *service.StorageService
}

type controllers struct {
	Auth       *controller.AuthController
	User       *controller.UserController
	Course     *controller.CourseController
	Quiz       *controller.QuizController
	Submission *controller.SubmissionController
	Ranking    *controller.RankingController
	Complaint  *controller.ComplaintController
	Dashboard  *controller.DashboardController
	Settings   *controller.SettingsController
	Health     *controller.HealthController
}

type App struct {
	Config      *config.Config
	Engine      *gin.Engine
	DB          *gorm.DB
	Redis       *redis.Client
	Services    *services
	Controllers *controllers
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)

	gin.SetMode(ginMode(cfg.Server.Mode))

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, cfg.ForceMigrate)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quizdesk", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Warn("tracing disabled", zap.Error(err))
		}
	}

	repos := &repositories{
		User:          repository.NewUserRepository(db),
		Course:        repository.NewCourseRepository(db),
		Quiz:          repository.NewQuizRepository(db),
		Submission:    repository.NewSubmissionRepository(db),
		Complaint:     repository.NewComplaintRepository(db),
		EmailSettings: repository.NewEmailSettingsRepository(db),
	}

	storage := service.NewStorageService(cfg)
	notifier := service.NewNotificationService(repos.EmailSettings, repos.User, mailer.New(&cfg.Mail))
	tokens := service.NewTokenService(rdb, cfg.JWT.ExpireTime)

	svcs := &services{
		Auth:         service.NewAuthService(repos.User, cfg),
		User:         service.NewUserService(repos.User, tokens, notifier),
		Course:       service.NewCourseService(repos.Course),
		Quiz:         service.NewQuizService(repos.Quiz, repos.Course, repos.Submission, storage, notifier),
		Submission:   service.NewSubmissionService(repos.Quiz, repos.User, repos.Submission, storage, notifier),
		Ranking:      service.NewRankingService(repos.User, repos.Submission, repos.Quiz),
		Complaint:    service.NewComplaintService(repos.Complaint),
		Dashboard:    service.NewDashboardService(repos.Course, repos.Submission),
		Notification: notifier,
		Token:        tokens,
		Storage:      storage,
	}

	ctrls := &controllers{
		Auth:       controller.NewAuthController(svcs.Auth),
		User:       controller.NewUserController(svcs.User),
		Course:     controller.NewCourseController(svcs.Course),
		Quiz:       controller.NewQuizController(svcs.Quiz),
		Submission: controller.NewSubmissionController(svcs.Submission),
		Ranking:    controller.NewRankingController(svcs.Ranking),
		Complaint:  controller.NewComplaintController(svcs.Complaint),
		Dashboard:  controller.NewDashboardController(svcs.Dashboard),
		Settings:   controller.NewSettingsController(svcs.Notification),
		Health:     controller.NewHealthController(db),
	}

	a := &App{
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		Services:    svcs,
		Controllers: ctrls,
	}
	a.Engine = a.setupRouter()

	return a, nil
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then
// drains in-flight requests before returning.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Engine,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := a.Redis.Close(); err != nil {
		logger.Log.Warn("redis close", zap.Error(err))
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Log.Warn("database close", zap.Error(err))
		}
	}

	logger.Log.Info("shutdown complete")
	return nil
}
