package app

import (
	"time"

	"quizdesk_backend/docs"
	"quizdesk_backend/internal/middleware"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/pkg/monitoring"
	"quizdesk_backend/pkg/security"
	"quizdesk_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(security.CORS(a.Config.CORS.AllowedOrigins))
	r.Use(security.Secure())
	if a.Config.RateLimit.MaxRequests > 0 {
		window := time.Duration(a.Config.RateLimit.WindowMinutes) * time.Minute
		r.Use(security.RateLimiter(a.Config.RateLimit.MaxRequests, window))
	}
	r.Use(monitoring.MetricsMiddleware())
	if a.Config.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}

	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	r.GET("/metrics", monitoring.PrometheusHandler())

	if a.Config.Storage.Type == "local" {
		r.Static("/uploads", a.Config.Storage.LocalPath)
	}

	api := r.Group("/api")
	{
		api.GET("/health", a.Controllers.Health.HealthCheck)
		api.POST("/login", a.Controllers.Auth.Login)
	}

	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(a.Config, a.Services.Token))
	{
		auth.POST("/change-password", a.Controllers.Auth.ChangePassword)
		auth.GET("/profile", a.Controllers.Auth.GetProfile)

		auth.GET("/courses", a.Controllers.Course.List)
		auth.GET("/courses/:id/quizzes", a.Controllers.Quiz.ListForCourse)
		auth.GET("/quizzes/:id", a.Controllers.Quiz.Get)

		auth.POST("/quizzes/:id/submit", a.Controllers.Submission.Submit)
		auth.GET("/quizzes/:id/submissions", a.Controllers.Submission.ListForQuiz)
		auth.GET("/submissions", a.Controllers.Submission.ListOwn)
		auth.GET("/submissions/:id", a.Controllers.Submission.Get)

		auth.GET("/rankings", a.Controllers.Ranking.Overall)
		auth.GET("/dashboard", a.Controllers.Dashboard.GetDashboard)

		auth.POST("/complaints", a.Controllers.Complaint.Submit)
		auth.GET("/complaints", a.Controllers.Complaint.ListOwn)
	}

	staff := api.Group("/staff")
	staff.Use(middleware.AuthMiddleware(a.Config, a.Services.Token))
	staff.Use(middleware.RoleMiddleware(model.Staff))
	{
		staff.POST("/students", a.Controllers.User.Register)
		staff.GET("/users", a.Controllers.User.List)
		staff.PUT("/users/:id", a.Controllers.User.Edit)
		staff.PATCH("/users/:id/role", a.Controllers.User.ChangeRole)
		staff.PATCH("/users/:id/suspension", a.Controllers.User.ToggleSuspension)
		staff.DELETE("/users/:id", a.Controllers.User.Delete)

		staff.POST("/courses", a.Controllers.Course.Create)
		staff.PUT("/courses/:id", a.Controllers.Course.Update)
		staff.DELETE("/courses/:id", a.Controllers.Course.Delete)
		staff.GET("/courses/:id/submissions", a.Controllers.Submission.ListForCourse)

		staff.POST("/quizzes", a.Controllers.Quiz.Create)
		staff.PUT("/quizzes/:id", a.Controllers.Quiz.Update)
		staff.DELETE("/quizzes/:id", a.Controllers.Quiz.Delete)

		staff.POST("/submissions/:id/grade", a.Controllers.Submission.Grade)
		staff.POST("/submissions/:id/remarks", a.Controllers.Submission.SetRemarks)

		staff.GET("/complaints", a.Controllers.Complaint.ListAll)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.Config, a.Services.Token))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/email-settings", a.Controllers.Settings.Get)
		admin.PUT("/email-settings", a.Controllers.Settings.Update)
	}

	return r
}
