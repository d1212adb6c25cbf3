package main

import (
	"context"
	"net/http"
	"time"

	"examportal/config"
	"examportal/database"
	_ "examportal/docs" // Swagger docs - auto-generated
	"examportal/internal/controller"
	adminctrl "examportal/internal/controller/admin"
	studentctrl "examportal/internal/controller/student"
	"examportal/internal/logger"
	"examportal/internal/middleware"
	"examportal/internal/model"
	"examportal/internal/repository"
	"examportal/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @title Exam Portal API
// @version 1.0
// @description Exam administration portal: managers run categories, exams and accounts; teachers work within assigned categories; students take exams inside their time window.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewCategoryRepository,
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewResultRepository,
			repository.NewAssignmentRepository,
		),

		// Services layer
		fx.Provide(
			service.NewVisibilityFactory,
			service.NewAuthService,
			service.NewUserService,
			service.NewCategoryService,
			service.NewExamService,
			service.NewQuestionService,
			service.NewAssignmentService,
			service.NewDashboardService,
			service.NewScoringService,
			service.NewEligibilityService,
			service.NewExamSessionService,
		),

		// API controllers layer
		fx.Provide(
			controller.NewAuthController,
			controller.NewProfileController,
			adminctrl.NewDashboardController,
			adminctrl.NewCategoryController,
			adminctrl.NewExamController,
			adminctrl.NewQuestionController,
			adminctrl.NewUserController,
			studentctrl.NewStudentController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedDefaultManager),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle. Group-level middleware enforces role access; listing scope is
// narrowed further inside the services.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authCtrl *controller.AuthController,
	profileCtrl *controller.ProfileController,
	dashboardCtrl *adminctrl.DashboardController,
	categoryCtrl *adminctrl.CategoryController,
	examCtrl *adminctrl.ExamController,
	questionCtrl *adminctrl.QuestionController,
	userCtrl *adminctrl.UserController,
	studentCtrl *studentctrl.StudentController,
) {
	auth := middleware.Auth(cfg, userRepo)

	// Uploaded profile images are served as static files.
	router.Static("/uploads", cfg.Upload.Dir)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", authCtrl.Login)
	}

	profileGroup := api.Group("/profile", auth)
	{
		profileGroup.GET("", profileCtrl.GetProfile)
		profileGroup.PUT("", profileCtrl.UpdateProfile)
		profileGroup.POST("/image", profileCtrl.UploadProfileImage)
	}

	// Staff routes: managers and teachers share the group, manager-only
	// writes get an extra role check.
	adminGroup := api.Group("/admin", auth, middleware.RequireRoles(model.RoleManager, model.RoleTeacher))
	managerOnly := middleware.RequireRoles(model.RoleManager)
	{
		adminGroup.GET("/dashboard", dashboardCtrl.Stats)

		adminGroup.GET("/categories", categoryCtrl.List)
		adminGroup.POST("/categories", managerOnly, categoryCtrl.Create)
		adminGroup.PUT("/categories/:category_id", managerOnly, categoryCtrl.Update)
		adminGroup.DELETE("/categories/:category_id", managerOnly, categoryCtrl.Delete)

		adminGroup.GET("/exams", examCtrl.List)
		adminGroup.POST("/exams", examCtrl.Create)
		adminGroup.PUT("/exams/:exam_id", examCtrl.Update)
		adminGroup.DELETE("/exams/:exam_id", examCtrl.Delete)
		adminGroup.GET("/exams/:exam_id/questions", examCtrl.Questions)
		adminGroup.GET("/exams/:exam_id/results", examCtrl.Results)

		adminGroup.POST("/questions", questionCtrl.Create)
		adminGroup.PUT("/questions/:question_id", questionCtrl.Update)
		adminGroup.DELETE("/questions/:question_id", questionCtrl.Delete)

		adminGroup.GET("/users", managerOnly, userCtrl.ListStaff)
		adminGroup.POST("/users", managerOnly, userCtrl.CreateStaff)
		adminGroup.PUT("/users/:user_id", managerOnly, userCtrl.UpdateStaff)
		adminGroup.DELETE("/users/:user_id", managerOnly, userCtrl.DeleteStaff)
		adminGroup.GET("/users/:user_id/assignments", managerOnly, userCtrl.ListAssignments)
		adminGroup.PUT("/users/:user_id/assignments", managerOnly, userCtrl.SyncAssignments)

		adminGroup.GET("/students", userCtrl.ListStudents)
		adminGroup.POST("/students", managerOnly, userCtrl.CreateStudent)
		adminGroup.PUT("/students/:user_id", managerOnly, userCtrl.UpdateStudent)
		adminGroup.DELETE("/students/:user_id", managerOnly, userCtrl.DeleteStudent)
	}

	studentGroup := api.Group("/student", auth, middleware.RequireRoles(model.RoleStudent))
	{
		studentGroup.GET("/exams", studentCtrl.ListExams)
		studentGroup.GET("/exams/:exam_id/join", studentCtrl.JoinExam)
		studentGroup.POST("/exams/:exam_id/finish", studentCtrl.FinishExam)
		studentGroup.GET("/results", studentCtrl.ListResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam portal server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Exam{},
		&model.Question{},
		&model.ExamResult{},
		&model.CategoryAssignment{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// SeedDefaultManager creates the bootstrap manager account on an empty
// database so the portal is usable right after the first start.
func SeedDefaultManager(cfg *config.Config, userRepo repository.UserRepository) error {
	count, err := userRepo.CountByRole(model.RoleManager)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.Seed.ManagerPassword == "" {
		log.Warn().Msg("No manager account exists and SEED_MANAGER_PASSWORD is unset, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.ManagerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	manager := model.User{
		Name:         "Portal",
		Surname:      "Manager",
		Username:     cfg.Seed.ManagerUsername,
		PasswordHash: string(hash),
		Role:         model.RoleManager,
	}
	if err := userRepo.Create(&manager); err != nil {
		return err
	}
	log.Info().Str("username", manager.Username).Msg("Seeded default manager account")
	return nil
}
