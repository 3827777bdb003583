package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deepeng_backend/internal/config"
	"deepeng_backend/internal/controller"
	"deepeng_backend/internal/repository"
	"deepeng_backend/internal/service"
	"deepeng_backend/pkg/database"
	"deepeng_backend/pkg/logger"
	"deepeng_backend/pkg/monitoring"
	"deepeng_backend/pkg/security"
	"deepeng_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	ai *service.AIService
}

// ReloadConfig applies the parts of a freshly loaded config that are safe
// to swap at runtime. Server, database and storage settings need a restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.ai.UpdateConfig(cfg.AI)
	zap.L().Info("Config reloaded, AI settings applied")
}

type repositories struct {
	user       *repository.UserRepository
	module     *repository.ModuleRepository
	exercise   *repository.ExerciseRepository
	progress   *repository.ProgressRepository
	assignment *repository.AssignmentRepository
	dictionary *repository.DictionaryRepository
	placement  *repository.PlacementRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	ai         *service.AIService
	module     *service.ModuleService
	assignment *service.AssignmentService
	progress   *service.ProgressService
	placement  *service.PlacementService
	dictionary *service.DictionaryService
	user       *service.UserService
}

type controllers struct {
	auth       *controller.AuthController
	module     *controller.ModuleController
	editor     *controller.EditorController
	chat       *controller.ChatController
	progress   *controller.ProgressController
	placement  *controller.PlacementController
	dictionary *controller.DictionaryController
	profile    *controller.ProfileController
	upload     *controller.UploadController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		module:     repository.NewModuleRepository(db),
		exercise:   repository.NewExerciseRepository(db),
		progress:   repository.NewProgressRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		dictionary: repository.NewDictionaryRepository(db),
		placement:  repository.NewPlacementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.ai = service.NewAIService(cfg.AI, repos.module)
	s.module = service.NewModuleService(repos.module, repos.exercise, repos.assignment, s.storage)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.module)
	s.progress = service.NewProgressService(repos.progress, repos.module)
	s.placement = service.NewPlacementService(repos.placement, repos.user)
	s.dictionary = service.NewDictionaryService(repos.dictionary, rdb)
	s.user = service.NewUserService(repos.user, repos.progress, repos.module)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		module:     controller.NewModuleController(s.module, s.auth),
		editor:     controller.NewEditorController(s.module, s.assignment),
		chat:       controller.NewChatController(s.ai),
		progress:   controller.NewProgressController(s.progress),
		placement:  controller.NewPlacementController(s.placement),
		dictionary: controller.NewDictionaryController(s.dictionary),
		profile:    controller.NewProfileController(s.user),
		upload:     controller.NewUploadController(s.storage),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// The dictionary cache degrades to direct store reads without Redis,
	// so a missing Redis only warns.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, dictionary cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)
	app.ai = services.ai

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("deepeng-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type != "minio" {
		router.Static("/pronounce", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
