package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/mom-service/docs"
	pkgvalidator "github.com/johnquangdev/mom-service/pkg/validator"

	"github.com/johnquangdev/mom-service/internal/adapter/handler"
	"github.com/johnquangdev/mom-service/internal/adapter/repository"
	"github.com/johnquangdev/mom-service/internal/infrastructure/cache"
	"github.com/johnquangdev/mom-service/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/mom-service/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/mom-service/internal/infrastructure/lock"
	"github.com/johnquangdev/mom-service/internal/infrastructure/storage"
	"github.com/johnquangdev/mom-service/internal/usecase/document"
	"github.com/johnquangdev/mom-service/internal/usecase/mom"
	"github.com/johnquangdev/mom-service/internal/usecase/textproc"
	pkgai "github.com/johnquangdev/mom-service/pkg/ai"
	"github.com/johnquangdev/mom-service/pkg/config"
	"github.com/johnquangdev/mom-service/pkg/jwt"
	"github.com/johnquangdev/mom-service/pkg/ratelimit"
)

// @title           MOM Service API
// @version         1.0
// @description     Meeting-minutes processing: note cleanup, translation, grammar correction and Word/PDF generation from a template

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "X-Archive-URL"},
		AllowCredentials: true,
	}))
	// Images arrive base64-encoded inside the save payload
	e.Use(middleware.BodyLimit("25M"))

	log.Println("🔧 Initializing dependencies...")

	// Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run cmd/migrate.")
		}
		if err := database.AutoMigrate(db, cfg.Database.MigrationsDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate in CI/CD/production")
	}

	// Generation lock: Redis when enabled, otherwise in-process
	var locker lock.Locker
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		locker = lock.NewRedisLocker(redisClient)
	} else {
		log.Println("⚠️  Redis disabled, using in-memory generation lock")
		store := cache.NewMemoryStore()
		defer store.Close()
		locker = lock.NewMemoryLocker(store)
	}

	// Object storage for generated documents
	var archiver mom.Archiver
	if cfg.Storage.Enabled {
		log.Println("☁️  Connecting to MinIO...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage, logger)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		archiver = minioClient
	}

	// Repositories
	log.Println("⚙️  Initializing repositories...")
	recordRepo := repository.NewMeetingRecordRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Text pipeline
	log.Println("🤖 Initializing text pipeline...")
	detector, err := textproc.NewScriptDetector(cfg.Translate.Script)
	if err != nil {
		log.Fatalf("Invalid TRANSLATE_SCRIPT: %v", err)
	}
	corrector := textproc.NewCorrectorBackend(&cfg.OpenAI)
	if !textproc.IsAvailable(corrector) {
		log.Println("⚠️  OPENAI_API_KEY not set, grammar correction uses local rules only")
	}
	pipeline := textproc.NewPipeline(
		detector,
		pkgai.NewTranslateClient(&cfg.Translate),
		corrector,
		cfg.Translate.SourceLang,
		cfg.Translate.TargetLang,
		logger,
	)

	// Document generation
	log.Println("📄 Initializing document generator...")
	renderer := document.NewRenderer(
		cfg.Document.TemplatePath,
		document.NewEngine(cfg.Document.ImageWidth, cfg.Document.ImageHeight),
		logger,
	)
	converter := document.NewConverter(cfg.Document.ConverterCommands, cfg.Document.ConvertTimeout, logger)
	generator := document.NewGenerator(renderer, converter, cfg.Document.TempDir, logger)
	if !renderer.TemplateExists() {
		log.Printf("⚠️  Template not found at %s; run cmd/template to create it", cfg.Document.TemplatePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Document.WatchTemplate {
		go func() {
			if err := renderer.Watch(ctx); err != nil {
				logger.Warn("⚠️ Template watcher stopped", zap.Error(err))
			}
		}()
	}

	momService := mom.NewService(
		recordRepo,
		taskRepo,
		pipeline,
		generator,
		locker,
		archiver,
		cfg.Document.LockTTL,
		logger,
	)
	momHandler := handler.NewMOMHandler(momService, logger)

	// Auth is optional: without a secret every route is public
	var authMW echo.MiddlewareFunc
	if cfg.JWT.AccessSecret != "" {
		log.Println("🔑 Initializing JWT verifier...")
		authMW = httpmw.EchoAuth(jwt.NewVerifier(cfg.JWT.AccessSecret), false, logger)
	}
	limiter := ratelimit.New(cfg.RateLimit.ProcessTextPerMinute, cfg.RateLimit.ProcessTextBurst, cfg.RateLimit.IdleTTL, ratelimit.SystemClock)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, momHandler, authMW, httpmw.RateLimit(limiter))
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
