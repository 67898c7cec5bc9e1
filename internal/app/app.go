package app

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/todoapp/server/internal/module/auth"
	"github.com/todoapp/server/internal/module/collaboration"
	"github.com/todoapp/server/internal/module/person"
	"github.com/todoapp/server/internal/module/todo"
	"github.com/todoapp/server/internal/realtime"
	"github.com/todoapp/server/internal/shared/cache"
	"github.com/todoapp/server/internal/shared/config"
	"github.com/todoapp/server/internal/shared/database"
	"github.com/todoapp/server/internal/shared/logger"
	"github.com/todoapp/server/internal/shared/mail"
	"github.com/todoapp/server/internal/shared/metrics"
	"github.com/todoapp/server/internal/shared/middleware"
	"github.com/todoapp/server/internal/shared/queue"
)

// LoadConfig loads the application configuration.
func LoadConfig() (*config.Config, error) {
	return config.Load()
}

// App wires the application together.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     redis.UniversalClient
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger

	worker *collaboration.Worker
	hub    *realtime.Hub
	cancel context.CancelFunc
}

// New builds the application from configuration.
func New(cfg *config.Config) (*App, error) {
	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}
	bootLogger := logger.New(logCfg)
	zapLogger, err := logger.NewZap(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrate(
		&person.Person{},
		&todo.Todo{},
		&collaboration.CollaborationRequest{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	rdb, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("init queue client: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	bootLogger.Info("infrastructure ready",
		"database", cfg.Database.Host,
		"redis", cfg.Redis.Address,
		"queue", cfg.Queue.SharingQueueURL,
	)

	app := &App{
		config:    cfg,
		db:        db,
		redis:     rdb,
		logger:    bootLogger,
		zapLogger: zapLogger,
	}

	// Repositories
	personRepo := person.NewRepository(db)
	todoRepo := todo.NewRepository(db)
	collabRepo := collaboration.NewRepository(db)

	// Outbound adapters
	sender := mail.NewBreakerSender(mail.NewSMTPSender(&cfg.Mail, zapLogger))
	notifier := realtime.NewRedisNotifier(rdb)

	// Services
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry)
	authService := auth.NewService(personRepo, jwtManager, cfg.Auth.InvitationCodes, zapLogger)
	todoService := todo.NewService(todoRepo, zapLogger)
	collabService := collaboration.NewService(
		collabRepo, todoRepo, personRepo,
		queueClient, cfg.Queue.SharingQueueURL,
		notifier, zapLogger,
	)

	// Confirmation driver: manual in production, automatic when the
	// environment has no second user to click the email link.
	var driver collaboration.ConfirmationDriver = collaboration.ManualDriver{}
	if cfg.Collaboration.AutoConfirm {
		driver = collaboration.NewAutoDriver(collabService, cfg.Collaboration.AutoConfirmDelay, zapLogger)
	}

	app.worker = collaboration.NewWorker(
		queueClient, &cfg.Queue, sender, driver,
		cfg.Collaboration.ExternalURL, m, zapLogger,
	)
	app.hub = realtime.NewHub(rdb, m, zapLogger)

	// Handlers
	authHandler := auth.NewHandler(authService)
	personHandler := person.NewHandler(personRepo)
	todoHandler := todo.NewHandler(todoService)
	collabHandler := collaboration.NewHandler(collabService)
	realtimeHandler := realtime.NewHandler(app.hub, zapLogger)

	app.router = app.setupRouter(m, registry)

	api := app.router.Group("/api/v1")
	authHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(auth.Middleware(jwtManager))
	personHandler.RegisterRoutes(protected)
	todoHandler.RegisterRoutes(protected)
	collabHandler.RegisterRoutes(protected)
	realtimeHandler.RegisterRoutes(protected)

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	go app.hub.Run(ctx)
	app.worker.Start(ctx)

	bootLogger.Info("application started", "workers", cfg.Queue.Workers)
	return app, nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter(m *metrics.Metrics, registry *prometheus.Registry) *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics(m))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop shuts down background components.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.worker.Stop()

	if err := cache.Close(a.redis); err != nil {
		a.zapLogger.Warn("close redis failed", zap.Error(err))
	}
	if err := database.Close(a.db); err != nil {
		a.zapLogger.Warn("close database failed", zap.Error(err))
	}
	_ = a.zapLogger.Sync()

	a.logger.Info("application stopped")
}
