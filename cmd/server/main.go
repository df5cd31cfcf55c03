package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	invoicingapp "github.com/invoicehub/backend/internal/application/invoicing"
	partnerapp "github.com/invoicehub/backend/internal/application/partner"
	printingapp "github.com/invoicehub/backend/internal/application/printing"
	settingsapp "github.com/invoicehub/backend/internal/application/settings"
	"github.com/invoicehub/backend/internal/infrastructure/auth"
	"github.com/invoicehub/backend/internal/infrastructure/cache"
	"github.com/invoicehub/backend/internal/infrastructure/config"
	"github.com/invoicehub/backend/internal/infrastructure/logger"
	"github.com/invoicehub/backend/internal/infrastructure/mail"
	"github.com/invoicehub/backend/internal/infrastructure/persistence"
	"github.com/invoicehub/backend/internal/infrastructure/printing"
	"github.com/invoicehub/backend/internal/infrastructure/storage"
	"github.com/invoicehub/backend/internal/interfaces/http/handler"
	"github.com/invoicehub/backend/internal/interfaces/http/middleware"
	"github.com/invoicehub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Invoice Hub API
//	@version		1.0
//	@description	Invoice management backend: customers, invoices, PDF documents and configuration

//	@contact.name	API Support
//	@contact.email	support@invoicehub.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Invoice Hub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Initialize database with a zap-backed gorm logger
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))

	// Initialize repositories
	configRepo := persistence.NewGormConfigRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)

	// Configuration cache: Redis when enabled, in-process otherwise
	var configCache settingsapp.ConfigCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisConfigCache(cfg.Redis,
			cache.WithConfigCacheLogger(log))
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisCache.Close()
		}()
		configCache = redisCache
		log.Info("Configuration cache backed by Redis",
			zap.String("host", cfg.Redis.Host))
	} else {
		configCache = cache.NewInMemoryConfigCache(5 * time.Minute)
	}

	// Document storage backend
	var docStorage invoicingapp.DocumentStorage
	var docOpener handler.DocumentOpener
	switch cfg.Storage.Backend {
	case "s3":
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration))
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		docStorage = s3Storage
		log.Info("Document storage backed by S3",
			zap.String("bucket", cfg.Storage.Bucket))
	default:
		fsStorage, err := storage.NewFileSystemStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize file system storage", zap.Error(err))
		}
		docStorage = fsStorage
		docOpener = fsStorage
		log.Info("Document storage backed by file system",
			zap.String("base_path", cfg.Storage.BasePath))
	}

	// PDF rendering
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.RenderTimeout,
		RemoteURL:      cfg.Printing.ChromeURL,
		Headless:       true,
		DisableGPU:     true,
		NoSandbox:      cfg.Printing.NoSandbox,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		_ = renderer.Close()
	}()
	documentService := printingapp.NewInvoiceDocumentService(
		printing.NewTemplateEngine(), renderer, log)

	// Outbound email
	var mailer invoicingapp.EmailSender
	if cfg.Mail.Enabled {
		sesSender, err := mail.NewSESSender(context.Background(), &cfg.Mail, log)
		if err != nil {
			log.Fatal("Failed to initialize SES sender", zap.Error(err))
		}
		mailer = sesSender
		log.Info("Outbound email enabled", zap.String("from", cfg.Mail.From))
	} else {
		mailer = mail.NewLogSender(log)
	}

	// Initialize application services
	configService := settingsapp.NewConfigService(configRepo, configCache, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	invoiceService := invoicingapp.NewInvoiceService(
		invoiceRepo, commentRepo, customerService, configService,
		documentService, docStorage, mailer, log)

	// Initialize auth service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize handlers
	configHandler := handler.NewConfigHandler(configService)
	customerHandler := handler.NewCustomerHandler(customerService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	systemHandler := handler.NewSystemHandler()

	// Setup Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", healthHandler(db, log))

	// Setup routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	partnerGroup := router.NewDomainGroup("partner", "/partner")
	partnerGroup.POST("/customers", customerHandler.Manage)
	partnerGroup.GET("/customers", customerHandler.List)
	partnerGroup.GET("/customers/:id", customerHandler.GetByID)
	partnerGroup.GET("/customers/email/:email", customerHandler.GetByEmail)

	invoicingGroup := router.NewDomainGroup("invoicing", "/invoicing")
	invoicingGroup.POST("/invoices", invoiceHandler.Create)
	invoicingGroup.GET("/invoices", invoiceHandler.List)
	invoicingGroup.GET("/invoices/stats", invoiceHandler.Stats)
	invoicingGroup.GET("/invoices/:id", invoiceHandler.GetByID)
	invoicingGroup.PUT("/invoices/:id/status", invoiceHandler.UpdateStatus)
	invoicingGroup.DELETE("/invoices/:id", invoiceHandler.Delete)
	invoicingGroup.POST("/invoices/:id/comments", invoiceHandler.AddComment)
	invoicingGroup.GET("/invoices/:id/comments", invoiceHandler.ListComments)
	invoicingGroup.GET("/invoices/:id/document", invoiceHandler.GetDocumentURL)

	settingsGroup := router.NewDomainGroup("settings", "/settings")
	settingsGroup.GET("/config", configHandler.Get)
	settingsGroup.PUT("/config/:title", configHandler.UpdateEntry)

	systemGroup := router.NewDomainGroup("system", "/system")
	systemGroup.GET("/info", systemHandler.GetSystemInfo)
	systemGroup.GET("/ping", systemHandler.Ping)

	r.Register(partnerGroup).
		Register(invoicingGroup).
		Register(settingsGroup).
		Register(systemGroup)

	// The file system backend serves stored documents through the API itself;
	// the S3 backend hands out presigned URLs instead.
	if docOpener != nil {
		documentHandler := handler.NewDocumentHandler(docOpener)
		documentsGroup := router.NewDomainGroup("documents", "/documents")
		documentsGroup.GET("/*key", documentHandler.Download)
		r.Register(documentsGroup)
	}

	r.Setup()

	// Start server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
