package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/vecindia/condominio-api/docs" // Swagger docs
	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/database"
	"github.com/vecindia/condominio-api/internal/handlers"
	"github.com/vecindia/condominio-api/internal/jobs"
	"github.com/vecindia/condominio-api/internal/middleware"
	"github.com/vecindia/condominio-api/internal/repository"
	"github.com/vecindia/condominio-api/internal/services"
	"github.com/vecindia/condominio-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Condominio API
// @version 1.0
// @description REST API para la administración de condominios: gastos comunes, multas, pagos y estado de cuenta de residentes
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, repos, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, repos *repository.Repositories, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Metrics())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// User management
				admin.GET("/usuarios", h.User.Index)
				admin.POST("/usuarios", h.User.Create)
				admin.PUT("/usuarios/:id", h.User.Update)
				admin.DELETE("/usuarios/:id", h.User.Deactivate)

				// Condominium management
				admin.POST("/condominios", h.Condominium.Create)
				admin.POST("/condominios/:id/espacios-comunes", h.Condominium.CreateCommonSpace)

				// Resident management
				admin.POST("/residentes", h.Resident.Create)
				admin.PUT("/residentes/:id", h.Resident.Update)

				// Charge emission and adjustment
				admin.POST("/gastos-comunes", h.Charge.Create)
				admin.POST("/gastos-comunes/:id/ajustar", h.Charge.Adjust)
				admin.POST("/gastos-comunes/:id/revertir", h.Charge.ReverseAdjustment)

				// Fine emission, adjustment and the late-payment sweep
				admin.POST("/multas", h.Fine.Create)
				admin.POST("/multas/:id/ajustar", h.Fine.Adjust)
				admin.POST("/multas/:id/revertir", h.Fine.ReverseAdjustment)
				admin.POST("/multas/procesar-atrasos", h.Fine.ProcessLatePayments)

				// Payment review
				admin.POST("/pagos/:id/aprobar", h.Payment.Approve)
				admin.POST("/pagos/:id/rechazar", h.Payment.Reject)
				admin.POST("/pagos/:id/revertir", h.Payment.Reverse)

				// Adjustment reversal
				admin.POST("/residentes/:id/ajustes/revertir", h.Resident.ReverseAdjustment)

				// Dashboard, reports and audit log
				admin.GET("/dashboard/resumen", h.KPI.Overview)
				admin.GET("/dashboard/morosidad", h.KPI.Delinquency)
				admin.GET("/dashboard/morosidad/csv", h.KPI.DelinquencyCSV)
				admin.GET("/dashboard/exportar", h.KPI.Export)
				admin.POST("/dashboard/refrescar", h.KPI.Refresh)
				admin.GET("/registros", h.Audit.Index)
				admin.GET("/residentes/:id/ajustes/ultimo", h.Resident.LastAdjustment)

				// Announcements
				admin.POST("/anuncios", h.Announcement.Create)
				admin.DELETE("/anuncios/:id", h.Announcement.Delete)

				// Reservation review
				admin.POST("/reservas/:id/confirmar", h.Reservation.Confirm)

				// Background jobs
				admin.GET("/jobs/estado", h.Job.Status)
			}

			// Resident data access (admin or the resident's own account)
			residentData := protected.Group("/residentes/:id")
			residentData.Use(middleware.RequireAdminOrResidentOwner(repos.Resident))
			{
				residentData.GET("", h.Resident.Show)
				residentData.GET("/estado-cuenta", h.Ledger.Statement)
				residentData.GET("/estado-cuenta/pdf", h.Ledger.StatementPDF)
				residentData.GET("/saldo", h.Ledger.Balance)
				residentData.GET("/morosidad", h.Ledger.Aging)
			}

			// All authenticated users
			protected.GET("/usuarios/:id", middleware.RequireAdminOrOwner(), h.User.Show)
			protected.PATCH("/usuarios/cambiar-password", h.User.ChangePassword)
			protected.GET("/residentes", h.Resident.Index)
			protected.GET("/condominios", h.Condominium.Index)
			protected.GET("/condominios/:id", h.Condominium.Show)
			protected.GET("/condominios/:id/espacios-comunes", h.Condominium.ListCommonSpaces)
			protected.GET("/gastos-comunes", h.Charge.Index)
			protected.GET("/gastos-comunes/:id", h.Charge.Show)
			protected.GET("/multas", h.Fine.Index)
			protected.GET("/multas/:id", h.Fine.Show)
			protected.GET("/pagos", h.Payment.Index)
			protected.GET("/pagos/:id", h.Payment.Show)
			protected.POST("/pagos", h.Payment.Create)
			protected.GET("/anuncios", h.Announcement.Index)
			protected.GET("/anuncios/:id", h.Announcement.Show)

			// Reservations (residents book, admins confirm above)
			protected.GET("/reservas", h.Reservation.Index)
			protected.POST("/reservas", h.Reservation.Create)
			protected.POST("/reservas/:id/cancelar", h.Reservation.Cancel)

			// Alerts (users manage their own alerts)
			alerts := protected.Group("/alertas")
			{
				alerts.GET("", h.Alert.Index)
				alerts.POST("/leer-todas", h.Alert.MarkAllRead)
				alerts.POST("/:id/leer", h.Alert.MarkRead)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Expire and age overdue charges every hour, and once at boot so a
	// restarted process does not leave charges stale for another hour
	worker.ScheduleEveryImmediate(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Sweeping overdue charges...")
		return svcs.Charge.SweepOverdue(ctx)
	})

	// Warm the dashboard cache so the first admin request is served hot
	worker.Enqueue(func(ctx context.Context) error {
		return svcs.KPI.RefreshCache(ctx)
	})

	// Issue late-payment fines daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Processing late payments...")
		issued, err := svcs.Fine.ProcessLatePayments(ctx)
		if err != nil {
			return err
		}
		if issued > 0 {
			logger.Info("[Job] Late-payment fines issued", "count", issued)
		}
		return nil
	})

	// Refresh the dashboard cache every 15 minutes
	worker.ScheduleEvery(15*time.Minute, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing dashboard cache...")
		return svcs.KPI.RefreshCache(ctx)
	})

	// Purge expired cache entries and refresh tokens daily
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Cleaning expired cache and tokens...")
		if err := svcs.KPI.CleanExpiredCache(ctx); err != nil {
			logger.Error("Error cleaning expired cache", "error", err)
		}
		return svcs.Auth.CleanExpiredTokens(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
