package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/phlebotomy-portal/api/swagger"
	"github.com/noah-isme/phlebotomy-portal/internal/handler"
	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/repository"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
	"github.com/noah-isme/phlebotomy-portal/pkg/cache"
	"github.com/noah-isme/phlebotomy-portal/pkg/config"
	"github.com/noah-isme/phlebotomy-portal/pkg/jobs"
	"github.com/noah-isme/phlebotomy-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/phlebotomy-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/phlebotomy-portal/pkg/middleware/requestid"
	"github.com/noah-isme/phlebotomy-portal/pkg/session"
	"github.com/noah-isme/phlebotomy-portal/web"
)

const (
	shutdownTimeout    = 15 * time.Second
	maxMultipartMemory = 32 << 20
	cacheKeyPrefix     = "portal"
)

// @title Phlebotomy Portal
// @version 1.0.0
// @description Web portal for phlebotomy appointment administration. Every page also answers with a JSON envelope when the client accepts application/json.
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	api := apiclient.New(apiclient.Config{
		BaseURL:  cfg.Upstream.BaseAPIURL(),
		Timeout:  cfg.Upstream.Timeout,
		Logger:   logr.Named("upstream"),
		Observer: metricsSvc,
	})

	var (
		sessionStore service.SessionStore = repository.NewMemorySessionRepository()
		cacheRepo    service.CacheRepository
	)
	if redisClient != nil {
		sealer, err := session.NewSealer(cfg.Session.Secret)
		if err != nil {
			logr.Fatal("invalid session secret", zap.Error(err))
		}
		sessionStore = repository.NewRedisSessionRepository(redisClient, sealer)
		cacheRepo = repository.NewCacheRepository(redisClient, cacheKeyPrefix)
	} else {
		logr.Warn("redis disabled: sessions are kept in memory and reference lists are not cached")
	}

	appointmentRepo := repository.NewAppointmentRepository(api)
	referenceRepo := repository.NewReferenceRepository(api)
	notificationRepo := repository.NewNotificationRepository(api)
	transactionRepo := repository.NewTransactionRepository(api)
	dashboardRepo := repository.NewDashboardRepository(api)
	authRepo := repository.NewAuthRepository(api)

	sessions := service.NewSessionService(sessionStore, cfg.Session.TTL, logr)
	registry := service.NewListRegistry(appointmentRepo, cfg.ViewState.Size, cfg.ViewState.TTL, metricsSvc, logr)
	sessions.OnInvalidate(registry.DropSession)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.References.CacheTTL, logr)
	authSvc := service.NewAuthService(authRepo, sessions, validate, logr)
	referenceSvc := service.NewReferenceService(referenceRepo, cacheSvc, cfg.References.CacheTTL, logr)
	intakeSvc := service.NewIntakeService(appointmentRepo, referenceSvc, authSvc, validate, cfg.Uploads, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, logr)
	billingSvc := service.NewBillingService(transactionRepo, metricsSvc, logr)
	exportSvc := service.NewExportService(logr)
	healthSvc := service.NewUpstreamHealthService(cfg.Upstream, metricsSvc)
	notificationSvc := service.NewNotificationService(notificationRepo, sessions, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		MaxRetries: cfg.Notifications.Retries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	}, logr)
	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	listHandler := func(route string, variant service.ListVariant) *handler.AppointmentListHandler {
		return handler.NewAppointmentListHandler(route, variant, registry, sessions, referenceSvc, exportSvc, logr)
	}
	routes := &handler.Router{
		Sessions:   sessions,
		CookieName: cfg.Session.CookieName,
		Logger:     logr,

		Auth:          handler.NewAuthHandler(authSvc, cfg.Session),
		Account:       handler.NewAccountHandler(authSvc, intakeSvc, sessions),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc, sessions),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Billing:       handler.NewBillingHandler(billingSvc, sessions, logr),
		Directory:     handler.NewDirectoryHandler(referenceSvc, sessions),
		Intake:        handler.NewIntakeHandler(intakeSvc, referenceSvc, sessions, logr),
		Health:        handler.NewHealthHandler(metricsSvc, healthSvc),

		AdminAppointments:    listHandler("/admin/appointments", service.AdminAppointmentsView),
		AdminArchive:         listHandler("/admin/archive", service.AdminArchiveView),
		EmployeeAppointments: listHandler("/employee/appointments", service.EmployeeAppointmentsView),
		EmployeeArchive:      listHandler("/employee/archive", service.EmployeeArchiveView),
		EmployeeToday:        listHandler("/employee/today", service.EmployeeTodayView),
	}

	templates, err := web.Templates(cfg.Upstream.AssetBaseURL)
	if err != nil {
		logr.Fatal("failed to parse templates", zap.Error(err))
	}

	r := gin.New()
	r.MaxMultipartMemory = maxMultipartMemory
	r.SetHTMLTemplate(templates)
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.StaticFS("/assets", http.FS(web.Assets()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	routes.Register(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseAPIURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
