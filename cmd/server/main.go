package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openbooks/backend/internal/application/billing"
	reportapp "github.com/openbooks/backend/internal/application/report"
	"github.com/openbooks/backend/internal/infrastructure/auth"
	"github.com/openbooks/backend/internal/infrastructure/cache"
	"github.com/openbooks/backend/internal/infrastructure/config"
	"github.com/openbooks/backend/internal/infrastructure/event"
	"github.com/openbooks/backend/internal/infrastructure/logger"
	"github.com/openbooks/backend/internal/infrastructure/persistence"
	"github.com/openbooks/backend/internal/infrastructure/scheduler"
	"github.com/openbooks/backend/internal/interfaces/http/handler"
	"github.com/openbooks/backend/internal/interfaces/http/middleware"
	"github.com/openbooks/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting OpenBooks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	proformaRepo := persistence.NewGormProformaRepository(db.DB)
	challanRepo := persistence.NewGormChallanRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	summaryRepo := persistence.NewGormDailySummaryRepository(db.DB)
	ledgerStore := persistence.NewGormLedgerStore(db.DB)

	// Report cache and event-driven invalidation
	reportCache := cache.NewReportCache(cfg, log)
	eventBus := event.NewInMemoryEventBus(log)
	invalidator := reportapp.NewCacheInvalidator(reportCache, log)
	eventBus.Subscribe(invalidator, invalidator.EventTypes()...)

	// Application services
	customerService := billing.NewCustomerService(customerRepo)
	vendorService := billing.NewVendorService(vendorRepo)
	itemService := billing.NewItemService(itemRepo)
	invoiceService := billing.NewInvoiceService(invoiceRepo, customerRepo, eventBus, log)
	billService := billing.NewBillService(billRepo, vendorRepo, eventBus, log)
	paymentService := billing.NewPaymentService(paymentRepo, invoiceRepo, eventBus, log)
	quoteService := billing.NewQuoteService(quoteRepo, customerRepo)
	proformaService := billing.NewProformaService(proformaRepo, customerRepo)
	challanService := billing.NewChallanService(challanRepo, customerRepo)
	adjustmentService := billing.NewAdjustmentService(adjustmentRepo, itemRepo)
	reportService := reportapp.NewReportService(ledgerStore, reportCache, log)
	summaryService := reportapp.NewDailySummaryService(ledgerStore, summaryRepo, log)

	// Daily aggregation scheduler
	cronHour, cronMinute, err := scheduler.ParseCronSchedule(cfg.Scheduler.DailyCronSchedule)
	if err != nil {
		log.Fatal("Invalid scheduler cron schedule", zap.Error(err))
	}
	dailyScheduler := scheduler.NewDailyScheduler(
		scheduler.Config{
			Enabled:    cfg.Scheduler.Enabled,
			CronHour:   cronHour,
			CronMinute: cronMinute,
			JobTimeout: cfg.Scheduler.JobTimeout,
		},
		summaryService,
		scheduler.NewJobRepository(db.DB),
		log,
	)
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	if err := dailyScheduler.Start(schedulerCtx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		}),
	)

	jwtService := auth.NewJWTService(cfg.JWT)

	router.NewRouter(engine,
		router.WithMiddleware(middleware.JWTAuth(jwtService)),
	).
		Register(handler.NewSystemHandler(cfg.App.Name, version)).
		Register(handler.NewReportHandler(reportService, dailyScheduler)).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewVendorHandler(vendorService)).
		Register(handler.NewItemHandler(itemService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewBillHandler(billService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewQuoteHandler(quoteService)).
		Register(handler.NewProformaHandler(proformaService)).
		Register(handler.NewChallanHandler(challanService)).
		Register(handler.NewAdjustmentHandler(adjustmentService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := dailyScheduler.Stop(shutdownCtx); err != nil {
		log.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
