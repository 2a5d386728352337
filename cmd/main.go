package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	checkSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/check_slot_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getDateRangeSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_date_range_slots"
	getResourcesSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_resources_slots"
	getTenantUsageHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_tenant_usage"
	recalculateTenantUsageHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/recalculate_tenant_usage"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events/bookingstatus"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	inboxRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/inbox"
	locationRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/location"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	usageRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/usage"
	conflictsService "github.com/m04kA/SMC-AvailabilityService/internal/service/conflicts"
	quotaService "github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
	scheduleService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	applyTransitionUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/apply_booking_transition"
	checkSlotUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	getDateRangeSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_date_range_slots"
	getResourcesSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_resources_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Tracing.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	locationRepository := locationRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	usageRepository := usageRepo.NewRepository(wrappedDB)
	inboxRepository := inboxRepo.NewRepository(wrappedDB)

	// Сервисы
	plans, err := cfg.Quota.BuildPlans()
	if err != nil {
		log.Fatal("Failed to build quota plans: %v", err)
	}
	log.Info("Quota plans loaded: %v (default=%s)", plans.IDs(), plans.Default().ID)

	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	conflictsSvc := conflictsService.NewService(bookingRepository, log)
	quotaSvc := quotaService.NewService(usageRepository, plans, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		locationRepository,
		quotaSvc,
		scheduleSvc,
		conflictsSvc,
		metricsCollector,
		log,
	)
	checkSlotUseCase := checkSlotUC.NewUseCase(
		locationRepository,
		scheduleSvc,
		conflictsSvc,
		log,
	)
	getResourcesSlotsUseCase := getResourcesSlotsUC.NewUseCase(getAvailableSlotsUseCase, cfg.Availability.MaxParallel, log)
	getDateRangeSlotsUseCase := getDateRangeSlotsUC.NewUseCase(getAvailableSlotsUseCase, cfg.Availability.MaxParallel, log)
	applyTransitionUseCase := applyTransitionUC.NewUseCase(inboxRepository, quotaSvc, txMgr, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	getResourcesSlots := getResourcesSlotsHandler.NewHandler(getResourcesSlotsUseCase, log)
	getDateRangeSlots := getDateRangeSlotsHandler.NewHandler(getDateRangeSlotsUseCase, log)
	getTenantUsage := getTenantUsageHandler.NewHandler(quotaSvc, log)
	recalculateTenantUsage := recalculateTenantUsageHandler.NewHandler(quotaSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Tenant)

	// ============================================================
	// INTERNAL ROUTES (без проверки квоты)
	// ============================================================

	internal := api.PathPrefix("/internal").Subrouter()

	// Слоты нескольких ресурсов локации на один день
	internal.HandleFunc("/locations/{locationId}/available-slots",
		getResourcesSlots.Handle).Methods(http.MethodGet)

	// Слоты ресурса на диапазон дат
	internal.HandleFunc("/locations/{locationId}/resources/{resourceId}/available-slots/range",
		getDateRangeSlots.Handle).Methods(http.MethodGet)

	// --- Квоты тенантов ---
	internal.HandleFunc("/tenants/{tenantId}/usage", getTenantUsage.Handle).Methods(http.MethodGet)
	internal.HandleFunc("/tenants/{tenantId}/usage/recalculate", recalculateTenantUsage.Handle).Methods(http.MethodPost)

	// ============================================================
	// PUBLIC ROUTES (X-Tenant-ID опционален, ограничение частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		public.Use(middleware.RateLimit(
			middleware.NewRedisCounter(rdb),
			cfg.RateLimit.Limit,
			cfg.RateLimit.Window(),
			metricsCollector,
			log,
		))
		log.Info("Rate limiting enabled: %d requests per %s (redis=%s)",
			cfg.RateLimit.Limit, cfg.RateLimit.Window(), cfg.Redis.Addr)
	}

	// Свободные слоты ресурса на день
	public.HandleFunc("/locations/{locationId}/resources/{resourceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка одного слота
	public.HandleFunc("/locations/{locationId}/resources/{resourceId}/slot-availability",
		checkSlot.Handle).Methods(http.MethodGet)

	// Консьюмер событий бронирований
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	var consumerWG sync.WaitGroup

	if cfg.Kafka.Enabled {
		consumerCfg := bookingstatus.Config{
			Brokers:     cfg.Kafka.Brokers,
			GroupID:     cfg.Kafka.GroupID,
			Topic:       cfg.Kafka.Topic,
			MaxAttempts: cfg.Kafka.MaxAttempts,
			RetryDelay:  time.Duration(cfg.Kafka.RetryDelayMs) * time.Millisecond,
		}
		consumer := bookingstatus.NewConsumer(
			bookingstatus.NewReader(consumerCfg),
			applyTransitionUseCase,
			metricsCollector,
			log,
			consumerCfg,
		)

		consumerWG.Add(1)
		go func() {
			defer consumerWG.Done()
			log.Info("Booking status consumer started (topic=%s, group=%s)", cfg.Kafka.Topic, cfg.Kafka.GroupID)
			consumer.Run(consumerCtx)
			log.Info("Booking status consumer stopped")
		}()
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "http.server"),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Незакоммиченное сообщение будет прочитано повторно, inbox отсеет дубль
	stopConsumer()
	consumerWG.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
