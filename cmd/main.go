package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_available_slots"
	getBarberWorkloadHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_barber_workload"
	getGranularityHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_granularity"
	getGranularityOptionsHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/get_granularity_options"
	listAppointmentsHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/list_appointments"
	updateGranularityHandler "github.com/m04kA/SMC-BarberSlots/internal/api/handlers/update_granularity"
	"github.com/m04kA/SMC-BarberSlots/internal/api/middleware"
	"github.com/m04kA/SMC-BarberSlots/internal/config"
	memoryCache "github.com/m04kA/SMC-BarberSlots/internal/infra/cache/memory"
	redisCache "github.com/m04kA/SMC-BarberSlots/internal/infra/cache/redis"
	"github.com/m04kA/SMC-BarberSlots/internal/infra/migrator"
	appointmentRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/appointment"
	barberRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/barber"
	scheduleRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/service"
	settingsRepo "github.com/m04kA/SMC-BarberSlots/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BarberSlots/internal/service/appointments"
	"github.com/m04kA/SMC-BarberSlots/internal/service/availability"
	"github.com/m04kA/SMC-BarberSlots/internal/service/granularity"
	createAppointmentUC "github.com/m04kA/SMC-BarberSlots/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_available_slots"
	getBarberWorkloadUC "github.com/m04kA/SMC-BarberSlots/internal/usecase/get_barber_workload"
	"github.com/m04kA/SMC-BarberSlots/migrations"
	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/logger"
	"github.com/m04kA/SMC-BarberSlots/pkg/metrics"
	"github.com/m04kA/SMC-BarberSlots/pkg/txmanager"
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

	log.Info("Starting SMC-BarberSlots...")

	// Инициализируем метрики (если включены)
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Migrations.Enabled {
		m, err := migrator.NewMigrator(db, migrations.FS, ".", log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка с метриками запросов (metricsCollector может быть nil)
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	barberRepository := barberRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Кэш гранулярности
	var granularityCache granularity.Cache
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			// кэш необязателен: промахи уходят в базу
			log.Warn("Redis is not reachable at %s: %v", cfg.Cache.Redis.Addr, err)
		}
		cancel()

		granularityCache = redisCache.NewCache(client, cfg.Cache.Redis.KeyPrefix, cfg.Cache.TTL(), log)
		log.Info("Granularity cache: redis at %s", cfg.Cache.Redis.Addr)
	default:
		granularityCache = memoryCache.NewCache(cfg.Cache.TTL())
		log.Info("Granularity cache: in-memory, ttl=%s", cfg.Cache.TTL())
	}

	defaultLocation, err := time.LoadLocation(cfg.Slots.DefaultTimezone)
	if err != nil {
		log.Fatal("Failed to load default timezone %s: %v", cfg.Slots.DefaultTimezone, err)
	}

	// Сервисы
	granularitySvc := granularity.NewService(
		settingsRepository,
		granularityCache,
		cfg.Slots.DefaultGranularityMinutes,
		metricsCollector,
		log,
	)
	availabilitySvc := availability.NewService(
		settingsRepository,
		barberRepository,
		scheduleRepository,
		appointmentRepository,
		defaultLocation,
		log,
	)
	log.Info("Default slot granularity: %d minutes, default timezone: %s",
		granularitySvc.FallbackMinutes(), defaultLocation)

	appointmentsSvc := appointments.NewService(appointmentRepository, availabilitySvc, txMgr, log)

	// Use cases
	var slotsObserver getAvailableSlotsUC.SlotsObserver
	if metricsCollector != nil {
		slotsObserver = metricsCollector.SlotsGenerated
	}

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		availabilitySvc,
		granularitySvc,
		txMgr,
		slotsObserver,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		availabilitySvc,
		granularitySvc,
		txMgr,
		log,
	)
	getBarberWorkloadUseCase := getBarberWorkloadUC.NewUseCase(availabilitySvc, txMgr, log)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getBarberWorkload := getBarberWorkloadHandler.NewHandler(getBarberWorkloadUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getGranularity := getGranularityHandler.NewHandler(granularitySvc, log)
	updateGranularity := updateGranularityHandler.NewHandler(granularitySvc, log)
	getGranularityOptions := getGranularityOptionsHandler.NewHandler(granularitySvc)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты и записи ---
	api.HandleFunc("/barbershops/{barbershopId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbershops/{barbershopId}/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/barbershops/{barbershopId}/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbershops/{barbershopId}/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbershops/{barbershopId}/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/barbershops/{barbershopId}/barbers/{barberId}/workload", getBarberWorkload.Handle).Methods(http.MethodGet)

	// --- Настройки сетки ---
	api.HandleFunc("/barbershops/{barbershopId}/settings/granularity", getGranularity.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbershops/{barbershopId}/settings/granularity", updateGranularity.Handle).Methods(http.MethodPut)
	api.HandleFunc("/granularity/options", getGranularityOptions.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
