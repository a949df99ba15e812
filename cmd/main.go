package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	cancelReservationHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/create_reservation"
	editReservationHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/edit_reservation"
	eventsFeedHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/events_feed"
	getAgendaHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/get_agenda"
	getEstimateHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/get_estimate"
	getReportHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/get_report"
	getReservationHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/get_user_reservations"
	listSpacesHandler "github.com/jeffjr007/locahubaju-project/internal/api/handlers/list_spaces"
	"github.com/jeffjr007/locahubaju-project/internal/api/middleware"
	"github.com/jeffjr007/locahubaju-project/internal/config"
	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/infra/cache/reportcache"
	"github.com/jeffjr007/locahubaju-project/internal/infra/storage/memory"
	reservationRepo "github.com/jeffjr007/locahubaju-project/internal/infra/storage/reservation"
	spaceRepo "github.com/jeffjr007/locahubaju-project/internal/infra/storage/space"
	"github.com/jeffjr007/locahubaju-project/internal/integrations/eventfeed"
	"github.com/jeffjr007/locahubaju-project/internal/integrations/notifier"
	"github.com/jeffjr007/locahubaju-project/internal/integrations/profileservice"
	"github.com/jeffjr007/locahubaju-project/internal/service/conflicts"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations"
	getAgendaUC "github.com/jeffjr007/locahubaju-project/internal/usecase/get_agenda"
	getEstimateUC "github.com/jeffjr007/locahubaju-project/internal/usecase/get_estimate"
	getReportUC "github.com/jeffjr007/locahubaju-project/internal/usecase/get_report"
	"github.com/jeffjr007/locahubaju-project/pkg/dbmetrics"
	"github.com/jeffjr007/locahubaju-project/pkg/logger"
	"github.com/jeffjr007/locahubaju-project/pkg/metrics"
	"github.com/jeffjr007/locahubaju-project/pkg/txmanager"
)

// reservationStore хранилище, общее для сервиса, детектора конфликтов и usecase-ов
type reservationStore interface {
	reservations.ReservationRepository
	conflicts.ReservationRepository
	getReportUC.ReservationRepository
	getAgendaUC.ReservationRepository
}

type spaceStore interface {
	GetByID(ctx context.Context, id string) (*domain.Space, error)
	List(ctx context.Context) ([]*domain.Space, error)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting LocaHubAju reservation service...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := time.LoadLocation(cfg.Lifecycle.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Lifecycle.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	var closers []io.Closer

	// Хранилище
	var (
		store     reservationStore
		spaces    spaceStore
		txManager reservations.TransactionManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		closers = append(closers, db)

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// recorder = nil отключает измерения, обёртка остаётся одной и той же
		var recorder dbmetrics.Recorder
		if metricsCollector != nil {
			recorder = metricsCollector
		}
		wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)

		store = reservationRepo.NewRepository(wrappedDB)
		spaces = spaceRepo.NewRepository(wrappedDB)
		txManager = txmanager.NewTransactionManager(wrappedDB)

	case config.StorageDriverMemory:
		seeds := make([]*domain.Space, 0, len(cfg.Storage.Spaces))
		for _, s := range cfg.Storage.Spaces {
			seeds = append(seeds, s.ToDomain())
		}
		memStore := memory.NewStore()
		store = memStore
		spaces = memory.NewSpaceDirectory(seeds...)
		txManager = memory.NewTxManager(memStore)
		log.Warn("Using in-memory storage with %d spaces: data is lost on restart, run a single instance only", len(seeds))
	}

	// Кэш отчётов (Redis)
	var (
		reportCache     getReportUC.Cache
		reportCacheSink notifier.Driver
	)
	if cfg.Redis.Enabled {
		redisClient, err := reportcache.NewClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		closers = append(closers, redisClient)

		cache := reportcache.New(redisClient, cfg.Redis.ReportTTLDuration(), metricsCollector)
		reportCache = cache
		reportCacheSink = cache
		log.Info("Report cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.ReportTTL)
	}

	// Интеграции
	var contactResolver notifier.ContactResolver
	if cfg.ProfileService.URL != "" {
		contactResolver = profileservice.NewClient(
			cfg.ProfileService.URL,
			time.Duration(cfg.ProfileService.Timeout)*time.Second,
			log,
		)
		log.Info("Profile service client initialized (url=%s, timeout=%ds)", cfg.ProfileService.URL, cfg.ProfileService.Timeout)
	}

	externalDrivers, driverClosers, err := buildDrivers(cfg.Notifier, log)
	closers = append(closers, driverClosers...)
	if err != nil {
		closeAll(closers, log)
		log.Fatal("Failed to initialize notifier drivers: %v", err)
	}

	// Порядок важен: сначала сбрасываем кэш отчётов, затем оповещаем подписчиков
	feed := eventfeed.NewHub(log)
	drivers := make([]notifier.Driver, 0, len(externalDrivers)+2)
	if reportCacheSink != nil {
		drivers = append(drivers, reportCacheSink)
	}
	drivers = append(drivers, feed)
	drivers = append(drivers, externalDrivers...)

	dispatcher := notifier.NewDispatcher(notifier.Options{
		QueueSize: cfg.Notifier.QueueSize,
		Timeout:   time.Duration(cfg.Notifier.Timeout) * time.Second,
		Location:  location,
	}, contactResolver, metricsCollector, log, drivers...)
	dispatcher.Start()

	// Сервисы и use cases
	reservationSvc := reservations.NewService(
		store,
		spaces,
		conflicts.NewDetector(store),
		txManager,
		dispatcher,
		metricsCollector,
		cfg.Lifecycle.MaxAttempts,
		log,
	)

	getReportUseCase := getReportUC.NewUseCase(store, spaces, reportCache, log)
	getEstimateUseCase := getEstimateUC.NewUseCase(spaces, log)
	getAgendaUseCase := getAgendaUC.NewUseCase(store, spaces, log)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(reservationSvc, log)
	editReservation := editReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	listSpaces := listSpacesHandler.NewHandler(spaces, log)
	getEstimate := getEstimateHandler.NewHandler(getEstimateUseCase, log)
	getAgenda := getAgendaHandler.NewHandler(getAgendaUseCase, location, log)
	getReport := getReportHandler.NewHandler(getReportUseCase, location, log)
	eventsFeed := eventsFeedHandler.NewHandler(feed, cfg.CORS.AllowedOrigins, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/spaces", listSpaces.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/estimate", getEstimate.Handle).Methods(http.MethodGet)
	api.HandleFunc("/agenda", getAgenda.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT или X-User-ID)
	// ============================================================

	if cfg.Auth.TrustRoleHeader {
		log.Warn("auth.trust_role_header is on: any client may claim admin via %s", middleware.HeaderUserRole)
	}
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(middleware.AuthOptions{
		JWTSecret:           cfg.Auth.JWTSecret,
		AllowHeaderFallback: cfg.Auth.AllowHeaderFallback,
		TrustRoleHeader:     cfg.Auth.TrustRoleHeader,
	}, log))

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", editReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/reports", getReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/events/ws", eventsFeed.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (storage=%s)", addr, cfg.Storage.Driver)
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

	// websocket-соединения hijacked и не закрываются srv.Shutdown
	if err := feed.Close(); err != nil {
		log.Warn("Failed to close event feed: %v", err)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Доставляем уже поставленные в очередь уведомления
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("Notification queue was not drained: %v", err)
	}

	close(stopMetricsCh)
	closeAll(closers, log)

	log.Info("Server stopped gracefully")
}
