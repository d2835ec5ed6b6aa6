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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers/check_availability"
	createBookingHandler "github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers/create_booking"
	deliveryStatsHandler "github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers/delivery_stats"
	getBookingHandler "github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/aibekm/TezUsta-BookingEngine/internal/api/handlers/get_client_bookings"
	"github.com/aibekm/TezUsta-BookingEngine/internal/api/middleware"
	"github.com/aibekm/TezUsta-BookingEngine/internal/catalog"
	"github.com/aibekm/TezUsta-BookingEngine/internal/config"
	"github.com/aibekm/TezUsta-BookingEngine/internal/domain"
	"github.com/aibekm/TezUsta-BookingEngine/internal/infra/events"
	bookingRepo "github.com/aibekm/TezUsta-BookingEngine/internal/infra/storage/booking"
	deliveryLogRepo "github.com/aibekm/TezUsta-BookingEngine/internal/infra/storage/deliverylog"
	profileServiceClient "github.com/aibekm/TezUsta-BookingEngine/internal/integrations/profileservice"
	serviceCatalogClient "github.com/aibekm/TezUsta-BookingEngine/internal/integrations/servicecatalog"
	smsGatewayClient "github.com/aibekm/TezUsta-BookingEngine/internal/integrations/smsgateway"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/availability"
	bookingsService "github.com/aibekm/TezUsta-BookingEngine/internal/service/bookings"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/notify"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/phone"
	"github.com/aibekm/TezUsta-BookingEngine/internal/service/pricing"
	createBookingUC "github.com/aibekm/TezUsta-BookingEngine/internal/usecase/create_instant_booking"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/dbmetrics"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/logger"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/metrics"
	"github.com/aibekm/TezUsta-BookingEngine/pkg/txmanager"
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

	log.Info("Starting TezUsta-BookingEngine...")
	log.Info("Configuration loaded from config.toml")

	// Справочник регионов, тарифов, операторов и шаблонов
	catalogCfg := catalog.Kyrgyzstan()
	catalogCfg.DefaultLanguage = domain.Language(cfg.Notifications.DefaultLanguage)
	cat, err := catalog.New(catalogCfg)
	if err != nil {
		log.Fatal("Failed to build catalog: %v", err)
	}
	log.Info("Catalog loaded: default language=%s", cat.DefaultLanguage())

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	catalogClient := serviceCatalogClient.NewClient(
		cfg.ServiceCatalog.URL,
		time.Duration(cfg.ServiceCatalog.Timeout)*time.Second,
		log,
	)
	smsClient := smsGatewayClient.NewClient(
		cfg.SmsGateway.URL,
		cfg.SmsGateway.APIKey,
		time.Duration(cfg.SmsGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s, ServiceCatalog=%s, SmsGateway=%s)",
		cfg.ProfileService.URL, cfg.ServiceCatalog.URL, cfg.SmsGateway.URL)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		deliveryRepository *deliveryLogRepo.Repository
		txMgr              *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		deliveryRepository = deliveryLogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		deliveryRepository = deliveryLogRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(&txmanager.SqlDBAdapter{DB: db})
	}

	// Инициализируем доменные сервисы
	phoneClassifier := phone.NewClassifier(cat.Carriers())
	pricingEngine := pricing.NewEngine(cat)
	availabilityChecker := availability.NewChecker(
		bookingRepository,
		cat,
		cfg.Booking.AlternativeSlotsCount,
		cfg.Booking.AlternativeSlotStepMinutes,
		log,
	)

	var notifyMetrics notify.Metrics
	if cfg.Metrics.Enabled {
		notifyMetrics = metricsCollector
	}
	dispatcher := notify.NewDispatcher(
		phoneClassifier,
		cat,
		smsClient,
		deliveryRepository,
		notifyMetrics,
		notify.Config{
			DefaultMaxMessageLength: cfg.Notifications.DefaultMaxMessageLength,
			BatchSize:               cfg.Notifications.BatchSize,
			BatchDelay:              time.Duration(cfg.Notifications.BatchDelaySeconds) * time.Second,
		},
		log,
	)

	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Публикация событий (если включена)
	var publisher createBookingUC.EventPublisher
	var kafkaPublisher *events.Publisher
	if cfg.Kafka.Enabled {
		kafkaPublisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		publisher = kafkaPublisher
		defer kafkaPublisher.Close()
		log.Info("Kafka event publisher initialized (topic=%s)", cfg.Kafka.Topic)
	}

	// Инициализируем use case создания мгновенного бронирования
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityChecker,
		pricingEngine,
		catalogClient,
		profileClient,
		dispatcher,
		publisher,
		cat,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilityChecker, log)
	deliveryStats := deliveryStatsHandler.NewHandler(dispatcher, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности слота мастера
	api.HandleFunc("/providers/{providerId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание мгновенного бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Уведомления ---
	// Статистика доставки SMS
	protected.HandleFunc("/notifications/stats", deliveryStats.Handle).Methods(http.MethodGet)

	// Фоновая очистка журнала доставки по TTL
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go runDeliveryLogJanitor(janitorCtx, deliveryRepository, cfg.Notifications.DeliveryLogTTLDays, log)

	// Создаем HTTP сервер
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

	stopJanitor()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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

// runDeliveryLogJanitor раз в сутки удаляет записи журнала доставки старше TTL
func runDeliveryLogJanitor(ctx context.Context, repo *deliveryLogRepo.Repository, ttlDays int, log *logger.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().UTC().AddDate(0, 0, -ttlDays)
			purged, err := repo.PurgeOlderThan(ctx, cutoff)
			if err != nil {
				log.Error("Delivery log janitor: purge failed: %v", err)
				continue
			}
			log.Info("Delivery log janitor: purged %d entries older than %s", purged, cutoff.Format(domain.DateFormat))
		}
	}
}
