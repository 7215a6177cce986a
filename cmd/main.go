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

	cancelReservationHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/cancel_reservation"
	closeSessionHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/close_session"
	completePaymentHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/complete_payment"
	createPaymentHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/create_payment"
	createReservationHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/create_reservation"
	createSessionHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/create_session"
	createTemplateHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/create_template"
	deleteTemplateHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/delete_template"
	getAvailableSlotsHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/get_available_slots"
	getClientReservationsHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/get_client_reservations"
	getReservationHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/get_reservation"
	getReservationPaymentsHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/get_reservation_payments"
	getSessionHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/get_session"
	getSessionReservationsHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/get_session_reservations"
	getTrainerTemplatesHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/get_trainer_templates"
	materializeSessionHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/materialize_session"
	updateReservationStatusHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/update_reservation_status"
	updateSessionCapacityHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/update_session_capacity"
	updateTemplateHandler "github.com/m04kA/FTM-BookingService/internal/api/handlers/update_template"
	"github.com/m04kA/FTM-BookingService/internal/api/middleware"
	"github.com/m04kA/FTM-BookingService/internal/config"
	"github.com/m04kA/FTM-BookingService/internal/domain"
	paymentRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/reservation"
	sessionRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/session"
	templateRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/template"
	notifyServiceClient "github.com/m04kA/FTM-BookingService/internal/integrations/notifyservice"
	paymentsService "github.com/m04kA/FTM-BookingService/internal/service/payments"
	reservationsService "github.com/m04kA/FTM-BookingService/internal/service/reservations"
	sessionsService "github.com/m04kA/FTM-BookingService/internal/service/sessions"
	templatesService "github.com/m04kA/FTM-BookingService/internal/service/templates"
	createReservationUC "github.com/m04kA/FTM-BookingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/FTM-BookingService/internal/usecase/get_available_slots"
	materializeSessionUC "github.com/m04kA/FTM-BookingService/internal/usecase/materialize_session"
	"github.com/m04kA/FTM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FTM-BookingService/pkg/logger"
	"github.com/m04kA/FTM-BookingService/pkg/metrics"
	"github.com/m04kA/FTM-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/FTM-BookingService/pkg/txmanager"
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

	log.Info("Starting FTM-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиента сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		sessionRepository     *sessionRepo.Repository
		templateRepository    *templateRepo.Repository
		paymentRepository     *paymentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в services и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		templateRepository = templateRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		templateRepository = templateRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		sessionRepository,
		notifyClient,
		txMgr,
		log,
	)
	sessionSvc := sessionsService.NewService(
		sessionRepository,
		txMgr,
		log,
		cfg.Booking.DefaultCapacity,
	)
	templateSvc := templatesService.NewService(templateRepository, log)
	paymentSvc := paymentsService.NewService(paymentRepository, reservationRepository, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		sessionRepository,
		notifyClient,
		txMgr,
		domain.ReservationStatus(cfg.Booking.DefaultInitialStatus),
		log,
	)
	materializeSessionUseCase := materializeSessionUC.NewUseCase(
		templateRepository,
		sessionRepository,
		cfg.Booking.DefaultCapacity,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		templateRepository,
		sessionRepository,
		cfg.Booking.DefaultCapacity,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationSvc, log)
	getSessionReservations := getSessionReservationsHandler.NewHandler(reservationSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createTemplate := createTemplateHandler.NewHandler(templateSvc, log)
	getTrainerTemplates := getTrainerTemplatesHandler.NewHandler(templateSvc, log)
	updateTemplate := updateTemplateHandler.NewHandler(templateSvc, log)
	deleteTemplate := deleteTemplateHandler.NewHandler(templateSvc, log)
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	materializeSession := materializeSessionHandler.NewHandler(materializeSessionUseCase, log)
	updateSessionCapacity := updateSessionCapacityHandler.NewHandler(sessionSvc, log)
	closeSession := closeSessionHandler.NewHandler(sessionSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentSvc, log)
	completePayment := completePaymentHandler.NewHandler(paymentSvc, log)
	getReservationPayments := getReservationPaymentsHandler.NewHandler(paymentSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог доступных слотов тренера на дату
	api.HandleFunc("/trainers/{trainerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание доступности тренера
	api.HandleFunc("/trainers/{trainerId}/templates",
		getTrainerTemplates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{sessionId}/reservations", getSessionReservations.Handle).Methods(http.MethodGet)

	// --- Шаблоны доступности (для тренеров) ---
	protected.HandleFunc("/trainers/{trainerId}/templates", createTemplate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/templates/{templateId}", updateTemplate.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/templates/{templateId}", deleteTemplate.Handle).Methods(http.MethodDelete)

	// --- Сессии ---
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/materialize", materializeSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{sessionId}/capacity", updateSessionCapacity.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)

	// --- Платежи ---
	protected.HandleFunc("/reservations/{reservationId}/payments", createPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/payments", getReservationPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}/complete", completePayment.Handle).Methods(http.MethodPatch)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
