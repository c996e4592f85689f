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

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_appointment"
	createBreakHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_break"
	createReviewHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_review"
	createVacationHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_vacation"
	deleteBreakHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/delete_break"
	deleteVacationHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/delete_vacation"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_available_slots"
	getSalonAppointmentsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_salon_appointments"
	getStaffBreaksHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_staff_breaks"
	getStaffVacationsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_staff_vacations"
	getUserAppointmentsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_user_appointments"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_appointment_status"
	updateBreakHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_break"
	updateVacationHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_vacation"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	breaksRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/breaks"
	catalogRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
	reviewRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/review"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	staffRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/staff"
	vacationsRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/vacations"
	appointmentsService "github.com/m04kA/SMC-SalonBookingService/internal/service/appointments"
	reviewsService "github.com/m04kA/SMC-SalonBookingService/internal/service/reviews"
	scheduleService "github.com/m04kA/SMC-SalonBookingService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// TxManager общий интерфейс обоих менеджеров транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Выбираем executor и transaction manager (с метриками или без)
	var (
		executor dbmetrics.DBExecutor = db
		txMgr    TxManager            = simpletxmanager.NewTransactionManager(db)
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(executor)
	salonRepository := salonRepo.NewRepository(executor)
	staffRepository := staffRepo.NewRepository(executor)
	catalogRepository := catalogRepo.NewRepository(executor)
	breaksRepository := breaksRepo.NewRepository(executor)
	vacationsRepository := vacationsRepo.NewRepository(executor)
	reviewRepository := reviewRepo.NewRepository(executor)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		salonRepository,
		staffRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		breaksRepository,
		vacationsRepository,
		staffRepository,
		salonRepository,
		log,
	)
	reviewsSvc := reviewsService.NewService(
		reviewRepository,
		appointmentRepository,
		staffRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		salonRepository,
		staffRepository,
		catalogRepository,
		breaksRepository,
		vacationsRepository,
		txMgr,
		domain.AutoConfirmPolicy(cfg.Booking.AutoConfirmPolicy),
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		salonRepository,
		staffRepository,
		catalogRepository,
		breaksRepository,
		vacationsRepository,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSalonAppointments := getSalonAppointmentsHandler.NewHandler(appointmentsSvc, log)
	createBreak := createBreakHandler.NewHandler(scheduleSvc, log)
	getStaffBreaks := getStaffBreaksHandler.NewHandler(scheduleSvc, log)
	updateBreak := updateBreakHandler.NewHandler(scheduleSvc, log)
	deleteBreak := deleteBreakHandler.NewHandler(scheduleSvc, log)
	createVacation := createVacationHandler.NewHandler(scheduleSvc, log)
	getStaffVacations := getStaffVacationsHandler.NewHandler(scheduleSvc, log)
	updateVacation := updateVacationHandler.NewHandler(scheduleSvc, log)
	deleteVacation := deleteVacationHandler.NewHandler(scheduleSvc, log)
	createReview := createReviewHandler.NewHandler(reviewsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты мастера на дату
	api.HandleFunc("/salons/{salonId}/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Перерывы и отпуска мастера (просмотр расписания)
	api.HandleFunc("/staff/{staffId}/breaks", getStaffBreaks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff/{staffId}/vacations", getStaffVacations.Handle).Methods(http.MethodGet)

	// Получение записи по коду (доступ гостя к своей записи)
	api.HandleFunc("/appointments/code/{code}", getAppointment.HandleByCode).Methods(http.MethodGet)

	// Создание записи: клиент по X-User-ID или гость по имени и телефону
	guest := api.PathPrefix("").Subrouter()
	guest.Use(middleware.OptionalAuth)
	guest.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для владельца и мастеров) ---
	protected.HandleFunc("/salons/{salonId}/appointments", getSalonAppointments.Handle).Methods(http.MethodGet)

	// Перерывы мастера
	protected.HandleFunc("/staff/{staffId}/breaks", createBreak.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/breaks/{breakId}", updateBreak.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}/breaks/{breakId}", deleteBreak.Handle).Methods(http.MethodDelete)

	// Отпуска мастера
	protected.HandleFunc("/staff/{staffId}/vacations", createVacation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/vacations/{vacationId}", updateVacation.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/staff/{staffId}/vacations/{vacationId}", deleteVacation.Handle).Methods(http.MethodDelete)

	// --- Отзывы ---
	protected.HandleFunc("/appointments/{appointmentId}/reviews", createReview.Handle).Methods(http.MethodPost)

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
