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

	bookSessionHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/book_session"
	cancelSessionHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/cancel_session"
	getAvailabilityHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_availability"
	getBalanceHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_balance"
	getLedgerHistoryHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_ledger_history"
	getSessionHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_session"
	getSlotsHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/get_slots"
	listPastHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/list_past"
	listUpcomingHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/list_upcoming"
	purchaseCreditsHandler "github.com/m04kA/GMS-BookingService/internal/api/handlers/purchase_credits"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	"github.com/m04kA/GMS-BookingService/internal/config"
	ledgerRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/ledger"
	sessionRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/session"
	slotRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/slot"
	memberServiceClient "github.com/m04kA/GMS-BookingService/internal/integrations/memberservice"
	paymentsClient "github.com/m04kA/GMS-BookingService/internal/integrations/payments"
	ledgerService "github.com/m04kA/GMS-BookingService/internal/service/ledger"
	sessionsService "github.com/m04kA/GMS-BookingService/internal/service/sessions"
	bookSessionUC "github.com/m04kA/GMS-BookingService/internal/usecase/book_session"
	cancelSessionUC "github.com/m04kA/GMS-BookingService/internal/usecase/cancel_session"
	getAvailabilityUC "github.com/m04kA/GMS-BookingService/internal/usecase/get_availability"
	purchaseCreditsUC "github.com/m04kA/GMS-BookingService/internal/usecase/purchase_credits"
	sweepCompletionsUC "github.com/m04kA/GMS-BookingService/internal/usecase/sweep_completions"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/logger"
	"github.com/m04kA/GMS-BookingService/pkg/metrics"
	"github.com/m04kA/GMS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/GMS-BookingService/pkg/txmanager"
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

	log.Info("Starting GMS-BookingService...")
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

	// Инициализируем интеграционных клиентов
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	paymentClient := paymentsClient.NewClient(
		cfg.PaymentService.URL,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MemberService=%s timeout=%ds, PaymentService=%s timeout=%ds)",
		cfg.MemberService.URL, cfg.MemberService.Timeout, cfg.PaymentService.URL, cfg.PaymentService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		sessionRepository *sessionRepo.Repository
		slotRepository    *slotRepo.Repository
		ledgerRepository  *ledgerRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		ledgerRepository = ledgerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		ledgerRepository = ledgerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	sessionsSvc := sessionsService.NewService(sessionRepository, &sessionsService.RealTimeProvider{}, log)
	ledgerSvc := ledgerService.NewService(ledgerRepository, log)

	// Инициализируем use cases
	bookSessionUseCase := bookSessionUC.NewUsecase(
		sessionRepository,
		slotRepository,
		ledgerRepository,
		memberClient,
		txMgr,
		&bookSessionUC.RealTimeProvider{},
		bookSessionUC.Policy{
			AdvanceBookingDays:      cfg.Booking.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Booking.MinBookingNoticeMinutes,
			RequireApproval:         cfg.Booking.RequireApproval,
		},
		log,
	)

	cancelSessionUseCase := cancelSessionUC.NewUsecase(
		sessionRepository,
		ledgerRepository,
		txMgr,
		&cancelSessionUC.RealTimeProvider{},
		log,
	)

	purchaseCreditsUseCase := purchaseCreditsUC.NewUsecase(
		ledgerRepository,
		memberClient,
		paymentClient,
		txMgr,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUsecase(
		sessionRepository,
		slotRepository,
		&getAvailabilityUC.RealTimeProvider{},
		cfg.Booking.AdvanceBookingDays,
	)

	sweepUseCase := sweepCompletionsUC.NewUsecase(
		sessionRepository,
		&sweepCompletionsUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	bookSession := bookSessionHandler.NewHandler(bookSessionUseCase, log)
	cancelSession := cancelSessionHandler.NewHandler(cancelSessionUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	listUpcoming := listUpcomingHandler.NewHandler(sessionsSvc, log)
	listPast := listPastHandler.NewHandler(sessionsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getSlots := getSlotsHandler.NewHandler(slotRepository, log)
	getBalance := getBalanceHandler.NewHandler(ledgerSvc, log)
	getLedgerHistory := getLedgerHistoryHandler.NewHandler(ledgerSvc, log)
	purchaseCredits := purchaseCreditsHandler.NewHandler(purchaseCreditsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка доступности слотов на месяц
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Список настроенных слотов
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Member-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии ---
	protected.HandleFunc("/sessions", bookSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{id}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{id}/cancel", cancelSession.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/members/{id}/sessions/upcoming", listUpcoming.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/members/{id}/sessions/past", listPast.Handle).Methods(http.MethodGet)

	// --- Кредиты ---
	protected.HandleFunc("/members/{id}/credits", getBalance.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/members/{id}/credits/history", getLedgerHistory.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/members/{id}/credits/purchase", purchaseCredits.Handle).Methods(http.MethodPost)

	// Фоновый перевод прошедших сессий в completed
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Sweep.IntervalSeconds) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if _, err := sweepUseCase.Execute(sweepCtx); err != nil {
					log.Error("Sweep failed: %v", err)
				}
			}
		}
	}()
	log.Info("Completion sweep started (interval=%ds)", cfg.Sweep.IntervalSeconds)

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

	stopSweep()

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

	log.Info("Server stopped")
}
