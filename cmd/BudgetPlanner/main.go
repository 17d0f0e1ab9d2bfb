package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	database "github.com/sebuszqo/BudgetPlanner/db"
	"github.com/sebuszqo/BudgetPlanner/internal/auth"
	"github.com/sebuszqo/BudgetPlanner/internal/logger"
	"github.com/sebuszqo/BudgetPlanner/internal/notify"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/application"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/infrastructure"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/interfaces"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router             *http.ServeMux
	authHandler        *auth.Handler
	authService        auth.Service
	transactionHandler *interfaces.TransactionHandler
	debtHandler        *interfaces.DebtHandler
	forecastHandler    *interfaces.ForecastHandler
	categoryHandler    *interfaces.CategoryHandler
	settingsHandler    *interfaces.SettingsHandler
	backupHandler      *interfaces.BackupHandler
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	transactionHandler *interfaces.TransactionHandler,
	debtHandler *interfaces.DebtHandler,
	forecastHandler *interfaces.ForecastHandler,
	categoryHandler *interfaces.CategoryHandler,
	settingsHandler *interfaces.SettingsHandler,
	backupHandler *interfaces.BackupHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		authHandler:        authHandler,
		authService:        authService,
		transactionHandler: transactionHandler,
		debtHandler:        debtHandler,
		forecastHandler:    forecastHandler,
		categoryHandler:    categoryHandler,
		settingsHandler:    settingsHandler,
		backupHandler:      backupHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if os.Getenv("APP_PASSWORD_HASH") == "" {
		return errors.New("no APP_PASSWORD_HASH Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protect := s.authService.JWTAccessTokenMiddleware()

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/transactions",
		protect(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/transactions",
		protect(http.HandlerFunc(s.transactionHandler.ListTransactions)))
	protectedRoutes.Handle("GET /api/protected/transactions/{transactionID}",
		protect(http.HandlerFunc(s.transactionHandler.GetTransaction)))
	protectedRoutes.Handle("PUT /api/protected/transactions/{transactionID}",
		protect(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{transactionID}",
		protect(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))
	protectedRoutes.Handle("POST /api/protected/transactions/{transactionID}/split",
		protect(http.HandlerFunc(s.transactionHandler.SplitSeries)))

	// OCCURRENCES API
	protectedRoutes.Handle("GET /api/protected/occurrences",
		protect(http.HandlerFunc(s.transactionHandler.GetOccurrences)))
	protectedRoutes.Handle("POST /api/protected/occurrences/materialize",
		protect(http.HandlerFunc(s.transactionHandler.Materialize)))

	// DEBTS API
	protectedRoutes.Handle("POST /api/protected/debts",
		protect(http.HandlerFunc(s.debtHandler.CreateDebt)))
	protectedRoutes.Handle("GET /api/protected/debts",
		protect(http.HandlerFunc(s.debtHandler.ListDebts)))
	protectedRoutes.Handle("GET /api/protected/debts/{accountID}",
		protect(http.HandlerFunc(s.debtHandler.GetDebt)))
	protectedRoutes.Handle("PUT /api/protected/debts/{accountID}",
		protect(http.HandlerFunc(s.debtHandler.UpdateDebt)))
	protectedRoutes.Handle("DELETE /api/protected/debts/{accountID}",
		protect(http.HandlerFunc(s.debtHandler.DeleteDebt)))
	protectedRoutes.Handle("POST /api/protected/debts/{accountID}/payments",
		protect(http.HandlerFunc(s.debtHandler.RecordPayment)))

	// FORECAST API
	protectedRoutes.Handle("GET /api/protected/forecast/month",
		protect(http.HandlerFunc(s.forecastHandler.GetMonthForecast)))
	protectedRoutes.Handle("GET /api/protected/forecast/year",
		protect(http.HandlerFunc(s.forecastHandler.GetYearForecast)))
	protectedRoutes.Handle("GET /api/protected/forecast/snapshot",
		protect(http.HandlerFunc(s.forecastHandler.GetMonthSnapshot)))

	// CATEGORIES API
	protectedRoutes.Handle("GET /api/protected/categories",
		protect(http.HandlerFunc(s.categoryHandler.GetAllCategories)))

	// SETTINGS AND REMINDERS API
	protectedRoutes.Handle("GET /api/protected/settings",
		protect(http.HandlerFunc(s.settingsHandler.GetSettings)))
	protectedRoutes.Handle("PUT /api/protected/settings",
		protect(http.HandlerFunc(s.settingsHandler.UpdateSettings)))
	protectedRoutes.Handle("GET /api/protected/reminders",
		protect(http.HandlerFunc(s.settingsHandler.GetDailyReminders)))
	protectedRoutes.Handle("POST /api/protected/reminders/{reminderID}/dismiss",
		protect(http.HandlerFunc(s.settingsHandler.DismissReminder)))

	// BACKUP API
	protectedRoutes.Handle("GET /api/protected/backup",
		protect(http.HandlerFunc(s.backupHandler.GetBackup)))
	protectedRoutes.Handle("POST /api/protected/backup/export",
		protect(http.HandlerFunc(s.backupHandler.ExportBackup)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := dbService.ApplySchema(); err != nil {
		log.Fatalf("Could not apply database schema: %v", err)
	}

	appLogger := logger.New()

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	debtRepo := infrastructure.NewDebtRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	settingsRepo := infrastructure.NewSettingsRepository(dbService.DB)

	jwtManager := auth.NewJWTManager()
	authService := auth.NewService(jwtManager)
	authHandler := auth.NewHandler(authService)

	categoryService := application.NewCategoryService(categoryRepo)
	transactionService := application.NewTransactionService(transactionRepo, categoryService)
	projectionService := application.NewProjectionService(transactionRepo)
	forecastService := application.NewForecastService(transactionRepo, debtRepo, categoryService)
	debtService := application.NewDebtService(debtRepo, appLogger)

	notificationHost := notify.NewLogHost(appLogger)
	notificationService := application.NewNotificationService(
		transactionRepo, debtRepo, categoryService, settingsRepo, notificationHost, appLogger)

	transactionHandler := interfaces.NewTransactionHandler(transactionService, projectionService, notificationService, respondJSON, respondError)
	debtHandler := interfaces.NewDebtHandler(debtService, notificationService, respondJSON, respondError)
	forecastHandler := interfaces.NewForecastHandler(forecastService, respondJSON, respondError)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)
	settingsHandler := interfaces.NewSettingsHandler(settingsRepo, notificationService, respondJSON, respondError)

	backupService := application.NewBackupService(transactionRepo, debtRepo, categoryRepo, settingsRepo, infrastructure.NewSnapshotStore())
	backupHandler := interfaces.NewBackupHandler(backupService, respondJSON, respondError)

	server := NewServer(authHandler, authService, transactionHandler, debtHandler, forecastHandler, categoryHandler, settingsHandler, backupHandler)
	server.RegisterRoutes()

	// Catch up on anything that became due while the app was down, then
	// hand the scheduler the daily tick.
	runDailyTick(projectionService, debtService, notificationService)
	if err := StartDailyScheduler(projectionService, debtService, notificationService); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func runDailyTick(
	projectionService *application.ProjectionService,
	debtService *application.DebtService,
	notificationService *application.NotificationService,
) {
	now := time.Now()
	created, err := projectionService.MaterializeDue(now)
	if err != nil {
		log.Printf("Error materializing due occurrences: %v", err)
	} else if created > 0 {
		log.Printf("Materialized %d due occurrences", created)
	}

	applied, err := debtService.RunAutopay(now)
	if err != nil {
		log.Printf("Error running autopay: %v", err)
	} else if applied > 0 {
		log.Printf("Autopay applied to %d accounts", applied)
	}

	if err := notificationService.Reconcile(context.Background()); err != nil {
		log.Printf("Error reconciling reminders: %v", err)
	}
}

func StartDailyScheduler(
	projectionService *application.ProjectionService,
	debtService *application.DebtService,
	notificationService *application.NotificationService,
) error {
	c := cron.New()
	// Shortly after midnight, local time.
	_, err := c.AddFunc("5 0 * * *", func() {
		runDailyTick(projectionService, debtService, notificationService)
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
