package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/poeconomics/fundbank-backend/internal/api/handlers"
	custommiddleware "github.com/poeconomics/fundbank-backend/internal/api/middleware"
	"github.com/poeconomics/fundbank-backend/internal/config"
	"github.com/poeconomics/fundbank-backend/internal/service"
)

// NewRouter creates and configures the HTTP router. Read endpoints are
// open; everything that mutates state sits behind the admin session
// middleware.
func NewRouter(
	systemService *service.SystemService,
	authService *service.AuthService,
	fundService *service.FundService,
	transactionService *service.TransactionService,
	navService *service.NavService,
	settingsService *service.SettingsService,
	auditService *service.AuditService,
	backupService *service.BackupService,
	snapshotService *service.SnapshotService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	adminOnly := custommiddleware.AdminSession(authService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		authHandler := handlers.NewAuthHandler(authService)
		r.Post("/auth/login", authHandler.Login)
		r.With(adminOnly).Post("/auth/logout", authHandler.Logout)

		walletHandler := handlers.NewWalletHandler(fundService, transactionService)
		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.Wallets)
			r.Get("/users", walletHandler.Users)
			r.Get("/{user}/history", walletHandler.History)
			r.With(adminOnly).Delete("/{user}", walletHandler.DeleteWallet)
		})

		fundHandler := handlers.NewFundHandler(fundService)
		navHandler := handlers.NewNavHandler(navService)
		snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
		r.Route("/fund", func(r chi.Router) {
			r.Get("/nav", navHandler.Points)
			r.Get("/nav-per-share", fundHandler.NavPerShare)
			r.Get("/ledger", fundHandler.Ledger)
			r.Get("/snapshots", snapshotHandler.Snapshots)
			r.With(adminOnly).Post("/snapshots/refresh", snapshotHandler.Refresh)
		})

		transactionHandler := handlers.NewTransactionHandler(transactionService, navService.StartDate())
		r.With(adminOnly).Get("/transaction", transactionHandler.AllTransactions)
		r.With(adminOnly).Post("/transaction", transactionHandler.CreateTransaction)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/nav/range", navHandler.Range)
			r.Put("/nav", navHandler.Save)

			settingsHandler := handlers.NewSettingsHandler(settingsService)
			r.Get("/settings/fees", settingsHandler.Fees)
			r.Put("/settings/fees", settingsHandler.UpdateFees)

			auditHandler := handlers.NewAuditHandler(auditService)
			r.Get("/audit", auditHandler.Events)

			backupHandler := handlers.NewBackupHandler(backupService)
			r.Route("/backup", func(r chi.Router) {
				r.Get("/transactions", backupHandler.Transactions)
				r.Get("/nav", backupHandler.Nav)
				r.Get("/audit", backupHandler.Audit)
			})
			r.Post("/restore/transactions", backupHandler.RestoreTransactions)
		})
	})

	return r
}
