package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"loan-ledger/internal/api/handler"
	mw "loan-ledger/internal/api/middleware"
	"loan-ledger/internal/config"
	"loan-ledger/internal/domain/customer"
	"loan-ledger/internal/domain/identity"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/repayment"
	"loan-ledger/internal/domain/report"

	_ "loan-ledger/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles everything the HTTP surface depends on. Redis may be nil.
type Services struct {
	Accounts   identity.AccountService
	Tokens     identity.TokenProvider
	Customers  customer.CustomerService
	Loans      loan.LoanService
	Repayments repayment.RepaymentService
	Reports    report.ReportService
	Redis      *redis.Client
	DB         Pinger
}

// SetupRouter wires middleware and routes. ctx bounds background work such as the rate limiter sweeper.
func SetupRouter(ctx context.Context, svc Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupHealthEndpoint(router, svc.DB, logger)
	setupSwaggerEndpoint(router, logger)
	setupAuthRoutes(router, svc.Accounts, logger)

	idem := mw.NewIdempotency(svc.Redis, cfg.Redis.IdempotencyTTL, logger)
	router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(svc.Tokens, logger))
		setupCustomerRoutes(r, svc.Customers, logger)
		setupLoanRoutes(r, svc.Loans, svc.Repayments, idem, logger)
		setupRepaymentRoutes(r, svc.Repayments, idem, logger)
		setupReportRoutes(r, svc.Reports, logger)
	})

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupHealthEndpoint(router *chi.Mux, db Pinger, logger *slog.Logger) {
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.WarnContext(r.Context(), "Health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, accounts identity.AccountService, logger *slog.Logger) {
	h := handler.NewAuthHandler(accounts, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

func setupCustomerRoutes(r chi.Router, svc customer.CustomerService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.CreateCustomer)
		r.Get("/", h.ListCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
		})
	})
}

func setupLoanRoutes(r chi.Router, svc loan.LoanService, repayments repayment.RepaymentService, idem *mw.Idempotency, logger *slog.Logger) {
	h := handler.NewLoanHandler(svc, repayments, logger)

	r.Route("/loans", func(r chi.Router) {
		r.With(idem.Middleware).Post("/", h.IssueLoan)
		r.Get("/", h.ListLoans)
		r.Get("/{loanID}", h.GetLoan)
		r.Get("/{loanID}/repayments", h.ListRepayments)
	})
}

func setupRepaymentRoutes(r chi.Router, svc repayment.RepaymentService, idem *mw.Idempotency, logger *slog.Logger) {
	h := handler.NewRepaymentHandler(svc, logger)
	r.With(idem.Middleware).Post("/repayments", h.RecordRepayment)
}

func setupReportRoutes(r chi.Router, svc report.ReportService, logger *slog.Logger) {
	h := handler.NewReportHandler(svc, logger)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/summary", h.Summary)
		r.Get("/overdue", h.Overdue)
	})
}
