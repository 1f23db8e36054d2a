package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/govalues/decimal"
	"github.com/joho/godotenv"

	"github.com/finbooks/reporting/internal/httpapi"
	"github.com/finbooks/reporting/internal/ledger"
	"github.com/finbooks/reporting/internal/service/reconciliation"
	"github.com/finbooks/reporting/internal/storage/memory"
	pgstore "github.com/finbooks/reporting/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	statement := reconciliation.FixedStatement{Balance: bankBalanceFromEnv(logger)}
	scope := balanceScopeFromEnv(logger)

	var repo httpapi.Repository
	var closeFn func()

	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		// Use Postgres store when DATABASE_URL is provided
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = func() { pg.Close() }
		// Optional dev seed for compose/local
		if dev := strings.ToLower(strings.TrimSpace(os.Getenv("DEV_SEED"))); dev == "1" || dev == "true" || dev == "yes" {
			n, err := pg.SeedDev(ctx)
			if err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logger.Info("DEV seed (postgres)", "inserted", n)
			}
		}
		repo = pg
		logger.Info("storage backend: postgres")
	} else {
		// Default to in-memory store with the sample ledger
		store := memory.New()
		store.SeedEntries(ledger.SampleEntries())
		repo = store
		logger.Info("storage backend: memory", "seeded_entries", len(ledger.SampleEntries()))
	}

	srv := &http.Server{
		Addr:              ":" + portFromEnv(),
		Handler:           httpapi.New(repo, statement, scope, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("reporting service listening", "addr", srv.Addr, "closing_balance_scope", string(scope))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// bankBalanceFromEnv reads BANK_STATEMENT_BALANCE, falling back to the
// reference statement figure of 19000.
func bankBalanceFromEnv(l *slog.Logger) decimal.Decimal {
	fallback := decimal.MustNew(19000, 0)
	raw := strings.TrimSpace(os.Getenv("BANK_STATEMENT_BALANCE"))
	if raw == "" {
		return fallback
	}
	d, err := decimal.Parse(raw)
	if err != nil {
		l.Warn("invalid BANK_STATEMENT_BALANCE, using default", "value", raw)
		return fallback
	}
	return d
}

// balanceScopeFromEnv reads CLOSING_BALANCE_SCOPE (all|cash_only).
func balanceScopeFromEnv(l *slog.Logger) ledger.BalanceScope {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CLOSING_BALANCE_SCOPE"))) {
	case "", "all":
		return ledger.BalanceScopeAll
	case "cash_only", "cashonly", "cash":
		return ledger.BalanceScopeCashOnly
	default:
		l.Warn("unknown CLOSING_BALANCE_SCOPE, using all")
		return ledger.BalanceScopeAll
	}
}

func portFromEnv() string {
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		return p
	}
	return "8080"
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
