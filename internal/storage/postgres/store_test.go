package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/govalues/decimal"

	"github.com/finbooks/reporting/internal/ledger"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func applyInitSQL(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Resolve init SQL path relative to this test file so CWD doesn't matter
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../.."))
	path := filepath.Join(repoRoot, "db", "migrations", "0001_init.sql")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read init sql: %v", err)
	}
	if _, err := s.pool.Exec(ctx, string(b)); err != nil {
		t.Fatalf("apply init sql: %v", err)
	}
}

func truncate(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.pool.Exec(ctx, `truncate table ledger_entries`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func jan(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestStore_Reports(t *testing.T) {
	dsn := getTestDSN(t)
	s := mustOpen(t, dsn)
	defer s.Close()
	applyInitSQL(t, s)
	truncate(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}

	n, err := s.SeedDev(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(ledger.SampleEntries()) {
		t.Fatalf("seeded %d entries, want %d", n, len(ledger.SampleEntries()))
	}
	// Second seed is a no-op on a populated table.
	if n, err := s.SeedDev(ctx); err != nil || n != 0 {
		t.Fatalf("re-seed: n=%d err=%v", n, err)
	}

	totals, err := s.CashActivityTotals(ctx, ledger.DefaultCompanyID, jan(1), jan(31))
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	op := totals[ledger.CategoryOperating]
	if op.Outflows.Cmp(decimal.MustNew(6000, 0)) != 0 || op.Net.Cmp(decimal.MustNew(-6000, 0)) != 0 {
		t.Fatalf("operating = %+v, want outflows 6000 net -6000", op)
	}
	inv := totals[ledger.CategoryInvesting]
	if inv.Inflows.Cmp(decimal.MustNew(15000, 0)) != 0 {
		t.Fatalf("investing = %+v, want inflows 15000", inv)
	}
	fin := totals[ledger.CategoryFinancing]
	if fin.Inflows.Cmp(decimal.MustNew(10000, 0)) != 0 || fin.Outflows.Cmp(decimal.MustNew(7000, 0)) != 0 {
		t.Fatalf("financing = %+v, want inflows 10000 outflows 7000", fin)
	}

	all, err := s.ClosingBalance(ctx, ledger.DefaultCompanyID, jan(31), ledger.BalanceScopeAll)
	if err != nil {
		t.Fatalf("closing balance: %v", err)
	}
	if all.Cmp(decimal.MustNew(4000, 0)) != 0 {
		t.Fatalf("closing balance (all) = %s, want 4000", all)
	}
	cash, err := s.ClosingBalance(ctx, ledger.DefaultCompanyID, jan(31), ledger.BalanceScopeCashOnly)
	if err != nil {
		t.Fatalf("closing balance: %v", err)
	}
	if cash.Cmp(decimal.MustNew(12000, 0)) != 0 {
		t.Fatalf("closing balance (cash_only) = %s, want 12000", cash)
	}

	bal, err := s.BankAccountBalance(ctx, ledger.DefaultCompanyID, "MainBank")
	if err != nil {
		t.Fatalf("bank balance: %v", err)
	}
	if bal.Cmp(decimal.MustNew(12000, 0)) != 0 {
		t.Fatalf("ledger balance = %s, want 12000", bal)
	}

	open, err := s.UnreconciledEntries(ctx, ledger.DefaultCompanyID, "MainBank")
	if err != nil {
		t.Fatalf("unreconciled: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("expected 2 unreconciled entries, got %d", len(open))
	}
	if open[0].Reference != "CHQ102" || open[1].Reference != "CHQ104" {
		t.Fatalf("unexpected refs: %s, %s", open[0].Reference, open[1].Reference)
	}
	if open[0].Account != "Inventory" || open[0].BankAccount != "MainBank" || open[0].Party != "Supplier A" {
		t.Fatalf("unexpected entry fields: %+v", open[0])
	}
	if open[0].Net().Cmp(decimal.MustNew(-3000, 0)) != 0 {
		t.Fatalf("net = %s, want -3000", open[0].Net())
	}

	// Aggregates over companies or accounts with no rows come back zero.
	empty, err := s.BankAccountBalance(ctx, 99, "MainBank")
	if err != nil {
		t.Fatalf("empty balance: %v", err)
	}
	if !empty.IsZero() {
		t.Fatalf("expected zero balance, got %s", empty)
	}
}
