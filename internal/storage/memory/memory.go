package memory

// Package memory provides a simple in-memory ledger store used for
// development and tests. It answers the same queries as the postgres store
// by filtering entries through the domain classification rules, keeping the
// code path easy to follow.
import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/govalues/decimal"

	"github.com/finbooks/reporting/internal/ledger"
	"github.com/finbooks/reporting/internal/service/cashflow"
)

// Store is an in-memory ledger guarded by an RWMutex for concurrent reads.
type Store struct {
	mu      sync.RWMutex
	entries []ledger.Entry
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{entries: make([]ledger.Entry, 0)}
}

// SeedEntry adds one entry. Entries are kept sorted by (date, id) so query
// results are deterministic.
func (s *Store) SeedEntry(e ledger.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	sort.Slice(s.entries, func(i, j int) bool {
		if s.entries[i].Date.Equal(s.entries[j].Date) {
			return s.entries[i].ID.String() < s.entries[j].ID.String()
		}
		return s.entries[i].Date.Before(s.entries[j].Date)
	})
}

// SeedEntries adds a batch of entries.
func (s *Store) SeedEntries(entries []ledger.Entry) {
	for _, e := range entries {
		s.SeedEntry(e)
	}
}

// Reset drops all entries.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = s.entries[:0]
	s.mu.Unlock()
}

// CashActivityTotals implements cashflow.Repo.
func (s *Store) CashActivityTotals(_ context.Context, companyID int64, from, to time.Time) (map[ledger.Category]cashflow.ActivityTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[ledger.Category]cashflow.ActivityTotal, 3)
	for _, e := range s.entries {
		if e.CompanyID != companyID || !e.InRange(from, to) || !ledger.IsCash(e) {
			continue
		}
		total := out[ledger.Classify(e)]
		net := e.Net()
		switch {
		case net.IsPos():
			total.Inflows, _ = total.Inflows.Add(net)
		case net.IsNeg():
			total.Outflows, _ = total.Outflows.Add(net.Neg())
		}
		total.Net, _ = total.Net.Add(net)
		out[ledger.Classify(e)] = total
	}
	return out, nil
}

// ClosingBalance implements cashflow.Repo.
func (s *Store) ClosingBalance(_ context.Context, companyID int64, asOf time.Time, scope ledger.BalanceScope) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum decimal.Decimal
	for _, e := range s.entries {
		if e.CompanyID != companyID || e.Date.After(asOf) {
			continue
		}
		if scope == ledger.BalanceScopeCashOnly && !ledger.IsCash(e) {
			continue
		}
		sum, _ = sum.Add(e.Net())
	}
	return sum, nil
}

// BankAccountBalance implements reconciliation.Repo.
func (s *Store) BankAccountBalance(_ context.Context, companyID int64, bankAccount string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum decimal.Decimal
	for _, e := range s.entries {
		if e.CompanyID != companyID || e.BankAccount != bankAccount {
			continue
		}
		sum, _ = sum.Add(e.Net())
	}
	return sum, nil
}

// UnreconciledEntries implements reconciliation.Repo.
func (s *Store) UnreconciledEntries(_ context.Context, companyID int64, bankAccount string) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Entry, 0)
	for _, e := range s.entries {
		if e.CompanyID == companyID && e.BankAccount == bankAccount && !e.Reconciled {
			out = append(out, e)
		}
	}
	return out, nil
}
