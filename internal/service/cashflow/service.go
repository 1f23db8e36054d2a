// Package cashflow builds the cash-flow statement: inflows, outflows and net
// per activity over a date range, plus the running closing balance.
package cashflow

import (
	"context"
	"time"

	"github.com/govalues/decimal"

	"github.com/finbooks/reporting/internal/errs"
	"github.com/finbooks/reporting/internal/ledger"
)

// ActivityTotal aggregates one activity bucket. Net is always
// Inflows - Outflows.
type ActivityTotal struct {
	Inflows  decimal.Decimal
	Outflows decimal.Decimal
	Net      decimal.Decimal
}

// Report is the full cash-flow statement for a company and date range. All
// three activity buckets are always present, zero-valued when no entries
// matched.
type Report struct {
	Operating      ActivityTotal
	Investing      ActivityTotal
	Financing      ActivityTotal
	NetChange      decimal.Decimal
	ClosingBalance decimal.Decimal
}

// Repo defines the read operations needed by the service.
type Repo interface {
	// CashActivityTotals aggregates cash entries for the company within
	// [from, to] inclusive, grouped by activity. Activities with no matching
	// entries may be absent from the map.
	CashActivityTotals(ctx context.Context, companyID int64, from, to time.Time) (map[ledger.Category]ActivityTotal, error)
	// ClosingBalance sums entry nets for the company with date <= asOf,
	// restricted per scope. No rows yields zero, not an error.
	ClosingBalance(ctx context.Context, companyID int64, asOf time.Time, scope ledger.BalanceScope) (decimal.Decimal, error)
}

// Service generates cash-flow reports.
type Service interface {
	Generate(ctx context.Context, companyID int64, from, to time.Time) (Report, error)
}

type service struct {
	repo  Repo
	scope ledger.BalanceScope
}

// New constructs the service. scope picks the closing-balance policy; empty
// defaults to BalanceScopeAll, the behavior of the reference reports.
func New(repo Repo, scope ledger.BalanceScope) Service {
	if scope == "" {
		scope = ledger.BalanceScopeAll
	}
	return &service{repo: repo, scope: scope}
}

func (s *service) Generate(ctx context.Context, companyID int64, from, to time.Time) (Report, error) {
	if companyID <= 0 || from.IsZero() || to.IsZero() {
		return Report{}, errs.ErrInvalid
	}
	// Reversed bounds are not an error: BETWEEN matches nothing and the
	// report comes back all-zero.
	totals, err := s.repo.CashActivityTotals(ctx, companyID, from, to)
	if err != nil {
		return Report{}, err
	}
	var rep Report
	rep.Operating = totals[ledger.CategoryOperating]
	rep.Investing = totals[ledger.CategoryInvesting]
	rep.Financing = totals[ledger.CategoryFinancing]
	rep.NetChange, _ = rep.Operating.Net.Add(rep.Investing.Net)
	rep.NetChange, _ = rep.NetChange.Add(rep.Financing.Net)

	closing, err := s.repo.ClosingBalance(ctx, companyID, to, s.scope)
	if err != nil {
		return Report{}, err
	}
	rep.ClosingBalance = closing
	return rep, nil
}
