package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// Category buckets a ledger entry into one of the three cash-flow activities.
type Category string

const (
	// CategoryOperating covers day-to-day trading activity.
	CategoryOperating Category = "operating"
	// CategoryInvesting is the fallback bucket for asset movements.
	CategoryInvesting Category = "investing"
	// CategoryFinancing covers loans and capital contributions.
	CategoryFinancing Category = "financing"
)

// BalanceScope selects which entries the closing-balance computation sums.
type BalanceScope string

const (
	// BalanceScopeAll sums every entry up to the cut-off date.
	BalanceScopeAll BalanceScope = "all"
	// BalanceScopeCashOnly restricts the sum to cash transactions.
	BalanceScopeCashOnly BalanceScope = "cash_only"
)

// DefaultCompanyID is the single-tenant company identifier.
const DefaultCompanyID int64 = 1

// Entry is one immutable double-entry bookkeeping record. This service only
// ever reads entries; creation and reconciliation happen upstream.
type Entry struct {
	ID        uuid.UUID
	CompanyID int64
	Date      time.Time
	Account   string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	// Party names the counterparty, if any.
	Party string
	Note  string
	// BankAccount tags the entry with the bank account it moved through.
	// Empty means the entry never touched a bank account.
	BankAccount string
	Reference   string
	Reconciled  bool
}

// Net returns the entry's effect on a balance: Debit - Credit.
func (e Entry) Net() decimal.Decimal {
	n, _ := e.Debit.Sub(e.Credit)
	return n
}

// InRange reports whether the entry date falls within [from, to] inclusive.
func (e Entry) InRange(from, to time.Time) bool {
	return !e.Date.Before(from) && !e.Date.After(to)
}
