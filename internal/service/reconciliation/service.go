// Package reconciliation compares the ledger-side balance of a bank account
// against the bank statement and lists the entries causing the gap.
package reconciliation

import (
	"context"
	"strings"

	"github.com/govalues/decimal"

	"github.com/finbooks/reporting/internal/errs"
	"github.com/finbooks/reporting/internal/ledger"
)

// ItemType labels why a reconciling item has not cleared.
type ItemType string

const (
	ItemOutstandingCheque ItemType = "outstanding cheque"
	ItemBankCharge        ItemType = "bank charge not recorded"
)

// Item is one unreconciled ledger entry.
type Item struct {
	Reference string
	Amount    decimal.Decimal
	Type      ItemType
}

// Report is the bank-reconciliation statement for one bank account.
// AdjustedBalance converges toward LedgerBalance as items clear; the report
// surfaces the gap, it does not enforce equality.
type Report struct {
	LedgerBalance    decimal.Decimal
	BankBalance      decimal.Decimal
	ReconcilingItems []Item
	AdjustedBalance  decimal.Decimal
}

// Repo defines the read operations needed by the service.
type Repo interface {
	// BankAccountBalance sums entry nets for every entry tagged with the
	// bank account, no date or cash filter. No rows yields zero.
	BankAccountBalance(ctx context.Context, companyID int64, bankAccount string) (decimal.Decimal, error)
	// UnreconciledEntries returns the entries for the bank account with
	// reconciled = false, in date order.
	UnreconciledEntries(ctx context.Context, companyID int64, bankAccount string) ([]ledger.Entry, error)
}

// StatementSource supplies the bank-side balance for an account. In
// production this would front a bank-statement feed; FixedStatement covers
// the current single-statement deployment.
type StatementSource interface {
	StatementBalance(ctx context.Context, companyID int64, bankAccount string) (decimal.Decimal, error)
}

// FixedStatement reports the same balance for every bank account.
type FixedStatement struct {
	Balance decimal.Decimal
}

func (f FixedStatement) StatementBalance(context.Context, int64, string) (decimal.Decimal, error) {
	return f.Balance, nil
}

// Service generates reconciliation reports.
type Service interface {
	Generate(ctx context.Context, companyID int64, bankAccount string) (Report, error)
}

type service struct {
	repo      Repo
	statement StatementSource
}

// New constructs the service with an injected statement source.
func New(repo Repo, statement StatementSource) Service {
	return &service{repo: repo, statement: statement}
}

func (s *service) Generate(ctx context.Context, companyID int64, bankAccount string) (Report, error) {
	if companyID <= 0 || strings.TrimSpace(bankAccount) == "" {
		return Report{}, errs.ErrInvalid
	}
	ledgerBalance, err := s.repo.BankAccountBalance(ctx, companyID, bankAccount)
	if err != nil {
		return Report{}, err
	}
	bankBalance, err := s.statement.StatementBalance(ctx, companyID, bankAccount)
	if err != nil {
		return Report{}, err
	}
	open, err := s.repo.UnreconciledEntries(ctx, companyID, bankAccount)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		LedgerBalance:    ledgerBalance,
		BankBalance:      bankBalance,
		ReconcilingItems: make([]Item, 0, len(open)),
	}
	adjusted := bankBalance
	for _, e := range open {
		amount := e.Net()
		rep.ReconcilingItems = append(rep.ReconcilingItems, Item{
			Reference: e.Reference,
			Amount:    amount,
			Type:      itemType(e.Note),
		})
		adjusted, _ = adjusted.Add(amount)
	}
	rep.AdjustedBalance = adjusted
	return rep, nil
}

// itemType derives why the entry has not cleared. The "Bank charge" match is
// deliberately case-sensitive: it mirrors the upstream bookkeeping
// convention of capitalized note prefixes, unlike the case-insensitive
// classification matches.
func itemType(note string) ItemType {
	if strings.Contains(note, "Bank charge") {
		return ItemBankCharge
	}
	return ItemOutstandingCheque
}
