package reconciliation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/finbooks/reporting/internal/errs"
	"github.com/finbooks/reporting/internal/ledger"
	"github.com/finbooks/reporting/internal/service/reconciliation"
	"github.com/finbooks/reporting/internal/storage/memory"
)

func fixedStatement(units int64) reconciliation.FixedStatement {
	return reconciliation.FixedStatement{Balance: decimal.MustNew(units, 0)}
}

func seededService() reconciliation.Service {
	store := memory.New()
	store.SeedEntries(ledger.SampleEntries())
	return reconciliation.New(store, fixedStatement(19000))
}

func TestGenerate_SampleMainBank(t *testing.T) {
	svc := seededService()
	rep, err := svc.Generate(context.Background(), ledger.DefaultCompanyID, "MainBank")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rep.LedgerBalance.Cmp(decimal.MustNew(12000, 0)) != 0 {
		t.Fatalf("ledgerBalance = %s, want 12000", rep.LedgerBalance)
	}
	if rep.BankBalance.Cmp(decimal.MustNew(19000, 0)) != 0 {
		t.Fatalf("bankBalance = %s, want 19000", rep.BankBalance)
	}
	if len(rep.ReconcilingItems) != 2 {
		t.Fatalf("expected 2 reconciling items, got %d", len(rep.ReconcilingItems))
	}
	inventory := rep.ReconcilingItems[0]
	if inventory.Reference != "CHQ102" || inventory.Amount.Cmp(decimal.MustNew(-3000, 0)) != 0 || inventory.Type != reconciliation.ItemOutstandingCheque {
		t.Fatalf("unexpected first item: %+v", inventory)
	}
	charges := rep.ReconcilingItems[1]
	if charges.Reference != "CHQ104" || charges.Amount.Cmp(decimal.MustNew(-500, 0)) != 0 {
		t.Fatalf("unexpected second item: %+v", charges)
	}
	// adjusted = 19000 - 3000 - 500
	if rep.AdjustedBalance.Cmp(decimal.MustNew(15500, 0)) != 0 {
		t.Fatalf("adjustedBalance = %s, want 15500", rep.AdjustedBalance)
	}
}

func TestGenerate_BankChargeItemType(t *testing.T) {
	store := memory.New()
	entry := func(note, ref string) ledger.Entry {
		return ledger.Entry{
			ID:          uuid.New(),
			CompanyID:   ledger.DefaultCompanyID,
			Date:        time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
			Account:     "Bank Charges",
			Credit:      decimal.MustNew(25, 0),
			Note:        note,
			BankAccount: "MainBank",
			Reference:   ref,
		}
	}
	store.SeedEntry(entry("Bank charge for February", "FEB01"))
	// The match is case-sensitive: a lowercase note stays an outstanding cheque.
	store.SeedEntry(entry("bank charge for February", "FEB02"))

	svc := reconciliation.New(store, fixedStatement(1000))
	rep, err := svc.Generate(context.Background(), ledger.DefaultCompanyID, "MainBank")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rep.ReconcilingItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(rep.ReconcilingItems))
	}
	byRef := map[string]reconciliation.ItemType{}
	for _, it := range rep.ReconcilingItems {
		byRef[it.Reference] = it.Type
	}
	if byRef["FEB01"] != reconciliation.ItemBankCharge {
		t.Fatalf("FEB01 type = %q, want bank charge not recorded", byRef["FEB01"])
	}
	if byRef["FEB02"] != reconciliation.ItemOutstandingCheque {
		t.Fatalf("FEB02 type = %q, want outstanding cheque", byRef["FEB02"])
	}
}

func TestGenerate_NoUnreconciledItems(t *testing.T) {
	store := memory.New()
	store.SeedEntry(ledger.Entry{
		ID:          uuid.New(),
		CompanyID:   ledger.DefaultCompanyID,
		Date:        time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		Account:     "Cash",
		Debit:       decimal.MustNew(500, 0),
		BankAccount: "MainBank",
		Reference:   "DEP010",
		Reconciled:  true,
	})
	svc := reconciliation.New(store, fixedStatement(500))
	rep, err := svc.Generate(context.Background(), ledger.DefaultCompanyID, "MainBank")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(rep.ReconcilingItems) != 0 {
		t.Fatalf("expected no items, got %d", len(rep.ReconcilingItems))
	}
	// With nothing outstanding the adjusted balance is the statement balance
	// and matches the ledger.
	if rep.AdjustedBalance.Cmp(rep.BankBalance) != 0 {
		t.Fatalf("adjusted = %s, bank = %s", rep.AdjustedBalance, rep.BankBalance)
	}
	if rep.AdjustedBalance.Cmp(rep.LedgerBalance) != 0 {
		t.Fatalf("adjusted = %s, ledger = %s", rep.AdjustedBalance, rep.LedgerBalance)
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	svc := seededService()
	if _, err := svc.Generate(context.Background(), 0, "MainBank"); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for companyID 0, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), 1, ""); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty bank account, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), 1, "   "); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for blank bank account, got %v", err)
	}
}

type failingStatement struct{}

func (failingStatement) StatementBalance(context.Context, int64, string) (decimal.Decimal, error) {
	return decimal.Decimal{}, errors.New("feed unavailable")
}

func TestGenerate_StatementFailurePropagates(t *testing.T) {
	store := memory.New()
	store.SeedEntries(ledger.SampleEntries())
	svc := reconciliation.New(store, failingStatement{})
	if _, err := svc.Generate(context.Background(), ledger.DefaultCompanyID, "MainBank"); err == nil {
		t.Fatal("expected statement source error to propagate")
	}
}
