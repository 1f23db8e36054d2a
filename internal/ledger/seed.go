package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// SampleEntries returns the reference bookkeeping dataset for January 2025.
// It backs the dev seed in both storage backends and the report tests; the
// numbers are small enough to check report arithmetic by hand.
func SampleEntries() []Entry {
	e := func(day int, account string, debit, credit int64, party, note, bank, ref string, reconciled bool) Entry {
		return Entry{
			ID:          uuid.New(),
			CompanyID:   DefaultCompanyID,
			Date:        time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC),
			Account:     account,
			Debit:       decimal.MustNew(debit, 0),
			Credit:      decimal.MustNew(credit, 0),
			Party:       party,
			Note:        note,
			BankAccount: bank,
			Reference:   ref,
			Reconciled:  reconciled,
		}
	}
	return []Entry{
		e(2, "Cash", 10000, 0, "Investor", "Capital Contribution", "MainBank", "DEP001", true),
		e(5, "Office Rent", 0, 2000, "Landlord Ltd.", "January rent", "MainBank", "CHQ101", true),
		e(10, "Inventory", 0, 3000, "Supplier A", "Purchase inventory", "MainBank", "CHQ102", false),
		e(15, "Sales", 0, 8000, "Customer B", "Sales Invoice", "", "", false),
		e(16, "Cash", 8000, 0, "Customer B", "Payment received", "MainBank", "DEP002", true),
		e(20, "Utilities Expense", 0, 500, "Power Co", "Electricity bill", "MainBank", "CHQ103", true),
		e(25, "Bank Loan", 0, 7000, "BigBank", "Loan received", "MainBank", "DEP003", true),
		e(26, "Cash", 7000, 0, "BigBank", "Loan deposit", "MainBank", "DEP003", true),
		e(28, "Bank Charges", 0, 500, "BigBank", "Monthly service charge", "MainBank", "CHQ104", false),
	}
}
