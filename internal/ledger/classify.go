package ledger

import "strings"

// operatingAccounts are the account names that always classify as operating
// activity, regardless of the entry's note.
var operatingAccounts = map[string]struct{}{
	"Sales":             {},
	"Office Rent":       {},
	"Utilities Expense": {},
	"Inventory":         {},
	"Bank Charges":      {},
}

// Classify assigns an entry to a cash-flow activity. Rules are evaluated in
// order (operating, financing, investing) and the first match wins, so every
// entry lands in exactly one bucket.
//
// The postgres store inlines the same rules as a SQL CASE expression; any
// change here must be mirrored there.
func Classify(e Entry) Category {
	if _, ok := operatingAccounts[e.Account]; ok {
		return CategoryOperating
	}
	if e.Account == "Bank Loan" || containsFold(e.Note, "Capital Contribution") {
		return CategoryFinancing
	}
	return CategoryInvesting
}

// IsCash reports whether the entry represents an actual cash movement rather
// than an accrual: either the Cash account itself or anything routed through
// a bank account.
func IsCash(e Entry) bool {
	return e.Account == "Cash" || e.BankAccount != ""
}

// containsFold is a case-insensitive substring match.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
