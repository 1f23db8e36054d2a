package postgres

// Package postgres provides a pgx-backed read store for the reporting
// service. The ledger table is written by an upstream bookkeeping process;
// this package only aggregates and lists rows. The expected schema lives
// under db/migrations.
//
// Monetary sums are selected as text and parsed into govalues decimals so no
// float arithmetic ever touches an amount.

import (
	"context"
	"fmt"
	"time"

	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/reporting/internal/ledger"
	"github.com/finbooks/reporting/internal/service/cashflow"
)

// activityCase mirrors ledger.Classify as a SQL CASE expression. The rules
// are evaluated in the same order (operating, financing, investing); any
// change to the Go function must be mirrored here.
const activityCase = `case
            when account in ('Sales', 'Office Rent', 'Utilities Expense', 'Inventory', 'Bank Charges')
              then 'operating'
            when account = 'Bank Loan' or note ilike '%Capital Contribution%'
              then 'financing'
            else 'investing'
          end`

// isCashPredicate mirrors ledger.IsCash.
const isCashPredicate = `(account = 'Cash' or bank_account is not null)`

// Store holds a pgx connection pool and implements the report Repo
// interfaces. All methods are safe for concurrent use; each call borrows a
// single connection for a single query.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// CashActivityTotals aggregates cash entries within [from, to] grouped by
// activity. Classification happens inside the query; the table carries no
// cached category columns.
func (s *Store) CashActivityTotals(ctx context.Context, companyID int64, from, to time.Time) (map[ledger.Category]cashflow.ActivityTotal, error) {
	rows, err := s.pool.Query(ctx, `
        with cash_entries as (
          select `+activityCase+` as activity,
                 (debit - credit) as net
          from ledger_entries
          where company_id = $1
            and date between $2 and $3
            and `+isCashPredicate+`
        )
        select activity,
               coalesce(sum(case when net > 0 then net else 0 end), 0)::text as inflows,
               coalesce(sum(case when net < 0 then -net else 0 end), 0)::text as outflows,
               coalesce(sum(net), 0)::text as net
        from cash_entries
        group by activity
    `, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[ledger.Category]cashflow.ActivityTotal, 3)
	for rows.Next() {
		var activity, inflows, outflows, net string
		if err := rows.Scan(&activity, &inflows, &outflows, &net); err != nil {
			return nil, err
		}
		total, err := parseTotals(inflows, outflows, net)
		if err != nil {
			return nil, err
		}
		out[ledger.Category(activity)] = total
	}
	return out, rows.Err()
}

// ClosingBalance sums entry nets up to asOf. Scope cash_only keeps the cash
// predicate; scope all drops it (running balance since inception).
func (s *Store) ClosingBalance(ctx context.Context, companyID int64, asOf time.Time, scope ledger.BalanceScope) (decimal.Decimal, error) {
	q := `
        select coalesce(sum(debit - credit), 0)::text
        from ledger_entries
        where company_id = $1 and date <= $2
    `
	if scope == ledger.BalanceScopeCashOnly {
		q += ` and ` + isCashPredicate
	}
	var sum string
	if err := s.pool.QueryRow(ctx, q, companyID, asOf).Scan(&sum); err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.Parse(sum)
}

// BankAccountBalance sums every entry tagged with the bank account.
func (s *Store) BankAccountBalance(ctx context.Context, companyID int64, bankAccount string) (decimal.Decimal, error) {
	var sum string
	err := s.pool.QueryRow(ctx, `
        select coalesce(sum(debit - credit), 0)::text
        from ledger_entries
        where company_id = $1 and bank_account = $2
    `, companyID, bankAccount).Scan(&sum)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.Parse(sum)
}

// UnreconciledEntries returns the bank account's entries still awaiting
// reconciliation, in date order.
func (s *Store) UnreconciledEntries(ctx context.Context, companyID int64, bankAccount string) ([]ledger.Entry, error) {
	rows, err := s.pool.Query(ctx, `
        select id, company_id, date, account, debit::text, credit::text,
               party, note, bank_account, reference, reconciled
        from ledger_entries
        where company_id = $1 and bank_account = $2 and reconciled = false
        order by date asc, id asc
    `, companyID, bankAccount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ledger.Entry, 0)
	for rows.Next() {
		var e ledger.Entry
		var debit, credit string
		var party, note, bank, reference *string
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Date, &e.Account, &debit, &credit, &party, &note, &bank, &reference, &e.Reconciled); err != nil {
			return nil, err
		}
		if e.Debit, err = decimal.Parse(debit); err != nil {
			return nil, err
		}
		if e.Credit, err = decimal.Parse(credit); err != nil {
			return nil, err
		}
		e.Party = deref(party)
		e.Note = deref(note)
		e.BankAccount = deref(bank)
		e.Reference = deref(reference)
		out = append(out, e)
	}
	return out, rows.Err()
}

// SeedDev inserts the sample dataset when the table is empty, for
// compose/local runs. Idempotent: a non-empty table is left untouched.
func (s *Store) SeedDev(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `select count(*) from ledger_entries`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	entries := ledger.SampleEntries()
	for _, e := range entries {
		if _, err := tx.Exec(ctx, `
            insert into ledger_entries
              (id, company_id, date, account, debit, credit, party, note, bank_account, reference, reconciled)
            values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        `, e.ID, e.CompanyID, e.Date, e.Account, e.Debit.String(), e.Credit.String(),
			nullable(e.Party), nullable(e.Note), nullable(e.BankAccount), nullable(e.Reference), e.Reconciled); err != nil {
			return 0, fmt.Errorf("insert entry %s: %w", e.Reference, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func parseTotals(inflows, outflows, net string) (cashflow.ActivityTotal, error) {
	var t cashflow.ActivityTotal
	var err error
	if t.Inflows, err = decimal.Parse(inflows); err != nil {
		return cashflow.ActivityTotal{}, err
	}
	if t.Outflows, err = decimal.Parse(outflows); err != nil {
		return cashflow.ActivityTotal{}, err
	}
	if t.Net, err = decimal.Parse(net); err != nil {
		return cashflow.ActivityTotal{}, err
	}
	return t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullable maps empty strings to SQL NULL so optional columns round-trip.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
