package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type ctxKey string

const ctxKeyCashFlow ctxKey = "validatedCashFlow"
const ctxKeyReconciliation ctxKey = "validatedReconciliation"

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// validateCashFlow parses and validates query params for GET /api/cashflow
// and stores them in the request context for the handler. Requests with
// missing or malformed params never reach the datastore.
func (s *Server) validateCashFlow() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			companyID, ok := parseCompanyID(w, q.Get("companyid"))
			if !ok {
				return
			}
			from, ok := parseDate(w, q.Get("fromDate"), "fromDate")
			if !ok {
				return
			}
			to, ok := parseDate(w, q.Get("toDate"), "toDate")
			if !ok {
				return
			}
			query := cashFlowQuery{CompanyID: companyID, From: from, To: to}
			ctx := context.WithValue(r.Context(), ctxKeyCashFlow, query)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateReconciliation parses query params for GET /api/reconciliation.
func (s *Server) validateReconciliation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			companyID, ok := parseCompanyID(w, q.Get("companyid"))
			if !ok {
				return
			}
			bank := q.Get("bankaccount")
			if bank == "" {
				badRequest(w, "bankaccount is required")
				return
			}
			query := reconciliationQuery{CompanyID: companyID, BankAccount: bank}
			ctx := context.WithValue(r.Context(), ctxKeyReconciliation, query)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseCompanyID(w http.ResponseWriter, raw string) (int64, bool) {
	if raw == "" {
		badRequest(w, "companyid is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid companyid")
		return 0, false
	}
	return id, true
}

func parseDate(w http.ResponseWriter, raw, name string) (time.Time, bool) {
	if raw == "" {
		badRequest(w, name+" is required")
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		badRequest(w, "invalid "+name)
		return time.Time{}, false
	}
	return t.UTC(), true
}
