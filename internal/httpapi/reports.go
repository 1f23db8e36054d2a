package httpapi

import "net/http"

// GET /api/cashflow?companyid=&fromDate=&toDate=
func (s *Server) getCashFlow(w http.ResponseWriter, r *http.Request) {
	query, ok := r.Context().Value(ctxKeyCashFlow).(cashFlowQuery)
	if !ok {
		badRequest(w, "missing query params")
		return
	}
	rep, err := s.cashflowSvc.Generate(r.Context(), query.CompanyID, query.From, query.To)
	if err != nil {
		s.log.Error("cashflow report failed", "company_id", query.CompanyID, "err", err)
		internalError(w)
		return
	}
	toJSON(w, http.StatusOK, toCashFlowResponse(rep))
}

// GET /api/reconciliation?companyid=&bankaccount=
func (s *Server) getReconciliation(w http.ResponseWriter, r *http.Request) {
	query, ok := r.Context().Value(ctxKeyReconciliation).(reconciliationQuery)
	if !ok {
		badRequest(w, "missing query params")
		return
	}
	rep, err := s.reconSvc.Generate(r.Context(), query.CompanyID, query.BankAccount)
	if err != nil {
		s.log.Error("reconciliation report failed", "company_id", query.CompanyID, "bank_account", query.BankAccount, "err", err)
		internalError(w)
		return
	}
	toJSON(w, http.StatusOK, toReconciliationResponse(rep))
}
