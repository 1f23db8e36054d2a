package httpapi

import (
	"time"

	"github.com/govalues/decimal"

	"github.com/finbooks/reporting/internal/service/cashflow"
	"github.com/finbooks/reporting/internal/service/reconciliation"
)

// jsonNumber marshals a decimal as a bare JSON number. Amounts stay
// fixed-point internally; only the wire shape is numeric.
type jsonNumber struct{ d decimal.Decimal }

func (n jsonNumber) MarshalJSON() ([]byte, error) { return []byte(n.d.String()), nil }

func num(d decimal.Decimal) jsonNumber { return jsonNumber{d: d} }

// cashFlowQuery holds validated query params for GET /api/cashflow.
type cashFlowQuery struct {
	CompanyID int64
	From      time.Time
	To        time.Time
}

// reconciliationQuery holds validated query params for GET /api/reconciliation.
type reconciliationQuery struct {
	CompanyID   int64
	BankAccount string
}

type activityResponse struct {
	Inflows  jsonNumber `json:"inflows"`
	Outflows jsonNumber `json:"outflows"`
	Net      jsonNumber `json:"net"`
}

type cashFlowResponse struct {
	Operating      activityResponse `json:"operating"`
	Investing      activityResponse `json:"investing"`
	Financing      activityResponse `json:"financing"`
	NetChange      jsonNumber       `json:"netChange"`
	ClosingBalance jsonNumber       `json:"closingBalance"`
}

type reconcilingItemResponse struct {
	Reference string     `json:"reference"`
	Amount    jsonNumber `json:"amount"`
	Type      string     `json:"type"`
}

type reconciliationResponse struct {
	LedgerBalance    jsonNumber                `json:"ledgerBalance"`
	BankBalance      jsonNumber                `json:"bankBalance"`
	ReconcilingItems []reconcilingItemResponse `json:"reconcilingItems"`
	AdjustedBalance  jsonNumber                `json:"adjustedBalance"`
}

func toActivityResponse(t cashflow.ActivityTotal) activityResponse {
	return activityResponse{Inflows: num(t.Inflows), Outflows: num(t.Outflows), Net: num(t.Net)}
}

func toCashFlowResponse(rep cashflow.Report) cashFlowResponse {
	return cashFlowResponse{
		Operating:      toActivityResponse(rep.Operating),
		Investing:      toActivityResponse(rep.Investing),
		Financing:      toActivityResponse(rep.Financing),
		NetChange:      num(rep.NetChange),
		ClosingBalance: num(rep.ClosingBalance),
	}
}

func toReconciliationResponse(rep reconciliation.Report) reconciliationResponse {
	items := make([]reconcilingItemResponse, 0, len(rep.ReconcilingItems))
	for _, it := range rep.ReconcilingItems {
		items = append(items, reconcilingItemResponse{
			Reference: it.Reference,
			Amount:    num(it.Amount),
			Type:      string(it.Type),
		})
	}
	return reconciliationResponse{
		LedgerBalance:    num(rep.LedgerBalance),
		BankBalance:      num(rep.BankBalance),
		ReconcilingItems: items,
		AdjustedBalance:  num(rep.AdjustedBalance),
	}
}
