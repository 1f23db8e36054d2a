package memory

import (
	"github.com/finbooks/reporting/internal/service/cashflow"
	"github.com/finbooks/reporting/internal/service/reconciliation"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ cashflow.Repo       = (*Store)(nil)
	_ reconciliation.Repo = (*Store)(nil)
)
