package httpapi

import (
	"context"

	"github.com/finbooks/reporting/internal/service/cashflow"
	"github.com/finbooks/reporting/internal/service/reconciliation"
)

// Repository composes the read-side operations used by the API. It is
// satisfied by both the postgres and the in-memory store.
type Repository interface {
	cashflow.Repo
	reconciliation.Repo
}

// ReadyChecker is optionally implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}
