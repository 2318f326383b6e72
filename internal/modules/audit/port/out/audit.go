package out

import (
	"context"

	"ghostnote/internal/modules/audit/domain"
)

// Resolver judges a prediction against a follow-up signal.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, req domain.Request) (domain.Result, error)
}

// Ledger is the wager ledger as the audit engine needs it. Record must be a
// single all-or-nothing write.
type Ledger interface {
	Lookup(ctx context.Context, wagerID int64) (domain.Subject, error)
	Record(ctx context.Context, wagerID int64, result domain.Result) error
}
