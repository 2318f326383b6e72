package tx

import (
	"context"
	"sync"
)

// Manager wraps the read-modify-write boundary around a whole ledger
// collection. Stores offer no transactions, so a Manager only decides whether
// writers inside one process are serialized.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager runs fn directly: last writer wins.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// MutexManager serializes read-modify-write cycles of goroutines sharing one
// process, e.g. concurrent HTTP requests. Separate processes still race.
type MutexManager struct {
	mu sync.Mutex
}

func (m *MutexManager) Within(ctx context.Context, fn func(context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
