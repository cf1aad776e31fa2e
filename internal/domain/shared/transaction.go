package shared

import "context"

// TransactionManager runs a function within a single storage transaction.
// Repositories that are transaction-aware pick up the transaction from the
// context passed to fn, so multiple repository calls inside fn commit or
// roll back atomically.
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
