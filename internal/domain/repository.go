package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account read operations
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// List retrieves all accounts, including excluded ones.
	// Exclusion filtering is the aggregator's job, applied once at the top of
	// an aggregation call.
	List(ctx context.Context) ([]*Account, error)
}

// TransactionRepository defines the interface for transaction read operations
type TransactionRepository interface {
	// ListBySymbol retrieves the transactions of one symbol in an account,
	// ordered chronologically. The cost basis fold depends on this order.
	ListBySymbol(ctx context.Context, accountID uuid.UUID, symbol string) ([]*TransactionRecord, error)

	// Symbols retrieves the distinct symbols ever transacted in an account
	Symbols(ctx context.Context, accountID uuid.UUID) ([]string, error)
}

// PriceProvider defines the price lookup contract with the market data layer.
// A failed lookup means "no current price available"; the engine propagates
// that condition instead of substituting a guessed value. Retry and
// circuit-breaker behavior live behind this interface, not in the engine.
type PriceProvider interface {
	FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// BenchmarkProvider resolves a benchmark's fractional return over a trailing
// period of days (e.g. 0.05 for +5%).
type BenchmarkProvider interface {
	PeriodReturn(ctx context.Context, benchmark string, days int) (decimal.Decimal, error)
}

// BenchmarkCatalog defines the interface for the supported-benchmark catalog
type BenchmarkCatalog interface {
	// Exists reports whether a benchmark identifier is registered
	Exists(ctx context.Context, identifier string) (bool, error)

	// Register adds a benchmark to the catalog
	Register(ctx context.Context, id uuid.UUID, identifier, name string) error
}
