package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

var one = decimal.NewFromInt(1)

// benchmarkRepository implements domain.BenchmarkProvider and
// domain.BenchmarkCatalog over the benchmarks catalog and its quote history.
type benchmarkRepository struct {
	db *DB
}

// NewBenchmarkRepository creates a new benchmark repository
func NewBenchmarkRepository(db *DB) interface {
	domain.BenchmarkProvider
	domain.BenchmarkCatalog
} {
	return &benchmarkRepository{db: db}
}

// PeriodReturn resolves a benchmark's fractional return over the trailing
// period: latest close versus the last close at or before the period start.
// Unknown identifiers map to domain.ErrUnsupportedBenchmark; a known
// benchmark without enough history maps to domain.ErrBenchmarkReturnUnavailable.
func (r *benchmarkRepository) PeriodReturn(ctx context.Context, benchmark string, days int) (decimal.Decimal, error) {
	known, err := r.Exists(ctx, benchmark)
	if err != nil {
		return decimal.Zero, err
	}
	if !known {
		return decimal.Zero, domain.ErrUnsupportedBenchmark
	}

	query := `
		SELECT start_quote.close, end_quote.close
		FROM (
			SELECT close FROM quotes
			WHERE symbol = $1 AND quoted_at <= now() - make_interval(days => $2)
			ORDER BY quoted_at DESC LIMIT 1
		) AS start_quote,
		(
			SELECT close FROM quotes
			WHERE symbol = $1
			ORDER BY quoted_at DESC LIMIT 1
		) AS end_quote
	`

	var startStr, endStr string
	if err := r.db.QueryRowContext(ctx, query, benchmark, days).Scan(&startStr, &endStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrBenchmarkReturnUnavailable
		}
		return decimal.Zero, fmt.Errorf("failed to resolve %s return: %w", benchmark, err)
	}

	startClose, err := decimal.NewFromString(startStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse start close: %w", err)
	}
	endClose, err := decimal.NewFromString(endStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse end close: %w", err)
	}

	if startClose.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrBenchmarkReturnUnavailable
	}

	return endClose.Div(startClose).Sub(one), nil
}

// Exists reports whether a benchmark identifier is registered
func (r *benchmarkRepository) Exists(ctx context.Context, identifier string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM benchmarks WHERE identifier = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, identifier).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check benchmark %s: %w", identifier, err)
	}
	return exists, nil
}

// Register adds a benchmark to the catalog, ignoring duplicates
func (r *benchmarkRepository) Register(ctx context.Context, id uuid.UUID, identifier, name string) error {
	query := `
		INSERT INTO benchmarks (id, identifier, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (identifier) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, id, identifier, name); err != nil {
		return fmt.Errorf("failed to register benchmark %s: %w", identifier, err)
	}
	return nil
}
