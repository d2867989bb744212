package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

// priceRepository implements domain.PriceProvider over the quotes table the
// market data layer keeps fresh. Staleness handling and retries live in that
// layer, not here.
type priceRepository struct {
	db *DB
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db *DB) domain.PriceProvider {
	return &priceRepository{db: db}
}

// FetchPrice retrieves the latest stored close for a symbol.
// No stored quote maps to domain.ErrPriceUnavailable: the engine treats that
// as "no current price", never as zero.
func (r *priceRepository) FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	query := `
		SELECT close
		FROM quotes
		WHERE symbol = $1
		ORDER BY quoted_at DESC
		LIMIT 1
	`

	var closeStr string
	err := r.db.QueryRowContext(ctx, query, symbol).Scan(&closeStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrPriceUnavailable
		}
		return decimal.Zero, fmt.Errorf("failed to fetch price for %s: %w", symbol, err)
	}

	price, err := decimal.NewFromString(closeStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse close for %s: %w", symbol, err)
	}

	return price, nil
}
