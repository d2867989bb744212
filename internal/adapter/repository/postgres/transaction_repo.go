package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// ListBySymbol retrieves one symbol's transactions in chronological order.
// The cost basis fold depends on this order, so it is fixed in the query,
// with the insertion ID as a tiebreaker for same-day records.
func (r *transactionRepository) ListBySymbol(ctx context.Context, accountID uuid.UUID, symbol string) ([]*domain.TransactionRecord, error) {
	query := `
		SELECT id, account_id, symbol, tx_type, quantity, unit_price, fee, executed_at
		FROM transactions
		WHERE account_id = $1 AND symbol = $2
		ORDER BY executed_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, accountID, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.TransactionRecord, 0)
	for rows.Next() {
		var tx domain.TransactionRecord
		var quantityStr, unitPriceStr, feeStr string

		if err := rows.Scan(
			&tx.ID,
			&tx.AccountID,
			&tx.Symbol,
			&tx.Type,
			&quantityStr,
			&unitPriceStr,
			&feeStr,
			&tx.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if tx.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}
		if tx.UnitPrice, err = decimal.NewFromString(unitPriceStr); err != nil {
			return nil, fmt.Errorf("failed to parse unit_price: %w", err)
		}
		if tx.Fee, err = decimal.NewFromString(feeStr); err != nil {
			return nil, fmt.Errorf("failed to parse fee: %w", err)
		}

		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// Symbols retrieves the distinct symbols ever transacted in an account
func (r *transactionRepository) Symbols(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	query := `
		SELECT DISTINCT symbol
		FROM transactions
		WHERE account_id = $1
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	defer rows.Close()

	symbols := make([]string, 0)
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate symbols: %w", err)
	}

	return symbols, nil
}
