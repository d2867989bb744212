package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a portfolio transaction
type TransactionType string

const (
	TransactionTypeBuy      TransactionType = "BUY"
	TransactionTypeSell     TransactionType = "SELL"
	TransactionTypeDividend TransactionType = "DIVIDEND"
	TransactionTypeFee      TransactionType = "FEE"
	TransactionTypeInterest TransactionType = "INTEREST"
)

// TransactionRecord represents a single immutable transaction in the domain layer.
// Records are input-only to the cost basis engine: once created they are never
// mutated, and derived holding state is always recomputed from the full sequence.
type TransactionRecord struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Symbol    string
	Type      TransactionType
	Quantity  decimal.Decimal // ABSOLUTE VALUE (always positive, sells included)
	UnitPrice decimal.Decimal
	Fee       decimal.Decimal
	Date      time.Time
}

// Validate ensures the transaction record adheres to domain rules
// Returns an error if validation fails
func (t *TransactionRecord) Validate() error {
	switch t.Type {
	case TransactionTypeBuy, TransactionTypeSell, TransactionTypeDividend,
		TransactionTypeFee, TransactionTypeInterest:
	default:
		return ErrUnknownTransactionType
	}

	if t.Quantity.IsNegative() {
		return ErrNegativeQuantity
	}

	if t.UnitPrice.IsNegative() {
		return ErrNegativeAmount
	}

	if t.Fee.IsNegative() {
		return ErrNegativeAmount
	}

	return nil
}

// AffectsHolding reports whether this transaction type changes quantity or
// cost basis. Dividend, fee and interest records are cash events only.
func (t *TransactionRecord) AffectsHolding() bool {
	return t.Type == TransactionTypeBuy || t.Type == TransactionTypeSell
}
