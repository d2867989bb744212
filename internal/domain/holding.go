package domain

import (
	"github.com/shopspring/decimal"
)

// HoldingState represents the running quantity and cost basis of one symbol,
// derived by folding its ordered transaction sequence.
// It has no lifecycle of its own: it is recomputed on demand and never persisted.
type HoldingState struct {
	Symbol      string
	Quantity    decimal.Decimal
	TotalCost   decimal.Decimal
	AverageCost decimal.Decimal // TotalCost / Quantity when Quantity > 0, else zero

	// Oversold is set when the source data sold more than was held.
	// Quantity and TotalCost are clamped to zero in that case; the flag tells
	// callers the figures are not trustworthy.
	Oversold bool
}

// HoldingPnL represents the unrealized profit/loss of one holding at a
// given market price.
type HoldingPnL struct {
	Symbol           string
	Quantity         decimal.Decimal
	CurrentPrice     decimal.Decimal
	CurrentValue     decimal.Decimal
	CostBasis        decimal.Decimal
	UnrealizedPnL    decimal.Decimal
	UnrealizedPnLPct decimal.Decimal

	// PriceMissing is set when no current price was available; CurrentValue
	// and the PnL figures are zero rather than guessed.
	PriceMissing bool
}

// PortfolioReturnSummary represents the rolled-up value and return of a set
// of holdings.
type PortfolioReturnSummary struct {
	TotalValue       decimal.Decimal
	CostBasis        decimal.Decimal
	ReturnPercentage decimal.Decimal
	DollarReturn     decimal.Decimal
	Positions        []HoldingPnL
}
