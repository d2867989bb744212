// Package costbasis folds an ordered transaction stream into running
// quantity and cost basis, and prices the resulting holding.
//
// The fold uses the simplified proportional method: a sell reduces total cost
// by the fraction of the position sold, rather than consuming discrete
// purchase lots in date order. When lots have different unit costs this is
// not tax-accurate per-lot FIFO; switching to a lot queue is a policy
// decision for the callers, not this package.
package costbasis

import (
	"github.com/shopspring/decimal"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputeHolding folds the chronologically ordered transactions of one symbol
// into a HoldingState.
// Logic:
//   - BUY: quantity += qty; total cost += qty*price + fee
//   - SELL: reduce total cost proportionally to the fraction sold, then reduce
//     quantity. Selling with nothing held is a no-op (guards divide-by-zero);
//     selling more than held clamps the position to zero and sets Oversold.
//   - DIVIDEND/FEE/INTEREST: cash events, no effect on quantity or cost.
func ComputeHolding(symbol string, transactions []*domain.TransactionRecord) domain.HoldingState {
	state := domain.HoldingState{
		Symbol:      symbol,
		Quantity:    decimal.Zero,
		TotalCost:   decimal.Zero,
		AverageCost: decimal.Zero,
	}

	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeBuy:
			state.Quantity = state.Quantity.Add(tx.Quantity)
			state.TotalCost = state.TotalCost.Add(tx.Quantity.Mul(tx.UnitPrice)).Add(tx.Fee)

		case domain.TransactionTypeSell:
			if state.Quantity.IsZero() {
				// Nothing held; skip rather than divide by zero
				continue
			}

			sellQty := tx.Quantity.Abs()
			if sellQty.GreaterThan(state.Quantity) {
				// Source data sold more than was held. Clamp and flag; the
				// resulting figures are not trustworthy.
				state.Quantity = decimal.Zero
				state.TotalCost = decimal.Zero
				state.Oversold = true
				continue
			}

			sellRatio := sellQty.Div(state.Quantity)
			state.TotalCost = state.TotalCost.Sub(state.TotalCost.Mul(sellRatio))
			state.Quantity = state.Quantity.Sub(sellQty)
		}
		// Dividend, fee and interest records do not affect the holding
	}

	if state.Quantity.IsPositive() {
		state.AverageCost = state.TotalCost.Div(state.Quantity)
	} else {
		state.AverageCost = decimal.Zero
	}

	return state
}

// HoldingPnL prices a holding at the given current price.
// A nil currentPrice means "no price available": value and PnL stay zero and
// PriceMissing is set, so callers never mistake a missing price for a
// worthless position.
func HoldingPnL(symbol string, quantity decimal.Decimal, currentPrice *decimal.Decimal, costBasis decimal.Decimal) domain.HoldingPnL {
	pnl := domain.HoldingPnL{
		Symbol:           symbol,
		Quantity:         quantity,
		CostBasis:        costBasis,
		CurrentValue:     decimal.Zero,
		UnrealizedPnL:    decimal.Zero,
		UnrealizedPnLPct: decimal.Zero,
	}

	if currentPrice == nil {
		pnl.PriceMissing = true
		return pnl
	}

	pnl.CurrentPrice = *currentPrice
	pnl.CurrentValue = quantity.Mul(*currentPrice)
	pnl.UnrealizedPnL = pnl.CurrentValue.Sub(costBasis)

	// Zero cost basis would divide by zero; report 0% instead
	if !costBasis.IsZero() {
		pnl.UnrealizedPnLPct = pnl.UnrealizedPnL.Div(costBasis).Mul(hundred)
	}

	return pnl
}
