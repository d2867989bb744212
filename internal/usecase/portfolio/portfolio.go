// Package portfolio rolls per-holding results into account and
// portfolio-level value and return summaries.
package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/quantfolio/calcengine-backend/internal/domain"
	"github.com/quantfolio/calcengine-backend/internal/usecase/costbasis"
)

var hundred = decimal.NewFromInt(100)

// PortfolioValue sums the current value of every position.
func PortfolioValue(positions []domain.HoldingPnL) decimal.Decimal {
	total := decimal.Zero
	for _, position := range positions {
		total = total.Add(position.CurrentValue)
	}
	return total
}

// SimpleReturn computes (currentValue - costBasis) / costBasis * 100.
// A zero cost basis returns 0 rather than dividing by zero: with nothing
// invested there is no gain or loss to express.
func SimpleReturn(currentValue, costBasis decimal.Decimal) decimal.Decimal {
	if costBasis.IsZero() {
		return decimal.Zero
	}
	return currentValue.Sub(costBasis).Div(costBasis).Mul(hundred)
}

// PositionReturns prices each open holding. Holdings with exactly zero
// quantity are closed positions and are excluded. prices maps symbol to the
// current price, nil meaning no price available.
func PositionReturns(states []domain.HoldingState, prices map[string]*decimal.Decimal) []domain.HoldingPnL {
	positions := make([]domain.HoldingPnL, 0, len(states))
	for _, state := range states {
		if state.Quantity.IsZero() {
			continue
		}
		positions = append(positions, costbasis.HoldingPnL(state.Symbol, state.Quantity, prices[state.Symbol], state.TotalCost))
	}
	return positions
}

// TotalReturn combines priced positions into a PortfolioReturnSummary.
func TotalReturn(positions []domain.HoldingPnL) domain.PortfolioReturnSummary {
	totalValue := decimal.Zero
	costBasis := decimal.Zero
	for _, position := range positions {
		totalValue = totalValue.Add(position.CurrentValue)
		costBasis = costBasis.Add(position.CostBasis)
	}

	return domain.PortfolioReturnSummary{
		TotalValue:       totalValue,
		CostBasis:        costBasis,
		ReturnPercentage: SimpleReturn(totalValue, costBasis),
		DollarReturn:     totalValue.Sub(costBasis),
		Positions:        positions,
	}
}
