package costbasis

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

func tx(txType domain.TransactionType, quantity, unitPrice, fee int64) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		Symbol:    "VTI",
		Type:      txType,
		Quantity:  decimal.NewFromInt(quantity),
		UnitPrice: decimal.NewFromInt(unitPrice),
		Fee:       decimal.NewFromInt(fee),
		Date:      time.Now(),
	}
}

func TestComputeHolding_BuysAndProportionalSell(t *testing.T) {
	// buy 10 @ 100 (cost 1000), buy 10 @ 150 (cost 1500), sell 5:
	// cost drops by 2500 * (5/20) = 625 -> 1875, quantity -> 15
	transactions := []*domain.TransactionRecord{
		tx(domain.TransactionTypeBuy, 10, 100, 0),
		tx(domain.TransactionTypeBuy, 10, 150, 0),
		tx(domain.TransactionTypeSell, 5, 180, 0),
	}

	state := ComputeHolding("VTI", transactions)

	assert.True(t, state.Quantity.Equal(decimal.NewFromInt(15)), "quantity: %s", state.Quantity)
	assert.True(t, state.TotalCost.Equal(decimal.NewFromInt(1875)), "total cost: %s", state.TotalCost)
	assert.True(t, state.AverageCost.Equal(decimal.NewFromInt(125)), "average cost: %s", state.AverageCost)
	assert.False(t, state.Oversold)
}

func TestComputeHolding_AverageCostBeforeSell(t *testing.T) {
	transactions := []*domain.TransactionRecord{
		tx(domain.TransactionTypeBuy, 10, 100, 0),
		tx(domain.TransactionTypeBuy, 10, 150, 0),
	}

	state := ComputeHolding("VTI", transactions)

	assert.True(t, state.Quantity.Equal(decimal.NewFromInt(20)))
	assert.True(t, state.TotalCost.Equal(decimal.NewFromInt(2500)))
	assert.True(t, state.AverageCost.Equal(decimal.NewFromInt(125)))
}

func TestComputeHolding_BuyFeeEntersCostBasis(t *testing.T) {
	transactions := []*domain.TransactionRecord{
		tx(domain.TransactionTypeBuy, 10, 100, 5),
	}

	state := ComputeHolding("VTI", transactions)

	assert.True(t, state.TotalCost.Equal(decimal.NewFromInt(1005)))
}

func TestComputeHolding_SellWithNothingHeldIsNoOp(t *testing.T) {
	transactions := []*domain.TransactionRecord{
		tx(domain.TransactionTypeSell, 5, 100, 0),
		tx(domain.TransactionTypeBuy, 10, 100, 0),
	}

	state := ComputeHolding("VTI", transactions)

	assert.True(t, state.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, state.TotalCost.Equal(decimal.NewFromInt(1000)))
	assert.False(t, state.Oversold)
}

func TestComputeHolding_OversellClampsAndFlags(t *testing.T) {
	transactions := []*domain.TransactionRecord{
		tx(domain.TransactionTypeBuy, 10, 100, 0),
		tx(domain.TransactionTypeSell, 25, 100, 0),
	}

	state := ComputeHolding("VTI", transactions)

	assert.True(t, state.Quantity.Equal(decimal.Zero))
	assert.True(t, state.TotalCost.Equal(decimal.Zero))
	assert.True(t, state.AverageCost.Equal(decimal.Zero))
	assert.True(t, state.Oversold)
}

func TestComputeHolding_CashEventsDoNotAffectHolding(t *testing.T) {
	transactions := []*domain.TransactionRecord{
		tx(domain.TransactionTypeBuy, 10, 100, 0),
		tx(domain.TransactionTypeDividend, 0, 0, 0),
		tx(domain.TransactionTypeFee, 0, 0, 12),
		tx(domain.TransactionTypeInterest, 0, 0, 0),
	}

	state := ComputeHolding("VTI", transactions)

	assert.True(t, state.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, state.TotalCost.Equal(decimal.NewFromInt(1000)))
}

func TestComputeHolding_EmptySequence(t *testing.T) {
	state := ComputeHolding("VTI", nil)

	assert.Equal(t, "VTI", state.Symbol)
	assert.True(t, state.Quantity.Equal(decimal.Zero))
	assert.True(t, state.TotalCost.Equal(decimal.Zero))
	assert.True(t, state.AverageCost.Equal(decimal.Zero))
}

func TestHoldingPnL_GainScenario(t *testing.T) {
	// quantity 20, cost basis 2500, price 200:
	// value 4000, pnl 1500, pct 60%
	price := decimal.NewFromInt(200)

	pnl := HoldingPnL("VTI", decimal.NewFromInt(20), &price, decimal.NewFromInt(2500))

	assert.True(t, pnl.CurrentValue.Equal(decimal.NewFromInt(4000)), "value: %s", pnl.CurrentValue)
	assert.True(t, pnl.UnrealizedPnL.Equal(decimal.NewFromInt(1500)), "pnl: %s", pnl.UnrealizedPnL)
	assert.True(t, pnl.UnrealizedPnLPct.Equal(decimal.NewFromInt(60)), "pct: %s", pnl.UnrealizedPnLPct)
	assert.False(t, pnl.PriceMissing)
}

func TestHoldingPnL_MissingPrice(t *testing.T) {
	pnl := HoldingPnL("VTI", decimal.NewFromInt(20), nil, decimal.NewFromInt(2500))

	assert.True(t, pnl.PriceMissing)
	assert.True(t, pnl.CurrentValue.Equal(decimal.Zero))
	assert.True(t, pnl.UnrealizedPnL.Equal(decimal.Zero))
	assert.True(t, pnl.UnrealizedPnLPct.Equal(decimal.Zero))
}

func TestHoldingPnL_ZeroCostBasisGuard(t *testing.T) {
	price := decimal.NewFromInt(200)

	pnl := HoldingPnL("VTI", decimal.NewFromInt(20), &price, decimal.Zero)

	assert.True(t, pnl.CurrentValue.Equal(decimal.NewFromInt(4000)))
	assert.True(t, pnl.UnrealizedPnLPct.Equal(decimal.Zero), "pct must stay zero on zero cost basis")
}
