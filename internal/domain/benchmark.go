package domain

import (
	"github.com/shopspring/decimal"
)

// BenchmarkAnalysis represents a portfolio return compared against a market
// benchmark over the same period.
type BenchmarkAnalysis struct {
	Benchmark           string
	PortfolioReturn     decimal.Decimal // fractional, e.g. 0.08 for +8%
	BenchmarkReturn     decimal.Decimal
	RelativePerformance decimal.Decimal
	Alpha               decimal.Decimal // relative performance in percentage points
	Outperformed        bool
}

// BetaStatistics represents the regression statistics of a portfolio return
// series against a benchmark return series.
type BetaStatistics struct {
	Beta              decimal.Decimal
	Correlation       decimal.Decimal
	RSquared          decimal.Decimal
	Covariance        decimal.Decimal
	PortfolioVariance decimal.Decimal
	BenchmarkVariance decimal.Decimal
}

// PortfolioPeriod describes one portfolio's start/end values over a period,
// used when comparing multiple portfolios against a single benchmark.
type PortfolioPeriod struct {
	Name       string
	StartValue decimal.Decimal
	EndValue   decimal.Decimal
}

// PortfolioComparison represents the outcome of comparing several portfolios
// against one benchmark return.
type PortfolioComparison struct {
	Benchmark       string
	BenchmarkReturn decimal.Decimal
	Results         []BenchmarkAnalysis
	BestPerformer   string
	WorstPerformer  string
}
