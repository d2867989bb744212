// Package benchmark compares portfolio returns against market benchmarks and
// computes regression statistics over paired return series.
package benchmark

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/quantfolio/calcengine-backend/internal/domain"
	"github.com/quantfolio/calcengine-backend/internal/usecase/decmath"
)

// MinSamples is the minimum number of paired returns for beta/correlation.
const MinSamples = 5

// MaxDays caps analysis periods at ten years.
const MaxDays = 3650

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Service handles benchmark comparison operations. Benchmark return
// resolution is delegated to the provider; no I/O happens in the math.
type Service struct {
	Returns domain.BenchmarkProvider
	Log     *logrus.Logger
}

// NewService creates a new benchmark analysis Service instance
func NewService(returns domain.BenchmarkProvider, log *logrus.Logger) *Service {
	return &Service{
		Returns: returns,
		Log:     log,
	}
}

// AnalyzeVsBenchmark compares a portfolio's growth from startValue to
// endValue over days against the named benchmark.
// Logic:
//   - portfolio return = end/start - 1 (fractional)
//   - relative performance = portfolio return - benchmark return
//   - alpha = relative performance in percentage points
func (s *Service) AnalyzeVsBenchmark(ctx context.Context, startValue, endValue decimal.Decimal, days int, benchmark string) (*domain.BenchmarkAnalysis, error) {
	if startValue.LessThanOrEqual(decimal.Zero) || endValue.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidPortfolioValue
	}
	if days < 1 || days > MaxDays {
		return nil, domain.ErrInvalidDayRange
	}

	benchmarkReturn, err := s.Returns.PeriodReturn(ctx, benchmark, days)
	if err != nil {
		return nil, fmt.Errorf("resolving %s return over %d days: %w", benchmark, days, err)
	}

	return analyze(benchmark, startValue, endValue, benchmarkReturn), nil
}

// CompareMultiplePortfolios scores each portfolio against one benchmark
// return and reports the best and worst performer by raw portfolio return.
func (s *Service) CompareMultiplePortfolios(ctx context.Context, portfolios []domain.PortfolioPeriod, benchmark string, days int) (*domain.PortfolioComparison, error) {
	if len(portfolios) == 0 {
		return nil, domain.ErrNoPortfolios
	}
	if days < 1 || days > MaxDays {
		return nil, domain.ErrInvalidDayRange
	}
	for _, p := range portfolios {
		if p.StartValue.LessThanOrEqual(decimal.Zero) || p.EndValue.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidPortfolioValue
		}
	}

	benchmarkReturn, err := s.Returns.PeriodReturn(ctx, benchmark, days)
	if err != nil {
		return nil, fmt.Errorf("resolving %s return over %d days: %w", benchmark, days, err)
	}

	comparison := &domain.PortfolioComparison{
		Benchmark:       benchmark,
		BenchmarkReturn: benchmarkReturn,
		Results:         make([]domain.BenchmarkAnalysis, 0, len(portfolios)),
	}

	var best, worst decimal.Decimal
	for i, p := range portfolios {
		analysis := analyze(benchmark, p.StartValue, p.EndValue, benchmarkReturn)
		comparison.Results = append(comparison.Results, *analysis)

		if i == 0 || analysis.PortfolioReturn.GreaterThan(best) {
			best = analysis.PortfolioReturn
			comparison.BestPerformer = p.Name
		}
		if i == 0 || analysis.PortfolioReturn.LessThan(worst) {
			worst = analysis.PortfolioReturn
			comparison.WorstPerformer = p.Name
		}
	}

	return comparison, nil
}

func analyze(benchmark string, startValue, endValue, benchmarkReturn decimal.Decimal) *domain.BenchmarkAnalysis {
	portfolioReturn := endValue.Div(startValue).Sub(one)
	relative := portfolioReturn.Sub(benchmarkReturn)

	return &domain.BenchmarkAnalysis{
		Benchmark:           benchmark,
		PortfolioReturn:     portfolioReturn,
		BenchmarkReturn:     benchmarkReturn,
		RelativePerformance: relative,
		Alpha:               relative.Mul(hundred),
		Outperformed:        portfolioReturn.GreaterThan(benchmarkReturn),
	}
}

// CalculateBeta computes beta, correlation and the underlying sample
// statistics from paired portfolio/benchmark return series.
// Both series must have equal length and at least MinSamples entries.
// Sample (n-1) covariance and variances are used. A zero benchmark variance
// defaults beta to 1; a zero standard deviation defaults correlation to 0.
func CalculateBeta(portfolioReturns, benchmarkReturns []decimal.Decimal) (*domain.BetaStatistics, error) {
	if len(portfolioReturns) != len(benchmarkReturns) {
		return nil, domain.ErrMismatchedLengths
	}
	if len(portfolioReturns) < MinSamples {
		return nil, domain.ErrInsufficientData
	}

	n := decimal.NewFromInt(int64(len(portfolioReturns)))
	nMinusOne := n.Sub(one)

	portfolioMean := mean(portfolioReturns, n)
	benchmarkMean := mean(benchmarkReturns, n)

	covariance := decimal.Zero
	portfolioVariance := decimal.Zero
	benchmarkVariance := decimal.Zero
	for i := range portfolioReturns {
		dp := portfolioReturns[i].Sub(portfolioMean)
		db := benchmarkReturns[i].Sub(benchmarkMean)
		covariance = covariance.Add(dp.Mul(db))
		portfolioVariance = portfolioVariance.Add(dp.Mul(dp))
		benchmarkVariance = benchmarkVariance.Add(db.Mul(db))
	}
	covariance = covariance.Div(nMinusOne)
	portfolioVariance = portfolioVariance.Div(nMinusOne)
	benchmarkVariance = benchmarkVariance.Div(nMinusOne)

	beta := one
	if !benchmarkVariance.IsZero() {
		beta = covariance.Div(benchmarkVariance)
	}

	portfolioSigma := decmath.NthRoot(portfolioVariance, 2)
	benchmarkSigma := decmath.NthRoot(benchmarkVariance, 2)

	correlation := decimal.Zero
	if !portfolioSigma.IsZero() && !benchmarkSigma.IsZero() {
		correlation = covariance.Div(portfolioSigma.Mul(benchmarkSigma))
	}

	return &domain.BetaStatistics{
		Beta:              beta,
		Correlation:       correlation,
		RSquared:          correlation.Mul(correlation),
		Covariance:        covariance,
		PortfolioVariance: portfolioVariance,
		BenchmarkVariance: benchmarkVariance,
	}, nil
}

func mean(values []decimal.Decimal, n decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(n)
}
