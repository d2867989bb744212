package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/quantfolio/calcengine-backend/internal/cache"
	"github.com/quantfolio/calcengine-backend/internal/domain"
	"github.com/quantfolio/calcengine-backend/internal/usecase/costbasis"
)

// maxPriceLookups caps the number of concurrent price lookups per account so
// a wide account does not flood the market data collaborator.
const maxPriceLookups = 8

// Service handles portfolio aggregation operations
type Service struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	Prices          domain.PriceProvider
	Cache           *cache.ResultCache
	CacheTTL        time.Duration
	Log             *logrus.Logger
}

// NewService creates a new portfolio aggregation Service instance
func NewService(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	prices domain.PriceProvider,
	resultCache *cache.ResultCache,
	cacheTTL time.Duration,
	log *logrus.Logger,
) *Service {
	return &Service{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		Prices:          prices,
		Cache:           resultCache,
		CacheTTL:        cacheTTL,
		Log:             log,
	}
}

// AccountReturns computes the value and return summary of one account.
// Results are memoized under the account's cache scope until a change event
// or the TTL invalidates them.
func (s *Service) AccountReturns(ctx context.Context, accountID uuid.UUID) (*domain.PortfolioReturnSummary, error) {
	if _, err := s.AccountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.returnsForAccount(ctx, accountID)
}

// PortfolioReturns aggregates every non-excluded account into one summary.
// Exclusion filtering happens here, once, before any holding math runs.
func (s *Service) PortfolioReturns(ctx context.Context) (*domain.PortfolioReturnSummary, error) {
	key := cache.Key("portfolio_returns", cache.ScopePortfolio)
	value, err := s.Cache.GetOrCompute(key, s.CacheTTL, func() (any, error) {
		accounts, err := s.AccountRepo.List(ctx)
		if err != nil {
			return nil, err
		}

		included := make([]*domain.Account, 0, len(accounts))
		for _, account := range accounts {
			if account.IsExcluded {
				continue
			}
			included = append(included, account)
		}

		positions := make([]domain.HoldingPnL, 0)
		for _, account := range included {
			summary, err := s.returnsForAccount(ctx, account.ID)
			if err != nil {
				return nil, err
			}
			positions = append(positions, summary.Positions...)
		}

		summary := TotalReturn(positions)
		return &summary, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.PortfolioReturnSummary), nil
}

// returnsForAccount memoizes the per-account computation under the account's
// own cache scope.
func (s *Service) returnsForAccount(ctx context.Context, accountID uuid.UUID) (*domain.PortfolioReturnSummary, error) {
	key := cache.Key("account_returns", accountID.String())
	value, err := s.Cache.GetOrCompute(key, s.CacheTTL, func() (any, error) {
		return s.computeAccountReturns(ctx, accountID)
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.PortfolioReturnSummary), nil
}

// computeAccountReturns folds each symbol's transactions into a holding and
// prices the open holdings, resolving prices concurrently.
// A failed price lookup is propagated as "no price available" on the
// position; it never becomes a guessed value and never aborts the account.
func (s *Service) computeAccountReturns(ctx context.Context, accountID uuid.UUID) (*domain.PortfolioReturnSummary, error) {
	symbols, err := s.TransactionRepo.Symbols(ctx, accountID)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.HoldingPnL, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPriceLookups)

	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			transactions, err := s.TransactionRepo.ListBySymbol(gctx, accountID, symbol)
			if err != nil {
				return err
			}

			state := costbasis.ComputeHolding(symbol, transactions)
			if state.Oversold && s.Log != nil {
				s.Log.WithFields(logrus.Fields{
					"account": accountID,
					"symbol":  symbol,
				}).Warn("transaction history sold more than held; holding flagged oversold")
			}

			// Closed positions carry no value or return
			if state.Quantity.IsZero() {
				return nil
			}

			var currentPrice *decimal.Decimal
			price, err := s.Prices.FetchPrice(gctx, symbol)
			if err != nil {
				if s.Log != nil {
					s.Log.WithError(err).WithField("symbol", symbol).Warn("no current price available")
				}
			} else {
				currentPrice = &price
			}

			pnl := costbasis.HoldingPnL(symbol, state.Quantity, currentPrice, state.TotalCost)
			results[i] = &pnl
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	positions := make([]domain.HoldingPnL, 0, len(results))
	for _, position := range results {
		if position != nil {
			positions = append(positions, *position)
		}
	}

	summary := TotalReturn(positions)
	return &summary, nil
}
