package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/quantfolio/calcengine-backend/internal/cache"
	"github.com/quantfolio/calcengine-backend/internal/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListBySymbol(ctx context.Context, accountID uuid.UUID, symbol string) ([]*domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionRepository) Symbols(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPriceProvider is a mock implementation of PriceProvider for testing
type MockPriceProvider struct {
	mock.Mock
}

func (m *MockPriceProvider) FetchPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func buyTx(accountID uuid.UUID, symbol string, quantity, unitPrice int64) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		ID:        uuid.New(),
		AccountID: accountID,
		Symbol:    symbol,
		Type:      domain.TransactionTypeBuy,
		Quantity:  decimal.NewFromInt(quantity),
		UnitPrice: decimal.NewFromInt(unitPrice),
		Fee:       decimal.Zero,
		Date:      time.Now(),
	}
}

func newTestService(accounts *MockAccountRepository, transactions *MockTransactionRepository, prices *MockPriceProvider) *Service {
	return NewService(accounts, transactions, prices, cache.New(time.Hour, 0), time.Hour, nil)
}

func TestAccountReturns_SingleHolding(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockTransactions := new(MockTransactionRepository)
	mockPrices := new(MockPriceProvider)

	service := newTestService(mockAccounts, mockTransactions, mockPrices)

	accountID := uuid.New()
	account := &domain.Account{ID: accountID, Name: "Brokerage", AccountType: domain.AccountTypeBrokerage}

	mockAccounts.On("GetByID", ctx, accountID).Return(account, nil)
	mockTransactions.On("Symbols", mock.Anything, accountID).Return([]string{"VTI"}, nil)
	mockTransactions.On("ListBySymbol", mock.Anything, accountID, "VTI").Return([]*domain.TransactionRecord{
		buyTx(accountID, "VTI", 10, 100),
		buyTx(accountID, "VTI", 10, 150),
	}, nil)
	mockPrices.On("FetchPrice", mock.Anything, "VTI").Return(decimal.NewFromInt(200), nil)

	summary, err := service.AccountReturns(ctx, accountID)

	assert.NoError(t, err)
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(4000)), "value: %s", summary.TotalValue)
	assert.True(t, summary.CostBasis.Equal(decimal.NewFromInt(2500)), "cost: %s", summary.CostBasis)
	assert.True(t, summary.ReturnPercentage.Equal(decimal.NewFromInt(60)), "pct: %s", summary.ReturnPercentage)
	assert.Len(t, summary.Positions, 1)

	mockAccounts.AssertExpectations(t)
	mockTransactions.AssertExpectations(t)
	mockPrices.AssertExpectations(t)
}

func TestAccountReturns_PriceFailureBecomesMissingPrice(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockTransactions := new(MockTransactionRepository)
	mockPrices := new(MockPriceProvider)

	service := newTestService(mockAccounts, mockTransactions, mockPrices)

	accountID := uuid.New()
	account := &domain.Account{ID: accountID, Name: "Brokerage", AccountType: domain.AccountTypeBrokerage}

	mockAccounts.On("GetByID", ctx, accountID).Return(account, nil)
	mockTransactions.On("Symbols", mock.Anything, accountID).Return([]string{"VTI"}, nil)
	mockTransactions.On("ListBySymbol", mock.Anything, accountID, "VTI").Return([]*domain.TransactionRecord{
		buyTx(accountID, "VTI", 10, 100),
	}, nil)
	mockPrices.On("FetchPrice", mock.Anything, "VTI").Return(decimal.Zero, domain.ErrPriceUnavailable)

	summary, err := service.AccountReturns(ctx, accountID)

	// An unavailable price is not an account failure; the position is
	// reported with the condition flagged, never a guessed value.
	assert.NoError(t, err)
	assert.Len(t, summary.Positions, 1)
	assert.True(t, summary.Positions[0].PriceMissing)
	assert.True(t, summary.TotalValue.Equal(decimal.Zero))
	assert.True(t, summary.CostBasis.Equal(decimal.NewFromInt(1000)))
}

func TestAccountReturns_ClosedPositionExcluded(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockTransactions := new(MockTransactionRepository)
	mockPrices := new(MockPriceProvider)

	service := newTestService(mockAccounts, mockTransactions, mockPrices)

	accountID := uuid.New()
	account := &domain.Account{ID: accountID, Name: "Brokerage", AccountType: domain.AccountTypeBrokerage}

	sell := buyTx(accountID, "BND", 10, 80)
	sell.Type = domain.TransactionTypeSell

	mockAccounts.On("GetByID", ctx, accountID).Return(account, nil)
	mockTransactions.On("Symbols", mock.Anything, accountID).Return([]string{"BND"}, nil)
	mockTransactions.On("ListBySymbol", mock.Anything, accountID, "BND").Return([]*domain.TransactionRecord{
		buyTx(accountID, "BND", 10, 80),
		sell,
	}, nil)

	summary, err := service.AccountReturns(ctx, accountID)

	assert.NoError(t, err)
	assert.Empty(t, summary.Positions)

	// No price lookup for a closed position
	mockPrices.AssertNotCalled(t, "FetchPrice", mock.Anything, "BND")
}

func TestAccountReturns_AccountNotFound(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockTransactions := new(MockTransactionRepository)
	mockPrices := new(MockPriceProvider)

	service := newTestService(mockAccounts, mockTransactions, mockPrices)

	accountID := uuid.New()
	mockAccounts.On("GetByID", ctx, accountID).Return(nil, domain.ErrAccountNotFound)

	_, err := service.AccountReturns(ctx, accountID)

	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	mockTransactions.AssertNotCalled(t, "Symbols", mock.Anything, accountID)
}

func TestAccountReturns_SecondCallServedFromCache(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockTransactions := new(MockTransactionRepository)
	mockPrices := new(MockPriceProvider)

	service := newTestService(mockAccounts, mockTransactions, mockPrices)

	accountID := uuid.New()
	account := &domain.Account{ID: accountID, Name: "Brokerage", AccountType: domain.AccountTypeBrokerage}

	mockAccounts.On("GetByID", ctx, accountID).Return(account, nil)
	mockTransactions.On("Symbols", mock.Anything, accountID).Return([]string{"VTI"}, nil)
	mockTransactions.On("ListBySymbol", mock.Anything, accountID, "VTI").Return([]*domain.TransactionRecord{
		buyTx(accountID, "VTI", 10, 100),
	}, nil)
	mockPrices.On("FetchPrice", mock.Anything, "VTI").Return(decimal.NewFromInt(120), nil)

	first, err := service.AccountReturns(ctx, accountID)
	assert.NoError(t, err)
	second, err := service.AccountReturns(ctx, accountID)
	assert.NoError(t, err)

	assert.True(t, first.TotalValue.Equal(second.TotalValue))
	mockTransactions.AssertNumberOfCalls(t, "Symbols", 1)
	mockPrices.AssertNumberOfCalls(t, "FetchPrice", 1)
}

func TestPortfolioReturns_ExcludedAccountsFilteredUpFront(t *testing.T) {
	ctx := context.Background()
	mockAccounts := new(MockAccountRepository)
	mockTransactions := new(MockTransactionRepository)
	mockPrices := new(MockPriceProvider)

	service := newTestService(mockAccounts, mockTransactions, mockPrices)

	included := &domain.Account{ID: uuid.New(), Name: "Brokerage", AccountType: domain.AccountTypeBrokerage}
	excluded := &domain.Account{ID: uuid.New(), Name: "Spouse", AccountType: domain.AccountTypeBrokerage, IsExcluded: true}

	mockAccounts.On("List", mock.Anything).Return([]*domain.Account{included, excluded}, nil)
	mockTransactions.On("Symbols", mock.Anything, included.ID).Return([]string{"VTI"}, nil)
	mockTransactions.On("ListBySymbol", mock.Anything, included.ID, "VTI").Return([]*domain.TransactionRecord{
		buyTx(included.ID, "VTI", 10, 100),
	}, nil)
	mockPrices.On("FetchPrice", mock.Anything, "VTI").Return(decimal.NewFromInt(150), nil)

	summary, err := service.PortfolioReturns(ctx)

	assert.NoError(t, err)
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(1500)))

	// The excluded account's holdings are never loaded at all
	mockTransactions.AssertNotCalled(t, "Symbols", mock.Anything, excluded.ID)
}
