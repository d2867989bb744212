package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBenchmarkCatalog is a mock implementation of BenchmarkCatalog for testing
type MockBenchmarkCatalog struct {
	mock.Mock
}

func (m *MockBenchmarkCatalog) Exists(ctx context.Context, identifier string) (bool, error) {
	args := m.Called(ctx, identifier)
	return args.Bool(0), args.Error(1)
}

func (m *MockBenchmarkCatalog) Register(ctx context.Context, id uuid.UUID, identifier, name string) error {
	args := m.Called(ctx, id, identifier, name)
	return args.Error(0)
}

func TestSeed_RegistersMissingBenchmarks(t *testing.T) {
	ctx := context.Background()
	mockCatalog := new(MockBenchmarkCatalog)

	mockCatalog.On("Exists", ctx, mock.Anything).Return(false, nil)
	mockCatalog.On("Register", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := NewBenchmarkSeeder(mockCatalog).Seed(ctx)

	assert.NoError(t, err)
	mockCatalog.AssertNumberOfCalls(t, "Register", 4)
}

func TestSeed_SkipsExistingBenchmarks(t *testing.T) {
	ctx := context.Background()
	mockCatalog := new(MockBenchmarkCatalog)

	mockCatalog.On("Exists", ctx, "sp500").Return(true, nil)
	mockCatalog.On("Exists", ctx, mock.Anything).Return(false, nil)
	mockCatalog.On("Register", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := NewBenchmarkSeeder(mockCatalog).Seed(ctx)

	assert.NoError(t, err)
	mockCatalog.AssertNumberOfCalls(t, "Register", 3)
	mockCatalog.AssertNotCalled(t, "Register", ctx, BenchmarkSP500, "sp500", "S&P 500")
}

func TestSeed_PropagatesCatalogErrors(t *testing.T) {
	ctx := context.Background()
	mockCatalog := new(MockBenchmarkCatalog)
	boom := errors.New("catalog unavailable")

	mockCatalog.On("Exists", ctx, mock.Anything).Return(false, boom)

	err := NewBenchmarkSeeder(mockCatalog).Seed(ctx)
	assert.ErrorIs(t, err, boom)
}
