package seeder

import (
	"context"

	"github.com/google/uuid"

	"github.com/quantfolio/calcengine-backend/internal/domain"
)

// Fixed UUIDs for the built-in benchmarks so re-seeding is idempotent
var (
	BenchmarkSP500       = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	BenchmarkNasdaq      = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	BenchmarkDow         = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	BenchmarkRussell2000 = uuid.MustParse("00000000-0000-0000-0000-000000000004")
)

// Benchmark defines the structure of a benchmark to be seeded
type Benchmark struct {
	ID         uuid.UUID
	Identifier string
	Name       string
}

// BenchmarkSeeder ensures the supported benchmark identifiers exist in the
// catalog; identifiers outside the catalog are rejected as unsupported by
// the analyzer.
type BenchmarkSeeder struct {
	catalog domain.BenchmarkCatalog
}

// NewBenchmarkSeeder creates a new BenchmarkSeeder instance
func NewBenchmarkSeeder(catalog domain.BenchmarkCatalog) *BenchmarkSeeder {
	return &BenchmarkSeeder{
		catalog: catalog,
	}
}

// Seed registers every built-in benchmark that is not already present
func (s *BenchmarkSeeder) Seed(ctx context.Context) error {
	benchmarks := []Benchmark{
		{ID: BenchmarkSP500, Identifier: "sp500", Name: "S&P 500"},
		{ID: BenchmarkNasdaq, Identifier: "nasdaq", Name: "NASDAQ Composite"},
		{ID: BenchmarkDow, Identifier: "dow", Name: "Dow Jones Industrial Average"},
		{ID: BenchmarkRussell2000, Identifier: "russell2000", Name: "Russell 2000"},
	}

	for _, benchmark := range benchmarks {
		exists, err := s.catalog.Exists(ctx, benchmark.Identifier)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := s.catalog.Register(ctx, benchmark.ID, benchmark.Identifier, benchmark.Name); err != nil {
			return err
		}
	}

	return nil
}
