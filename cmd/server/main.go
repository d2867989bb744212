package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/quantfolio/calcengine-backend/internal/adapter/events"
	"github.com/quantfolio/calcengine-backend/internal/adapter/repository/postgres"
	"github.com/quantfolio/calcengine-backend/internal/cache"
	"github.com/quantfolio/calcengine-backend/internal/config"
	"github.com/quantfolio/calcengine-backend/internal/logging"
	"github.com/quantfolio/calcengine-backend/internal/usecase/portfolio"
	"github.com/quantfolio/calcengine-backend/internal/usecase/seeder"
)

func main() {
	// 1. Load configuration and set up logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	// 2. Connect to the database
	db, err := postgres.NewDB(cfg.Database.DSN)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// 3. Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	priceRepo := postgres.NewPriceRepository(db)
	benchmarkRepo := postgres.NewBenchmarkRepository(db)

	// 4. Seed the benchmark catalog
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := seeder.NewBenchmarkSeeder(benchmarkRepo).Seed(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to seed benchmark catalog")
	}
	logger.Info("Benchmark catalog seeded")

	// 5. Build the result cache and the calculation services around it
	resultCache := cache.New(cfg.Cache.TTL(), cfg.Cache.SweepInterval())

	portfolioService := portfolio.NewService(
		accountRepo,
		transactionRepo,
		priceRepo,
		resultCache,
		cfg.Cache.TTL(),
		logger,
	)

	// 6. Subscribe cache invalidation to domain change notifications
	listener, err := events.NewListener(cfg.Database.DSN, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to start event listener")
	}
	listener.Subscribe(cache.NewInvalidator(resultCache, logger))

	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			logger.WithError(err).Error("Event listener stopped")
		}
	}()
	logger.WithField("channel", events.Channel).Info("Listening for domain events")

	// 7. Warm the portfolio-wide result so the first consumer hits the cache
	if _, err := portfolioService.PortfolioReturns(ctx); err != nil {
		logger.WithError(err).Warn("Initial portfolio returns warm-up failed")
	}

	// 8. Periodic cache stats for operators
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Cache.StatsSchedule, func() {
		stats := resultCache.Stats()
		logger.WithFields(logrus.Fields{
			"entries":       stats.Entries,
			"approx_bytes":  stats.ApproxBytes,
			"hits":          stats.Hits,
			"misses":        stats.Misses,
			"invalidations": stats.Invalidations,
		}).Info("Cache stats")
	}); err != nil {
		logger.WithError(err).Fatal("Invalid cache stats schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	waitForShutdown(logger, cancel)
}

// waitForShutdown waits for SIGTERM or SIGINT and cancels the root context
func waitForShutdown(logger *logrus.Logger, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.WithField("signal", sig.String()).Info("Shutting down gracefully")
	cancel()
}
