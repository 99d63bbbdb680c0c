package pricing

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

const (
	tickInterval = 30 * time.Second

	// Random walk of up to ±5% per tick, plus a 2% bump when stock runs low.
	fluctuationRange = 0.05
	lowStockBump     = 0.02
	lowStockLevel    = 10

	// Prices never drift below half or above double the base price.
	minFactor = 0.5
	maxFactor = 2.0
)

// Service nudges every available product's current price on a fixed interval
// to simulate market movement. The random source is injectable so the walk is
// reproducible in tests.
type Service struct {
	repo RepositoryInterface
	rand func() float64
	log  *zap.SugaredLogger
}

// NewService creates a new pricing service. Pass nil for randFn to use the
// default source.
func NewService(repo RepositoryInterface, randFn func() float64, log *zap.SugaredLogger) *Service {
	if randFn == nil {
		randFn = rand.Float64
	}
	return &Service{repo: repo, rand: randFn, log: log}
}

// Run drives the fluctuation loop until the context is cancelled. Intended to
// be started as a goroutine from main.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	s.log.Infow("price fluctuation engine started", "interval", tickInterval.String())
	for {
		select {
		case <-ctx.Done():
			s.log.Info("price fluctuation engine stopped")
			return
		case <-ticker.C:
			if err := s.UpdatePrices(ctx); err != nil {
				s.log.Errorw("price update cycle failed", "error", err)
			}
		}
	}
}

// UpdatePrices performs one fluctuation cycle over all adjustable products.
// A failure on one product does not stop the cycle for the rest.
func (s *Service) UpdatePrices(ctx context.Context) error {
	products, err := s.repo.ListAdjustable(ctx)
	if err != nil {
		return err
	}

	for _, p := range products {
		newPrice := s.nextPrice(p.CurrentPrice, p.BasePrice, p.Quantity)
		if newPrice == p.CurrentPrice {
			continue
		}
		if err := s.repo.SetCurrentPrice(ctx, p.ID, newPrice); err != nil {
			s.log.Warnw("failed to update price", "product_id", p.ID, "error", err)
			continue
		}
		if err := s.repo.RecordChange(ctx, p.ID, p.CurrentPrice, newPrice); err != nil {
			s.log.Warnw("failed to record price change", "product_id", p.ID, "error", err)
		}
	}
	return nil
}

// nextPrice applies one step of the walk: random fluctuation, low-stock bump,
// clamp against the base price, then rounding to cents.
func (s *Service) nextPrice(current, base, quantity float64) float64 {
	fluctuation := (s.rand()*2 - 1) * fluctuationRange
	price := current * (1 + fluctuation)

	if quantity < lowStockLevel {
		price *= 1 + lowStockBump
	}

	price = math.Max(base*minFactor, math.Min(base*maxFactor, price))
	return math.Round(price*100) / 100
}
