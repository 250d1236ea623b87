package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"shopmart/internal/models"
	"shopmart/internal/repositories"
)

const defaultLowStockThreshold = 10

// StockAlertService periodically sweeps stock levels and logs products that
// sit at or under the threshold. Read-only: the sweep never mutates rows.
type StockAlertService struct {
	productRepo repositories.ProductRepository
	threshold   int
}

func NewStockAlertService(productRepo repositories.ProductRepository, threshold int) *StockAlertService {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	return &StockAlertService{
		productRepo: productRepo,
		threshold:   threshold,
	}
}

// CheckLowStock returns the active products currently at or under the
// threshold.
func (s *StockAlertService) CheckLowStock(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.ListStockBelow(ctx, s.threshold)
	if err != nil {
		log.Printf("Failed to list low-stock products: %v", err)
		return nil, err
	}
	return products, nil
}

// Run executes one sweep and logs the result.
func (s *StockAlertService) Run(ctx context.Context) {
	products, err := s.CheckLowStock(ctx)
	if err != nil {
		return
	}
	for _, p := range products {
		log.Printf("LOW STOCK: product %d (%s) at %d units (threshold %d)",
			p.ID, p.Name, p.Stock.Quantity, s.threshold)
	}
	if len(products) == 0 {
		log.Printf("Low-stock sweep: all products above threshold %d", s.threshold)
	}
}

// Schedule registers the sweep on the scheduler at the given interval.
func (s *StockAlertService) Schedule(scheduler gocron.Scheduler, interval time.Duration) (gocron.Job, error) {
	return scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.Run(ctx)
		}),
		gocron.WithName("low-stock-sweep"),
	)
}
