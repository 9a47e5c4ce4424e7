package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/pkg/logger"
)

// OrderExpiryScheduler cancels pending orders whose payment never arrived,
// returning their reserved stock to the catalog.
type OrderExpiryScheduler struct {
	cron          *cron.Cron
	orderService  service.OrderService
	pendingExpiry time.Duration
}

func NewOrderExpiryScheduler(orderService service.OrderService, pendingExpiry time.Duration) *OrderExpiryScheduler {
	return &OrderExpiryScheduler{
		cron:          cron.New(),
		orderService:  orderService,
		pendingExpiry: pendingExpiry,
	}
}

func (s *OrderExpiryScheduler) Start() error {
	// Every 10 minutes, cancel orders stuck in pending past the expiry window.
	_, err := s.cron.AddFunc("*/10 * * * *", func() {
		cutoff := time.Now().Add(-s.pendingExpiry)
		logger.Info("Starting scheduled stale order cleanup", map[string]interface{}{
			"cutoff": cutoff,
		})

		cancelled, err := s.orderService.CancelStalePending(cutoff)
		if err != nil {
			logger.Error("Failed to cancel stale pending orders", err)
			return
		}

		if cancelled > 0 {
			logger.Info("Cancelled stale pending orders", map[string]interface{}{
				"count": cancelled,
			})
		}
	})

	if err != nil {
		logger.Error("Failed to add cron job for order expiry", err)
		return err
	}

	s.cron.Start()
	logger.Info("Order expiry scheduler started successfully (every 10 minutes)", map[string]interface{}{
		"pending_expiry": s.pendingExpiry.String(),
	})

	return nil
}

func (s *OrderExpiryScheduler) Stop() {
	logger.Info("Stopping order expiry scheduler...")
	s.cron.Stop()
	logger.Info("Order expiry scheduler stopped")
}
