package service

import (
	"context"
	"time"

	"redirect-manager/internal/metrics"
)

// StartMetricsUpdater keeps the rules-total gauge in step with storage until
// the context stops.
func (s *RedirectService) StartMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)

	update := func() {
		count, err := s.rules.Count(ctx)
		if err != nil {
			s.logger.Error("Failed to count rules", "error", err)
			return
		}
		metrics.SetRulesTotal(float64(count))
	}

	go update()

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				update()
			}
		}
	}()
}
