package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/edgard/atbot/internal/store"
)

// newStoreMaintenanceTask runs the store's housekeeping when the backend
// provides one, and does nothing otherwise.
func newStoreMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", StoreMaintenance)

	return func(ctx context.Context) error {
		m, ok := deps.Store.(store.Maintainer)
		if !ok {
			log.DebugContext(ctx, "Store backend has no maintenance, skipping")
			return nil
		}

		log.InfoContext(ctx, "Starting store maintenance")
		startTime := time.Now()

		if err := m.RunMaintenance(ctx); err != nil {
			log.ErrorContext(ctx, "Store maintenance failed", "error", err, "duration", time.Since(startTime))
			return fmt.Errorf("store maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Store maintenance completed", "duration", time.Since(startTime))
		return nil
	}
}
