package tasks

import (
	"context"
	"io"
	"log/slog"
)

// StoreMaintenance is the configuration key of the store maintenance task.
const StoreMaintenance = "store_maintenance"

// ScheduledTaskFunc is the signature of every scheduled task. The context is
// cancelled when the scheduler shuts down.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns every task keyed by the name used in the
// scheduler.tasks configuration section.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tasks := map[string]ScheduledTaskFunc{
		StoreMaintenance: newStoreMaintenanceTask(deps),
	}

	deps.Logger.Debug("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
