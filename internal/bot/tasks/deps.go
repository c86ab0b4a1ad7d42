// Package tasks implements the bot's scheduled tasks and their registration.
package tasks

import (
	"log/slog"

	"github.com/edgard/atbot/internal/store"
)

// TaskDeps contains the dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  store.Store
}
