// Package handlers contains the chat command handlers and their
// registration with the dispatcher.
package handlers

import (
	"log/slog"
	"math/rand/v2"

	"github.com/edgard/atbot/internal/metrics"
	"github.com/edgard/atbot/internal/store"
)

// HandlerDeps provides dependencies for command handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Store   store.Store
	Picker  Picker
	Metrics *metrics.Metrics
	Prefix  string
}

// Picker selects an index in [0, n) for n >= 1. Every index must be
// equally likely.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

// Pick calls f.
func (f PickerFunc) Pick(n int) int { return f(n) }

// RandomPicker picks uniformly using the runtime's random source.
func RandomPicker() Picker {
	return PickerFunc(rand.IntN)
}
