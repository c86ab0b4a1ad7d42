// Package bot wires the dispatcher, transports, scheduler and metrics
// endpoint together and manages their lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/atbot/internal/bot/handlers"
	"github.com/edgard/atbot/internal/command"
	"github.com/edgard/atbot/internal/config"
	"github.com/edgard/atbot/internal/metrics"
	"github.com/edgard/atbot/internal/store"
)

// Transport delivers chat events to the dispatcher until its context ends.
// A transport returning nil before cancellation has run out of input.
type Transport interface {
	Name() string
	Run(ctx context.Context) error
}

// Bot represents the running application and owns its components.
type Bot struct {
	logger      *slog.Logger
	store       store.Store
	scheduler   *Scheduler
	metrics     *metrics.Metrics
	metricsAddr string
	transports  []Transport
}

// NewBot creates a bot. scheduler and metrics may be nil; metricsAddr empty
// disables the metrics endpoint.
func NewBot(
	logger *slog.Logger,
	st store.Store,
	scheduler *Scheduler,
	m *metrics.Metrics,
	metricsAddr string,
	transports ...Transport,
) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		logger:      logger.With("component", "bot_orchestrator"),
		store:       st,
		scheduler:   scheduler,
		metrics:     m,
		metricsAddr: metricsAddr,
		transports:  transports,
	}
}

// NewDispatcher builds a dispatcher for cfg with every command registered.
func NewDispatcher(cfg *config.Config, st store.Store, m *metrics.Metrics, logger *slog.Logger) (*command.Dispatcher, error) {
	d := command.NewDispatcher(command.Parser{Self: cfg.Bot.Nick, Prefix: cfg.Bot.Prefix}, logger, m)
	err := handlers.Register(d, handlers.HandlerDeps{
		Logger:  logger,
		Store:   st,
		Metrics: m,
		Prefix:  cfg.Bot.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}
	return d, nil
}

// Run starts every component and blocks until ctx is cancelled, a component
// fails, or a transport runs out of input. The store is closed on return.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator", "transports", len(b.transports))
	defer b.closeStore()
	if b.scheduler != nil {
		defer func() { _ = b.scheduler.Stop() }()
	}

	if len(b.transports) == 0 {
		return errors.New("no transports enabled")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(runCtx)

	for _, t := range b.transports {
		g.Go(func() error {
			log := b.logger.With("transport", t.Name())
			log.Info("Starting transport")
			if err := t.Run(gCtx); err != nil {
				log.Error("Transport failed", "error", err)
				return fmt.Errorf("%s transport: %w", t.Name(), err)
			}
			if gCtx.Err() == nil {
				log.Info("Transport finished, shutting down")
				cancel()
			}
			return nil
		})
	}

	if b.scheduler != nil {
		g.Go(func() error {
			if err := b.scheduler.Start(gCtx); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			<-gCtx.Done()
			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error stopping scheduler", "error", err)
			}
			return nil
		})
	}

	if b.metrics != nil && b.metricsAddr != "" {
		g.Go(func() error {
			return b.metrics.Serve(gCtx, b.metricsAddr, b.logger)
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully")
	return nil
}

func (b *Bot) closeStore() {
	if b.store == nil {
		return
	}
	if err := b.store.Close(); err != nil {
		b.logger.Error("Failed to close store", "error", err)
	}
}
