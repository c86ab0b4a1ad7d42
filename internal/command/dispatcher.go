package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/edgard/atbot/internal/logger"
	"github.com/edgard/atbot/internal/metrics"
)

// Handler performs the action for one verb. It returns the reply text and
// whether a reply should be sent at all. Handlers report their own failures
// through the reply; they never return errors.
type Handler func(ctx context.Context, cmd Command) (reply string, ok bool)

// Replier sends a reply line to a destination on the transport.
type Replier interface {
	Reply(ctx context.Context, target, text string) error
}

// ReplierFunc adapts a function to Replier.
type ReplierFunc func(ctx context.Context, target, text string) error

// Reply calls f.
func (f ReplierFunc) Reply(ctx context.Context, target, text string) error {
	return f(ctx, target, text)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Dispatcher maps verbs to handlers and runs at most one handler per event.
// Dispatch calls are serialized: one event is fully handled, reply included,
// before the next starts.
type Dispatcher struct {
	parser   Parser
	logger   *slog.Logger
	metrics  *metrics.Metrics
	mu       sync.RWMutex
	handlers map[string]Handler

	dispatchMu sync.Mutex
}

// NewDispatcher returns a dispatcher with no handlers registered.
func NewDispatcher(parser Parser, log *slog.Logger, m *metrics.Metrics) *Dispatcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		parser:   parser,
		logger:   log.With("component", "dispatcher"),
		metrics:  m,
		handlers: make(map[string]Handler),
	}
}

// Register binds verb to h. Verbs are matched exactly and case-sensitively.
func (d *Dispatcher) Register(verb string, h Handler) error {
	if verb == "" {
		return fmt.Errorf("verb cannot be empty")
	}
	if h == nil {
		return fmt.Errorf("handler for %s cannot be nil", verb)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.handlers[verb]; exists {
		return fmt.Errorf("handler for %s already registered", verb)
	}
	d.handlers[verb] = h
	d.logger.Debug("Registered command handler", "verb", verb)
	return nil
}

// Verbs lists the registered verbs in sorted order.
func (d *Dispatcher) Verbs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	verbs := make([]string, 0, len(d.handlers))
	for v := range d.handlers {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

// Self returns the identity the dispatcher treats as "direct message".
func (d *Dispatcher) Self() string {
	return d.parser.Self
}

// Dispatch parses ev and runs the matching handler. Lines that are not
// commands and unknown verbs are ignored silently. The only error returned
// is a failure of r to deliver the reply.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event, r Replier) error {
	cmd, ok := d.parser.Parse(ev)
	if !ok {
		return nil
	}

	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.RLock()
	h, found := d.handlers[cmd.Verb]
	d.mu.RUnlock()
	if !found {
		d.logger.DebugContext(ctx, "Ignoring unknown verb", "verb", cmd.Verb, "invoker", cmd.Invoker)
		d.metrics.ObserveDispatch("unknown", metrics.OutcomeIgnored)
		return nil
	}

	log := d.logger.With("verb", cmd.Verb, "invoker", cmd.Invoker, "reply_to", cmd.ReplyTo)
	log.InfoContext(ctx, "Dispatching command", "args_preview", logger.Truncate(cmd.Args, 50))
	startTime := time.Now()

	reply, send := h(ctx, cmd)
	if !send {
		log.DebugContext(ctx, "Handler produced no reply", "duration", time.Since(startTime))
		d.metrics.ObserveDispatch(cmd.Verb, metrics.OutcomeSilent)
		return nil
	}

	if err := r.Reply(ctx, cmd.ReplyTo, lineBreaks.Replace(reply)); err != nil {
		log.ErrorContext(ctx, "Failed to send reply", "error", err)
		d.metrics.ObserveDispatch(cmd.Verb, metrics.OutcomeSendFailed)
		return fmt.Errorf("failed to send reply to %s: %w", cmd.ReplyTo, err)
	}

	d.metrics.ObserveDispatch(cmd.Verb, metrics.OutcomeReplied)
	log.DebugContext(ctx, "Command handled", "duration", time.Since(startTime))
	return nil
}
