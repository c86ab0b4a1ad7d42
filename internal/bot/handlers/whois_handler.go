package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/atbot/internal/command"
	"github.com/edgard/atbot/internal/store"
)

// NewWhoisHandler returns a handler for @whois <name>.
func NewWhoisHandler(deps HandlerDeps) command.Handler {
	deps = withDefaults(deps)
	return whoisHandler{deps}.Handle
}

type whoisHandler struct {
	deps HandlerDeps
}

func (h whoisHandler) Handle(ctx context.Context, cmd command.Command) (string, bool) {
	if cmd.Args == "" {
		return fmt.Sprintf("%s: Who is who? I need a name!", cmd.Invoker), true
	}

	// Only the first space-separated token names the target; the rest is ignored.
	target, _, _ := strings.Cut(cmd.Args, " ")

	profile, err := h.deps.Store.Load(ctx, store.Fold(target))
	if err != nil {
		logStoreLoadError(ctx, h.deps, "whois", target, err)
		return fmt.Sprintf("%s: I don't know who %s is.", cmd.Invoker, target), true
	}
	return fmt.Sprintf("%s: %s is %s", cmd.Invoker, target, profile.Description), true
}

// NewWhoamiHandler returns a handler for @whoami.
func NewWhoamiHandler(deps HandlerDeps) command.Handler {
	deps = withDefaults(deps)
	return whoamiHandler{deps}.Handle
}

type whoamiHandler struct {
	deps HandlerDeps
}

func (h whoamiHandler) Handle(ctx context.Context, cmd command.Command) (string, bool) {
	profile, err := h.deps.Store.Load(ctx, store.Fold(cmd.Invoker))
	if err != nil {
		logStoreLoadError(ctx, h.deps, "whoami", cmd.Invoker, err)
		return fmt.Sprintf("%s: I don't know who you are.", cmd.Invoker), true
	}
	return fmt.Sprintf("%s: you are %s", cmd.Invoker, profile.Description), true
}

// logStoreLoadError logs a failed lookup. Missing records are routine; any
// other read failure is logged as an error and counted.
func logStoreLoadError(ctx context.Context, deps HandlerDeps, handler, name string, err error) {
	log := deps.Logger.With("handler", handler)
	if store.IsNotFound(err) {
		log.DebugContext(ctx, "No profile for name", "name", name)
		return
	}
	log.ErrorContext(ctx, "Failed to load profile", "name", name, "error", err)
	deps.Metrics.ObserveStoreError("load")
}
