package handlers

import (
	"context"
	"fmt"

	"github.com/edgard/atbot/internal/command"
	"github.com/edgard/atbot/internal/store"
)

// NewIAmHandler returns a handler for @iam, which saves the caller's
// description.
func NewIAmHandler(deps HandlerDeps) command.Handler {
	deps = withDefaults(deps)
	return iamHandler{deps}.Handle
}

type iamHandler struct {
	deps HandlerDeps
}

func (h iamHandler) Handle(ctx context.Context, cmd command.Command) (string, bool) {
	log := h.deps.Logger.With("handler", "iam")

	profile := store.NewProfile(cmd.Invoker, cmd.Args)
	if err := h.deps.Store.Save(ctx, profile); err != nil {
		log.ErrorContext(ctx, "Failed to save profile", "key", profile.Nickname, "error", err)
		h.deps.Metrics.ObserveStoreError("save")
		return fmt.Sprintf("%s: Something went wrong.", cmd.Invoker), true
	}

	log.InfoContext(ctx, "Saved profile", "key", profile.Nickname)
	return fmt.Sprintf("%s: Got it!", cmd.Invoker), true
}
