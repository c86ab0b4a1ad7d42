package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/atbot/internal/command"
)

const choiceSeparator = " or "

// NewChooseHandler returns a handler for @choose.
func NewChooseHandler(deps HandlerDeps) command.Handler {
	deps = withDefaults(deps)
	return chooseHandler{deps}.Handle
}

// chooseHandler replies with one of the " or "-separated options.
type chooseHandler struct {
	deps HandlerDeps
}

func (h chooseHandler) Handle(ctx context.Context, cmd command.Command) (string, bool) {
	candidates := strings.Split(cmd.Args, choiceSeparator)
	choice := candidates[h.deps.Picker.Pick(len(candidates))]

	h.deps.Logger.DebugContext(ctx, "Picked option", "handler", "choose", "options", len(candidates))
	return fmt.Sprintf("%s: %s", cmd.Invoker, choice), true
}
