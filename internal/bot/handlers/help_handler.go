package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/atbot/internal/command"
)

// NewHelpHandler returns a handler listing the verbs reported by verbs.
func NewHelpHandler(verbs func() []string) command.Handler {
	return helpHandler{verbs}.Handle
}

type helpHandler struct {
	verbs func() []string
}

func (h helpHandler) Handle(_ context.Context, cmd command.Command) (string, bool) {
	return fmt.Sprintf("%s: commands: %s", cmd.Invoker, strings.Join(h.verbs(), ", ")), true
}
