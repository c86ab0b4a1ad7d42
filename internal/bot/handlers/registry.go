package handlers

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/edgard/atbot/internal/command"
)

// Command names without the prefix marker.
const (
	CmdChoose = "choose"
	CmdIAm    = "iam"
	CmdWhois  = "whois"
	CmdWhoami = "whoami"
	CmdHelp   = "help"
)

// RegisterAllCommands builds every command handler keyed by its full verb
// (prefix included).
func RegisterAllCommands(deps HandlerDeps, verbs func() []string) map[string]command.Handler {
	deps = withDefaults(deps)
	p := deps.Prefix

	return map[string]command.Handler{
		p + CmdChoose: NewChooseHandler(deps),
		p + CmdIAm:    NewIAmHandler(deps),
		p + CmdWhois:  NewWhoisHandler(deps),
		p + CmdWhoami: NewWhoamiHandler(deps),
		p + CmdHelp:   NewHelpHandler(verbs),
	}
}

// Register adds every command handler to d.
func Register(d *command.Dispatcher, deps HandlerDeps) error {
	for verb, h := range RegisterAllCommands(deps, d.Verbs) {
		if err := d.Register(verb, h); err != nil {
			return fmt.Errorf("failed to register %s: %w", verb, err)
		}
	}
	return nil
}

func withDefaults(deps HandlerDeps) HandlerDeps {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Picker == nil {
		deps.Picker = RandomPicker()
	}
	if deps.Prefix == "" {
		deps.Prefix = command.DefaultPrefix
	}
	return deps
}
