package cli

import (
	"github.com/spf13/cobra"

	"github.com/edgard/atbot/internal/bot"
	"github.com/edgard/atbot/internal/bot/tasks"
	"github.com/edgard/atbot/internal/transport/console"
)

// ConsoleOptions holds flags for the console command.
type ConsoleOptions struct {
	*RootOptions
	Nick    string
	Channel string
}

// NewConsoleCommand creates the console command.
func NewConsoleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConsoleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Chat with the bot on stdin/stdout",
		Long: `Read chat lines from stdin and print replies to stdout, using the
configured store. Logs go to stderr.

Lines starting with /nick, /join or /query change who is speaking and where.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Nick, "nick", console.DefaultNick, "nickname to speak as")
	cmd.Flags().StringVar(&opts.Channel, "channel", console.DefaultChannel, "channel to speak in")

	return cmd
}

func runConsole(cmd *cobra.Command, opts *ConsoleOptions) error {
	ctx := cmd.Context()

	cfg, log, err := setup(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	d, err := bot.NewDispatcher(cfg, st, nil, log)
	if err != nil {
		_ = st.Close()
		return err
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Store: st}))
	if err != nil {
		_ = st.Close()
		return err
	}

	con := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), d, opts.Nick, opts.Channel, log)
	return bot.NewBot(log, st, sched, nil, "", con).Run(ctx)
}
