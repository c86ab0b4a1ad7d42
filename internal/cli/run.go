package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgard/atbot/internal/bot"
	"github.com/edgard/atbot/internal/bot/tasks"
	"github.com/edgard/atbot/internal/metrics"
	"github.com/edgard/atbot/internal/transport/discord"
	"github.com/edgard/atbot/internal/transport/telegram"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to the configured chat networks and serve commands",
		Long: `Connect to every enabled chat network and answer commands until
interrupted.

Example:
  atbot run --config ./config.yaml
  ATBOT_BOT_NICK=atbot ATBOT_TELEGRAM_ENABLED=true ATBOT_TELEGRAM_TOKEN=... atbot run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd, rootOpts)
		},
	}
}

func runBot(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()

	cfg, log, err := setup(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	m := metrics.New()
	d, err := bot.NewDispatcher(cfg, st, m, log)
	if err != nil {
		_ = st.Close()
		return err
	}

	var transports []bot.Transport
	if cfg.Telegram.Enabled {
		tg, err := telegram.New(cfg.Telegram.Token, d, log)
		if err != nil {
			_ = st.Close()
			return fmt.Errorf("failed to set up telegram: %w", err)
		}
		transports = append(transports, tg)
	}
	if cfg.Discord.Enabled {
		dc, err := discord.New(cfg.Discord.Token, d, log)
		if err != nil {
			_ = st.Close()
			return fmt.Errorf("failed to set up discord: %w", err)
		}
		transports = append(transports, dc)
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Store: st}))
	if err != nil {
		_ = st.Close()
		return err
	}

	app := bot.NewBot(log, st, sched, m, cfg.Metrics.Addr, transports...)
	return app.Run(ctx)
}
