package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edgard/atbot/internal/store"
)

// NewProfileCommand creates the profile command group.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Read or write stored profiles directly",
	}
	cmd.AddCommand(newProfileGetCommand(rootOpts))
	cmd.AddCommand(newProfileSetCommand(rootOpts))
	return cmd
}

func newProfileGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <nick>",
		Short: "Print the description stored for nick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, rootOpts, func(st store.Store) error {
				p, err := st.Load(cmd.Context(), store.Fold(args[0]))
				if err != nil {
					if store.IsNotFound(err) {
						return fmt.Errorf("no profile for %s", args[0])
					}
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", args[0], p.Description)
				return err
			})
		},
	}
}

func newProfileSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <nick> <description...>",
		Short: "Store a description for nick, replacing any previous one",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, rootOpts, func(st store.Store) error {
				p := store.NewProfile(args[0], strings.Join(args[1:], " "))
				if err := st.Save(cmd.Context(), p); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", p.Nickname)
				return err
			})
		},
	}
}

func withStore(cmd *cobra.Command, opts *RootOptions, fn func(store.Store) error) error {
	cfg, log, err := setup(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Failed to close store", "error", err)
		}
	}()
	return fn(st)
}
