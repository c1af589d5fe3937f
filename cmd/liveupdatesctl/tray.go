package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTrayCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "List the notifications currently in the service tray",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := opts.client().Notifications(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "tray is empty")
				return nil
			}
			printNotifications(cmd, list)
			return nil
		},
	}
}

func newDismissCommand(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Remove a notification from the tray",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid notification id %q: %w", args[0], err)
			}
			if err := opts.client().Dismiss(cmd.Context(), id, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dismissed %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Also remove ongoing notifications")
	return cmd
}
