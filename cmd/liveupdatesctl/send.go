package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSendCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "send [file|-]",
		Short: "Post a push payload to the service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readEvent(cmd, args)
			if err != nil {
				return err
			}
			ack, err := opts.client().Send(cmd.Context(), withID(req))
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd, ack)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ack.ID, ack.Status)
			return nil
		},
	}
}

func newTestProgressCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "test-progress",
		Short: "Show the progress bar test notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := opts.client().TestProgress(cmd.Context())
			if err != nil {
				return err
			}
			if opts.json {
				return writeJSON(cmd, n)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted notification %d\n", n.ID)
			return nil
		},
	}
}
