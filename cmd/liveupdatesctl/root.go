package main

import (
	"time"

	"github.com/okian/liveupdates/internal/client"
	"github.com/spf13/cobra"
)

const defaultURL = "http://localhost:9080"

type options struct {
	url     string
	timeout time.Duration
	json    bool
}

func (o *options) client() *client.Client {
	return client.New(o.url, o.timeout)
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "liveupdatesctl",
		Short:         "Render and send live update pushes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.url, "url", defaultURL, "Base URL of the live updates service")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print JSON instead of a table")

	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newSendCommand(opts))
	rootCmd.AddCommand(newSampleCommand(opts))
	rootCmd.AddCommand(newTrayCommand(opts))
	rootCmd.AddCommand(newDismissCommand(opts))
	rootCmd.AddCommand(newTestProgressCommand(opts))

	return rootCmd
}
