package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/liveupdates/internal/adapters/http/api"
	"github.com/okian/liveupdates/internal/client"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/samples"
	"github.com/spf13/cobra"
)

func newSampleCommand(opts *options) *cobra.Command {
	var (
		step     int
		send     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:       "sample " + strings.Join(samples.Names(), "|"),
		Short:     "Print or send a scripted delivery or score sequence",
		Args:      cobra.ExactArgs(1),
		ValidArgs: samples.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := pick(args[0], step)
			if err != nil {
				return err
			}
			if !send {
				reqs := make([]api.EventRequest, 0, len(events))
				for _, ev := range events {
					reqs = append(reqs, client.Request(ev))
				}
				if len(reqs) == 1 {
					return writeJSON(cmd, reqs[0])
				}
				return writeJSON(cmd, reqs)
			}

			c := opts.client()
			for i, ev := range events {
				if i > 0 && interval > 0 {
					select {
					case <-cmd.Context().Done():
						return cmd.Context().Err()
					case <-time.After(interval):
					}
				}
				ack, err := c.Send(cmd.Context(), withID(client.Request(ev)))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s step %d: %s %s\n", args[0], i, ack.ID, ack.Status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&step, "step", -1, "Only use this step (0-based); all steps when negative")
	cmd.Flags().BoolVar(&send, "send", false, "Post the events to the service instead of printing them")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Delay between sent steps")

	return cmd
}

func pick(name string, step int) ([]model.Event, error) {
	if step >= 0 {
		ev, err := samples.Step(name, step)
		if err != nil {
			return nil, err
		}
		return []model.Event{ev}, nil
	}
	return samples.Sequence(name)
}
