package main

import (
	"fmt"

	"github.com/okian/liveupdates/internal/adapters/http/api"
	"github.com/okian/liveupdates/internal/domain/model"
	"github.com/okian/liveupdates/internal/domain/presenter"
	"github.com/spf13/cobra"
)

func newRenderCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a push payload locally without a service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readEvent(cmd, args)
			if err != nil {
				return err
			}
			d, err := presenter.New().Present(req.Event())
			if err != nil {
				return err
			}
			resp := api.PreviewResponse{
				Kind:            d.Kind.String(),
				SuppressDefault: d.SuppressDefault,
				Notification:    d.Notification,
			}
			if opts.json {
				return writeJSON(cmd, resp)
			}
			if d.Notification == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no live update; the default notification is shown")
				return nil
			}
			printNotifications(cmd, []model.Notification{*d.Notification})
			return nil
		},
	}
}
