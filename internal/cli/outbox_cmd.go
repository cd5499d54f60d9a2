package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newOutboxCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect and replay queued events",
	}
	cmd.AddCommand(newOutboxReplayCmd(app))
	return cmd
}

func newOutboxReplayCmd(app *App) *cobra.Command {
	var (
		id    int64
		limit int
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-publish one event by --id, or every failed event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.OpenReplayer == nil {
				return errors.New("outbox replay needs content.driver=postgres and mq.url")
			}
			ctx := cmd.Context()

			r, closeFn, err := app.OpenReplayer(ctx)
			if err != nil {
				return fmt.Errorf("opening outbox: %w", err)
			}
			defer closeFn()

			if id > 0 {
				if err := r.ReplayEvent(ctx, id); err != nil {
					return fmt.Errorf("replaying event %d: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "replayed event %d\n", id)
				return nil
			}

			n, err := r.ReplayFailedEvents(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "replayed %d failed events\n", n)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "replay only this event")
	cmd.Flags().IntVar(&limit, "limit", 100, "max failed events to replay")
	return cmd
}
