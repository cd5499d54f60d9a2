package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"portfolio/contracts/mq"
	"portfolio/internal/cache"
	"portfolio/internal/content"
)

// eventRecorder is implemented by stores that queue content.updated themselves.
type eventRecorder interface {
	RecordsEvents() bool
}

func newContentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage site content",
	}
	cmd.AddCommand(newContentSeedCmd(app))
	return cmd
}

func newContentSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in content into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if app.OpenWriter == nil {
				return fmt.Errorf("content driver %q has no writable store", app.Config.Content.Driver)
			}

			w, closeFn, err := app.OpenWriter(ctx)
			if err != nil {
				return fmt.Errorf("opening content store: %w", err)
			}
			defer closeFn()

			if err := content.Seed(ctx, content.Static{}, w); err != nil {
				return fmt.Errorf("seeding content: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s content store\n", app.Config.Content.Driver)

			if rec, ok := w.(eventRecorder); ok && rec.RecordsEvents() {
				fmt.Fprintln(cmd.OutOrStdout(), "queued", mq.RoutingContentUpdated, "in outbox")
				return nil
			}
			if app.Publisher == nil {
				return nil
			}
			evt := mq.ContentUpdatedPayload{
				Kinds:     []string{cache.KindProjects, cache.KindSkills, cache.KindAchievements},
				Source:    "portfolioctl",
				UpdatedAt: app.Now().UTC(),
			}
			if err := app.Publisher.Publish(ctx, mq.RoutingContentUpdated, evt); err != nil {
				return fmt.Errorf("publishing %s: %w", mq.RoutingContentUpdated, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "published", mq.RoutingContentUpdated)
			return nil
		},
	}
}
