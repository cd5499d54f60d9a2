package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"portfolio/internal/client"
	"portfolio/internal/config"
	"portfolio/internal/content"
)

// EventPublisher publishes one event; *mq.Publisher implements it.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Replayer re-publishes outbox events; *outbox.ReplayService implements it.
type Replayer interface {
	ReplayEvent(ctx context.Context, eventID int64) error
	ReplayFailedEvents(ctx context.Context, limit int) (int, error)
}

// App holds what the commands need. Fields are wired in cmd/portfolioctl.
type App struct {
	Config *config.Config

	// OpenWriter opens the configured SQL content store; the returned func closes it.
	OpenWriter func(ctx context.Context) (content.Writer, func(), error)

	// Publisher is nil when no broker is configured.
	Publisher EventPublisher

	// OpenReplayer is nil unless both postgres and a broker are configured.
	OpenReplayer func(ctx context.Context) (Replayer, func(), error)

	NewSender func(baseURL string) client.Sender
	Now       func() time.Time
}

// NewRootCmd creates the top-level "portfolioctl" command.
func NewRootCmd(app *App) *cobra.Command {
	if app.NewSender == nil {
		app.NewSender = func(baseURL string) client.Sender { return client.New(baseURL) }
	}
	if app.Now == nil {
		app.Now = time.Now
	}

	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Operate the portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newContactCmd(app),
		newContentCmd(app),
		newOutboxCmd(app),
		newTokenCmd(app),
		newSitemapCmd(app),
	)
	return root
}
