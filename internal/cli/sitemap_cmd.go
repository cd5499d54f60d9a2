package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"portfolio/internal/content"
	"portfolio/internal/site"
)

func newSitemapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Print sitemap.xml for site.url",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := site.Sitemap(app.Config.Site.URL, content.Pages())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}
}
