package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"portfolio/internal/util"
	"portfolio/pkg/rbac"
)

func newTokenCmd(app *App) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for the /api/admin routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !rbac.ValidRole(role) {
				return fmt.Errorf("unknown role %q", role)
			}
			token, err := util.GenerateJWT(subject, role, app.Config.Admin.JWTSecret, ttl)
			if err != nil {
				return fmt.Errorf("minting token (is JWT_SECRET set?): %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().StringVar(&role, "role", rbac.RoleAdmin, "token role (admin or viewer)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
