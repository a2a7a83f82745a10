package commands

import (
	"fmt"
	"time"

	"reliableteam-site/pkg/auth"

	"github.com/spf13/cobra"
)

func (c *CLI) newTokenCmd() *cobra.Command {
	var secret, subject, email string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a staff token for the inquiry list endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := auth.IssueStaffToken(secret, subject, email, ttl)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", c.cfg.AdminJWTSecret, "Signing secret (ADMIN_JWT_SECRET)")
	cmd.Flags().StringVar(&subject, "subject", "staff", "Token subject")
	cmd.Flags().StringVar(&email, "email", "", "Staff e-mail recorded in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "Token lifetime")
	return cmd
}
