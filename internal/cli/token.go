package cli

import (
	"fmt"
	"time"

	"github.com/sangkips/quotedesk-api/pkg/utils"
	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator bearer token",
		Long: `Issue a bearer token for the mutating API routes.

Tokens are only checked when AUTH_ENABLED is set. They are signed with
JWT_SECRET, so the API and quotectl must share it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jwtCfg := rootOpts.cfg.JWT
			manager := utils.NewJWTManager(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.ExpiryHours)

			token, err := manager.GenerateToken(subject, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "operator the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to JWT_EXPIRY_HOURS")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
