package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/core/services"
)

// newTokenCmd mints a bearer token for the HTTP API, signed with JWT_SECRET.
// It stands in for the login portal during local development.
func newTokenCmd(e *env) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print an API bearer token for --owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET must be set to sign tokens")
			}
			if ttl <= 0 {
				ttl = e.cfg.TokenTTL
			}

			tokens := services.NewTokenService(e.cfg.JWTSecret, e.cfg.JWTIssuer, ttl)
			token, err := tokens.GenerateToken(e.flags.ownerID)
			if err != nil {
				return err
			}

			if e.flags.output == outputYAML {
				return writeYAML(cmd.OutOrStdout(), map[string]any{
					"owner_id":   e.flags.ownerID,
					"token":      token,
					"expires_in": ttl.String(),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default $TOKEN_TTL)")
	return cmd
}
