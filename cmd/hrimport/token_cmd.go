package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hrimport/internal/auth"
	"hrimport/internal/platform/config"
)

func newTokenCmd(e *env) *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the import trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.cfg.JWTSecret == "" {
				return config.ErrMissingJWTSecret
			}
			if _, ok := auth.RolePermissions[role]; !ok {
				return fmt.Errorf("unknown role %q", role)
			}
			token, err := auth.GenerateToken(e.cfg.JWTSecret, auth.Claims{UserID: userID, RoleName: role}, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "ops", "User id recorded in the token")
	cmd.Flags().StringVar(&role, "role", auth.RoleHR, "Role claim (HR or SystemAdmin)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
