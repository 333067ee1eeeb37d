// Package token mints access tokens for local development and scripts.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/locationgenius/dashboard/internal/infrastructure/auth"
	"github.com/locationgenius/dashboard/internal/infrastructure/config"
	"github.com/locationgenius/dashboard/internal/shared/authorization"
)

var (
	env        string
	configPath string
	userID     string
	role       string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token",
		Long:  `Sign a bearer token for the given user and role with the configured JWT secret.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "User ID placed in the token (required)")
	cmd.Flags().StringVarP(&role, "role", "r", authorization.RoleUser.String(), "Role: admin, manager or user")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	r := authorization.UserRole(role)
	if !r.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	token, exp, err := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes).Generate(userID, r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
	return nil
}
