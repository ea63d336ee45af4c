package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/auth"
)

func tokenCmd() *cobra.Command {
	var (
		secret     string
		keyFile    string
		issuer     string
		subject    string
		roles      []string
		customerID string
		ttl        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a JWT for calling creditd",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := auth.Config{Secret: secret, Issuer: issuer, TTL: ttl}
			if keyFile != "" {
				pemBytes, err := os.ReadFile(keyFile)
				if err != nil {
					return fmt.Errorf("read signing key: %w", err)
				}
				cfg.PrivateKeyPEM = string(pemBytes)
			}
			svc, err := auth.NewService(cfg)
			if err != nil {
				return err
			}
			for _, r := range roles {
				switch r {
				case auth.RoleAdmin, auth.RoleOperator:
				case auth.RoleMerchant:
					if customerID == "" {
						return errors.New("merchant tokens need --customer")
					}
				default:
					return fmt.Errorf("unknown role %q", r)
				}
			}
			token, err := svc.Issue(subject, roles, customerID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "HMAC secret (defaults to $JWT_SECRET)")
	cmd.Flags().StringVar(&keyFile, "private-key", "", "RSA private key PEM for RS256 tokens")
	cmd.Flags().StringVar(&issuer, "issuer", "aura-credit", "Token issuer")
	cmd.Flags().StringVar(&subject, "subject", "creditctl", "Token subject")
	cmd.Flags().StringSliceVar(&roles, "role", []string{auth.RoleOperator}, "Roles to grant (admin, operator, merchant)")
	cmd.Flags().StringVar(&customerID, "customer", "", "Pin the token to one customer")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
