package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	grpcPresentation "github.com/aurasystemsai/aura-core-monolith-sub005/internal/presentation/grpc"
	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/auth"
	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/tlsutil"
)

// remoteFlags are shared by every command that talks to creditd.
type remoteFlags struct {
	addr       string
	useTLS     bool
	caFile     string
	serverName string
	token      string
	timeout    time.Duration
}

func (f *remoteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.addr, "addr", "localhost:9090", "creditd gRPC address")
	cmd.Flags().BoolVar(&f.useTLS, "tls", false, "Dial with TLS")
	cmd.Flags().StringVar(&f.caFile, "ca", "", "CA certificate for TLS (implies --tls)")
	cmd.Flags().StringVar(&f.serverName, "server-name", "", "Override the TLS server name")
	cmd.Flags().StringVar(&f.token, "token", os.Getenv("CREDITCTL_TOKEN"), "Bearer token (defaults to $CREDITCTL_TOKEN)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 10*time.Second, "Request timeout")
}

func (f *remoteFlags) call(cmd *cobra.Command, fn func(ctx context.Context, c *grpcPresentation.Client) (any, error)) error {
	var tlsOpts *tlsutil.ClientOptions
	if f.useTLS || f.caFile != "" {
		tlsOpts = &tlsutil.ClientOptions{CAFile: f.caFile, ServerName: f.serverName}
	}
	var extra []grpc.DialOption
	if f.token != "" {
		extra = append(extra, grpc.WithPerRPCCredentials(auth.TokenCredentials{Token: f.token, Secure: tlsOpts != nil}))
	}
	client, err := grpcPresentation.Dial(f.addr, tlsOpts, extra...)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	resp, err := fn(ctx, client)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func obligationCmd() *cobra.Command {
	var flags remoteFlags
	cmd := &cobra.Command{
		Use:   "obligation <id>",
		Short: "Fetch an obligation and its payment ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.call(cmd, func(ctx context.Context, c *grpcPresentation.Client) (any, error) {
				return c.GetObligation(ctx, args[0])
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func dashboardCmd() *cobra.Command {
	var (
		flags     remoteFlags
		recompute bool
	)
	cmd := &cobra.Command{
		Use:   "dashboard <customer-id>",
		Short: "Show a customer's credit portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.call(cmd, func(ctx context.Context, c *grpcPresentation.Client) (any, error) {
				if recompute {
					if _, err := c.CalculateScore(ctx, args[0]); err != nil {
						return nil, fmt.Errorf("recalculate score: %w", err)
					}
				}
				return c.GetDashboard(ctx, args[0])
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&recompute, "rescore", false, "Recalculate the score before reading the dashboard")
	return cmd
}

func scanDueCmd() *cobra.Command {
	var (
		flags remoteFlags
		hours int32
	)
	cmd := &cobra.Command{
		Use:   "scan-due",
		Short: "Trigger a payment-due scan now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.call(cmd, func(ctx context.Context, c *grpcPresentation.Client) (any, error) {
				return c.ScanPaymentsDue(ctx, hours)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().Int32Var(&hours, "window-hours", 0, "Look-ahead window in hours (0 uses the server default)")
	return cmd
}
