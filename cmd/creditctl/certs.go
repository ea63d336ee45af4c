package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurasystemsai/aura-core-monolith-sub005/pkg/tlsutil"
)

func certsCmd() *cobra.Command {
	var (
		hosts    []string
		outDir   string
		validFor time.Duration
	)
	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Generate a development CA and gRPC server certificate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			certs, err := tlsutil.GenerateDevCertificates(hosts, outDir, validFor)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "GRPC_TLS_CERT_FILE=%s\n", certs.ServerCert)
			fmt.Fprintf(out, "GRPC_TLS_KEY_FILE=%s\n", certs.ServerKey)
			fmt.Fprintf(out, "# clients: creditctl --ca %s\n", certs.CACert)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "DNS names and IPs for the server certificate")
	cmd.Flags().StringVar(&outDir, "out", "certs", "Output directory")
	cmd.Flags().DurationVar(&validFor, "valid-for", 90*24*time.Hour, "Certificate lifetime")
	return cmd
}
