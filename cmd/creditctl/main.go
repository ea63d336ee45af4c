// Command creditctl is the operator CLI for the Aura credit service: offline
// scoring, tier lookup, remote queries, event tailing, migrations, dev
// certificates and access tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "creditctl",
		Short:         "creditctl - operate the Aura credit service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(tierCmd())
	rootCmd.AddCommand(obligationCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(scanDueCmd())
	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(certsCmd())
	rootCmd.AddCommand(tokenCmd())

	return rootCmd
}
