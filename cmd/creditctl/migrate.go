package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pgRepo "github.com/aurasystemsai/aura-core-monolith-sub005/internal/infrastructure/persistence/postgres"
	pkgpostgres "github.com/aurasystemsai/aura-core-monolith-sub005/pkg/postgres"
)

func migrateCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the credit schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "up":
				if err := pkgpostgres.RunMigrations(dsn, pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
					return err
				}
			case "down":
				if err := pkgpostgres.RunMigrationsDown(dsn, pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown direction %q, want up or down", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: done\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "postgres:// connection URL")
	_ = cmd.MarkFlagRequired("dsn")
	return cmd
}
