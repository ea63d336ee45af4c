package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/model"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
)

func tierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <score>",
		Short: "Show the risk tier and product eligibility for a score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil || score < model.MinScore || score > model.MaxScore {
				return fmt.Errorf("score must be an integer between %d and %d", model.MinScore, model.MaxScore)
			}
			tier := service.NewRiskTierResolver().Resolve(score)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Tier:\t%s (%d-%d)\n", tier.Name(), tier.MinScore(), tier.MaxScore())
			fmt.Fprintf(tw, "Max credit limit:\t%s\n", tier.MaxCreditLimit().StringFixed(2))
			fmt.Fprintf(tw, "Interest ceiling:\t%s%%\n", tier.InterestRateCeiling().Shift(2).String())
			for _, p := range []struct {
				name string
				min  int
			}{
				{"Net terms", service.MinScoreNetTerms},
				{"Working capital", service.MinScoreWorkingCapital},
				{"Revenue-based financing", service.MinScoreRevenueBased},
			} {
				fmt.Fprintf(tw, "%s:\t%s\n", p.name, eligibility(score, p.min))
			}
			return tw.Flush()
		},
	}
}

func eligibility(score, min int) string {
	if score >= min {
		return "eligible"
	}
	return fmt.Sprintf("needs %d", min)
}
