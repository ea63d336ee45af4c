package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/service"
	"github.com/aurasystemsai/aura-core-monolith-sub005/internal/domain/valueobject"
)

func scoreCmd() *cobra.Command {
	var (
		input  string
		asOf   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a behavioural profile offline",
		Long: `Compute an Aura Score from a YAML or JSON behavioural profile without
touching the service. The profile uses the same fields the CDP returns:
revenue_history, transactions, retention_rate, ltv, cac, account_created_at.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := loadProfile(input)
			if err != nil {
				return err
			}
			at := time.Now().UTC()
			if asOf != "" {
				if at, err = time.Parse(time.DateOnly, asOf); err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
			}

			resolver := service.NewRiskTierResolver()
			breakdown := service.NewScoreCalculator(resolver).Compute(profile, at)
			tier := resolver.Resolve(breakdown.Score)

			out := cmd.OutOrStdout()
			if asJSON {
				type factor struct {
					Name   string `json:"name"`
					Score  int    `json:"score"`
					Weight string `json:"weight"`
					Grade  string `json:"grade"`
				}
				report := struct {
					Score          int      `json:"score"`
					Rating         string   `json:"rating"`
					RiskTier       string   `json:"risk_tier"`
					MaxCreditLimit string   `json:"max_credit_limit"`
					Factors        []factor `json:"factors"`
				}{
					Score:          breakdown.Score,
					Rating:         valueobject.RatingForScore(breakdown.Score).String(),
					RiskTier:       tier.Name(),
					MaxCreditLimit: tier.MaxCreditLimit().StringFixed(2),
				}
				for _, f := range breakdown.Factors {
					report.Factors = append(report.Factors, factor{f.Name, f.Score, f.Weight.String(), f.Grade.String()})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "Aura Score: %d (%s)\n", breakdown.Score, valueobject.RatingForScore(breakdown.Score))
			fmt.Fprintf(out, "Risk tier:  %s, limit %s\n\n", tier.Name(), tier.MaxCreditLimit().StringFixed(2))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FACTOR\tSCORE\tWEIGHT\tGRADE")
			for _, f := range breakdown.Factors {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f.Name, f.Score, f.Weight.String(), f.Grade)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Profile file (.yaml, .yml or .json)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Evaluation date (YYYY-MM-DD), defaults to today")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func loadProfile(path string) (valueobject.BehavioralInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return valueobject.BehavioralInput{}, fmt.Errorf("read profile: %w", err)
	}
	var profile valueobject.BehavioralInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &profile)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &profile)
	default:
		return profile, fmt.Errorf("unsupported profile format %q", filepath.Ext(path))
	}
	if err != nil {
		return profile, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return profile, nil
}
