package main

import (
	"fmt"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/output"
	"github.com/spf13/cobra"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep the cash-value percentage and show its effect on the breakeven rate",
	Long: `Sweep the cash-value percentage and show how the lump sum net and the
breakeven rate respond. The annuity side does not depend on the cash value.

Examples:
  jackpot sensitivity --jackpot 1B --state CA
  jackpot sensitivity -j 1B -s NY --min 45 --max 60 --steps 16 --output csv`,
	Args: cobra.NoArgs,
	RunE: runSensitivityAnalysis,
}

var (
	sensitivityMin          string
	sensitivityMax          string
	sensitivitySteps        int
	sensitivityOutputFormat string
)

func init() {
	defaults := calculation.DefaultSensitivityRange()

	sensitivityCmd.Flags().StringP("jackpot", "j", "", "Advertised jackpot (required)")
	sensitivityCmd.Flags().StringP("state", "s", settings.State, "Two-letter state code")
	sensitivityCmd.Flags().String("status", settings.FilingStatus, "Filing status (single, mfj, mfs, hoh)")
	sensitivityCmd.Flags().StringVar(&sensitivityMin, "min", defaults.MinPercent.String(), "Lowest cash-value percentage")
	sensitivityCmd.Flags().StringVar(&sensitivityMax, "max", defaults.MaxPercent.String(), "Highest cash-value percentage")
	sensitivityCmd.Flags().IntVar(&sensitivitySteps, "steps", defaults.Steps, "Number of points in the sweep")
	sensitivityCmd.Flags().StringVar(&sensitivityOutputFormat, "output", "table", "Output format (table, csv, json)")
	_ = sensitivityCmd.MarkFlagRequired("jackpot")

	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	engine, _, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	jackpotStr, _ := cmd.Flags().GetString("jackpot")
	state, _ := cmd.Flags().GetString("state")
	status, _ := cmd.Flags().GetString("status")

	jackpot, err := config.ParseAmount(jackpotStr)
	if err != nil {
		return err
	}
	minPct, err := config.ParsePercent(sensitivityMin)
	if err != nil {
		return err
	}
	maxPct, err := config.ParsePercent(sensitivityMax)
	if err != nil {
		return err
	}
	if maxPct.LessThan(minPct) {
		return fmt.Errorf("--max %s is below --min %s", maxPct, minPct)
	}
	if sensitivitySteps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	points, err := engine.CashValueSensitivity(cmd.Context(), domain.Input{
		AdvertisedJackpot: jackpot,
		StateCode:         state,
		FilingStatus:      domain.FilingStatus(status),
	}, calculation.SensitivityRange{MinPercent: minPct, MaxPercent: maxPct, Steps: sensitivitySteps})
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	s, err := output.NewSensitivityFormatter(sensitivityOutputFormat).FormatSensitivity(points)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}
