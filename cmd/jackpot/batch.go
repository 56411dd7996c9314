package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/output"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [scenario-file]",
	Short: "Evaluate every scenario in a YAML file",
	Long: `Evaluate every scenario in a YAML file and print a summary.

The file lists named inputs and may pick a product preset:

  product: powerball
  scenarios:
    - name: California single
      advertised_jackpot: 1000000000
      cash_value_percent: 52
      state: CA
      filing_status: single`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := loadEngine(cmd)
		if err != nil {
			return err
		}

		file, err := config.NewInputParser(&cfg.TaxTables).LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if file.Product != "" && !cmd.Flags().Changed("product") {
			assumptions, err := domain.ProductAssumptions(cfg.Products, file.Product)
			if err != nil {
				return err
			}
			if engine, err = engine.WithAssumptions(assumptions); err != nil {
				return err
			}
		}

		type namedReport struct {
			Name string `json:"name"`
			output.Report
		}
		reports := make([]namedReport, 0, len(file.Scenarios))
		for _, sc := range file.Scenarios {
			eval, err := engine.Evaluate(cmd.Context(), sc.Input)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			reports = append(reports, namedReport{Name: sc.Name, Report: output.NewReport(eval)})
		}

		out := cmd.OutOrStdout()
		format, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(format) {
		case "json":
			data, err := json.MarshalIndent(reports, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		case "table", "console", "":
			fmt.Fprintf(out, "%-28s %-5s %-16s %16s %16s %10s\n", "Scenario", "State", "Status", "Lump Sum Net", "Annuity Net", "Breakeven")
			fmt.Fprintln(out, strings.Repeat("-", 96))
			for _, r := range reports {
				fmt.Fprintf(out, "%-28s %-5s %-16s %16s %16s %10s\n",
					truncate(r.Name, 28),
					r.Input.StateCode,
					truncate(r.Input.FilingStatus.Label(), 16),
					output.FormatCurrency(r.LumpSum.NetAmount),
					output.FormatCurrency(r.Annuity.TotalNetPayments),
					output.FormatPercentage(r.BreakevenRate))
			}
		default:
			return fmt.Errorf("unknown format %q (available: table, json)", format)
		}
		return nil
	},
}

// truncate shortens s to maxLen runes, ending in "..." when cut
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func init() {
	batchCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	rootCmd.AddCommand(batchCmd)
}
