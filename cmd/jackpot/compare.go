package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the same jackpot across states",
	Long: `Evaluate one jackpot in a base state and compare the lump sum and annuity
net payouts of other states against it.

Examples:
  jackpot compare --jackpot 1B --cash 52 --state NY --with CA,NJ,FL
  jackpot compare -j 750M -c 48 -s TX --format csv
  jackpot compare -j 1B -c 52 -s NY --compact`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		in, err := inputFromFlags(cmd)
		if err != nil {
			return err
		}

		withStr, _ := cmd.Flags().GetString("with")
		var states []string
		for _, code := range strings.Split(withStr, ",") {
			if code = strings.TrimSpace(code); code != "" {
				states = append(states, code)
			}
		}

		compSet, err := compare.NewCompareEngine(engine).CompareStates(cmd.Context(), compare.CompareOptions{
			AdvertisedJackpot: in.AdvertisedJackpot,
			CashValuePercent:  in.CashValuePercent,
			FilingStatus:      in.FilingStatus,
			BaseState:         in.StateCode,
			States:            states,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if compact, _ := cmd.Flags().GetBool("compact"); compact {
			fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			return nil
		}

		format, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(format) {
		case "csv":
			s, err := (&compare.CSVFormatter{}).Format(compSet)
			if err != nil {
				return err
			}
			fmt.Fprint(out, s)
		case "json":
			s, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
		case "table", "console", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
		default:
			return fmt.Errorf("unknown format %q (available: table, csv, json)", format)
		}
		return nil
	},
}

func init() {
	addInputFlags(compareCmd)
	compareCmd.Flags().String("with", "", "Comma-separated state codes to compare (default: every lottery state)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().Bool("compact", false, "Print a one-line summary of lump sum differences")

	rootCmd.AddCommand(compareCmd)
}
