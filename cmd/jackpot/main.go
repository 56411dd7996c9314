package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings holds the .env / JACKPOT_* defaults used for flag defaults
var settings = config.LoadSettings(".env")

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jackpot %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "jackpot",
	Short: "Lottery lump sum vs. annuity calculator",
	Long: `Compare the after-tax value of taking a lottery jackpot as a lump sum
against the 30-year graduated annuity, and find the annual return the lump
sum must earn to match the annuity.`,
	SilenceUsage: true,
}

// loadEngine builds an engine from the --tax-tables and --product flags
func loadEngine(cmd *cobra.Command) (*calculation.Engine, *domain.RegulatoryConfig, error) {
	tablesPath, _ := cmd.Flags().GetString("tax-tables")
	product, _ := cmd.Flags().GetString("product")
	debugMode, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.LoadRegulatoryConfigOrDefault(tablesPath)
	if err != nil {
		return nil, nil, err
	}
	engine, err := calculation.NewEngineForProduct(cfg, product)
	if err != nil {
		return nil, nil, err
	}
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Logger.Debugf("tax year %d, product %s", cfg.Metadata.TaxYear, product)
	}
	return engine, cfg, nil
}

// inputFromFlags reads the jackpot flags shared by calculate and schedule
func inputFromFlags(cmd *cobra.Command) (domain.Input, error) {
	jackpotStr, _ := cmd.Flags().GetString("jackpot")
	cashStr, _ := cmd.Flags().GetString("cash")
	state, _ := cmd.Flags().GetString("state")
	status, _ := cmd.Flags().GetString("status")

	jackpot, err := config.ParseAmount(jackpotStr)
	if err != nil {
		return domain.Input{}, err
	}
	cash, err := config.ParsePercent(cashStr)
	if err != nil {
		return domain.Input{}, err
	}
	in := domain.Input{
		AdvertisedJackpot: jackpot,
		CashValuePercent:  cash,
		StateCode:         state,
		FilingStatus:      domain.FilingStatus(status),
	}
	return in, config.NewInputParser(nil).ValidateInput(&in)
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("jackpot", "j", "", "Advertised jackpot, e.g. 1500000000, $1.5B or 750M (required)")
	cmd.Flags().StringP("cash", "c", "", "Cash value as a percentage of the advertised jackpot, e.g. 52 (required)")
	cmd.Flags().StringP("state", "s", settings.State, "Two-letter state code")
	cmd.Flags().String("status", settings.FilingStatus, "Filing status (single, mfj, mfs, hoh)")
	_ = cmd.MarkFlagRequired("jackpot")
	_ = cmd.MarkFlagRequired("cash")
}

// writeReport prints an evaluation, or saves it when --output-dir is set
func writeReport(cmd *cobra.Command, eval *domain.Evaluation, format string) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %v)", format, output.AvailableFormatterNames())
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	if outDir != "" {
		path, err := output.WriteFormatted(f, eval, outDir)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return nil
	}

	data, err := f.Format(eval)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compare lump sum and annuity payouts for one jackpot",
	Long: `Compare lump sum and annuity payouts for one jackpot.

Examples:
  jackpot calculate --jackpot 1B --cash 52 --state CA
  jackpot calculate -j '$750M' -c 48.5 -s NY --status mfj --format json
  jackpot calculate -j 1.2B -c 50 -s NJ --format html --output-dir reports`,
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
		eval, err := engine.Evaluate(cmd.Context(), in)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return writeReport(cmd, eval, format)
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the year-by-year annuity payment schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		in, err := inputFromFlags(cmd)
		if err != nil {
			return err
		}
		eval, err := engine.Evaluate(cmd.Context(), in)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		if output.NormalizeFormatName(format) == "console" {
			format = "console-schedule"
		}
		return writeReport(cmd, eval, format)
	},
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List states that sell lottery tickets and their tax rates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output.FormatStates(cfg.LotteryStates()))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [scenario-file]",
	Short: "Validate a tax table file or a batch scenario file",
	Long: `Validate a batch scenario file against the active tax tables. With no
argument, only the tax tables (--tax-tables or the built-in set) are checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadEngine(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Tax tables for %d are valid (%d states)\n", cfg.Metadata.TaxYear, len(cfg.States))
			return nil
		}

		file, err := config.NewInputParser(&cfg.TaxTables).LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d scenarios)\n", args[0], len(file.Scenarios))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("tax-tables", settings.TaxTablesPath, "Path to a tax table YAML file (default: built-in tables)")
	rootCmd.PersistentFlags().String("product", settings.Product, "Lottery product preset (powerball, megamillions)")
	rootCmd.PersistentFlags().Bool("debug", settings.Debug, "Enable debug logging")

	addInputFlags(calculateCmd)
	calculateCmd.Flags().StringP("format", "f", "console", fmt.Sprintf("Output format %v", output.AvailableFormatterNames()))
	calculateCmd.Flags().String("output-dir", "", "Write the report to a file in this directory instead of stdout")

	addInputFlags(scheduleCmd)
	scheduleCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, markdown, html)")
	scheduleCmd.Flags().String("output-dir", "", "Write the report to a file in this directory instead of stdout")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
