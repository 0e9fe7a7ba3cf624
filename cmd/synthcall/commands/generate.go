package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"synthcall/internal/config"
	"synthcall/internal/generate"
)

var (
	genStart         string
	genEnd           string
	genOut           string
	genSeed          int64
	genOutages       int
	genValidate      bool
	genWorkers       int
	genConfigBase    string
	genConfigOverlay string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the call dataset for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", genStart)
		if err != nil {
			return fmt.Errorf("invalid --start date %q: %w", genStart, err)
		}
		end, err := time.Parse("2006-01-02", genEnd)
		if err != nil {
			return fmt.Errorf("invalid --end date %q: %w", genEnd, err)
		}

		cfg, err := config.Load(genConfigBase, genConfigOverlay)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if cmd.Flags().Changed("outages") {
			cfg.Set("calendar.incidents.outages_count", genOutages)
		}

		opts := generate.Options{
			Start:    start,
			End:      end,
			OutDir:   genOut,
			Seed:     genSeed,
			Validate: genValidate,
			Workers:  genWorkers,
		}

		log.Info().
			Str("start", genStart).
			Str("end", genEnd).
			Str("out", genOut).
			Int64("seed", genSeed).
			Int("workers", opts.Workers).
			Msg("Generation run starting")

		began := time.Now()
		summary, err := generate.Run(cfg, opts)
		if err != nil {
			return err
		}

		log.Info().
			Int("days", summary.Days).
			Int("calls", summary.Calls).
			Int("failedValidations", summary.FailedValidations).
			Int("customers", summary.Customers).
			Dur("elapsed", time.Since(began)).
			Msg("Generation run finished")
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genStart, "start", "2024-01-01", "first day of the range (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genEnd, "end", "2024-01-31", "last day of the range, inclusive (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genOut, "out", "out", "output directory for the dataset")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "global seed for the run")
	generateCmd.Flags().IntVar(&genOutages, "outages", 0, "override the number of outage days in the range")
	generateCmd.Flags().BoolVar(&genValidate, "validate", true, "validate every record against the call schema")
	generateCmd.Flags().IntVar(&genWorkers, "workers", runtime.NumCPU(), "number of days generated concurrently")
	generateCmd.Flags().StringVar(&genConfigBase, "config-base", "config/base.yml", "path to the base configuration")
	generateCmd.Flags().StringVar(&genConfigOverlay, "config-overrides", "config/overrides.yml", "path to the overrides configuration")

	rootCmd.AddCommand(generateCmd)
}
