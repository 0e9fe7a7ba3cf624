package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"synthcall/internal/logging"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "synthcall",
	Short: "Synthcall generates deterministic synthetic call-center datasets",
	Long: `Synthcall produces a reproducible synthetic dataset of retail-banking
call-center interactions. Every random decision is derived from the global
seed and the decision's position in the dataset, so the same seed and
configuration always yield byte-identical output.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Synthcall starting")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
