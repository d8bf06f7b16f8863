// Package cmd implements the posrecon command tree.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/logging"
)

var (
	flagJSONLogs bool
	flagVerbose  bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "posrecon",
	Short: "Reconcile POS and marketplace exports into a canonical catalog",
	Long: `posrecon ingests Toast, DoorDash, and Square exports, resolves the
menu items they describe into canonical products, normalizes orders and
payments into a single relational shape, and reports whether the produced
data reconciles with the source feeds.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Env files are optional; flags and real env always win.
		_ = godotenv.Load()

		if flagJSONLogs {
			logging.SetDefault(logging.NewJSON(cmd.ErrOrStderr()))
		} else {
			logging.SetDefault(logging.NewConsole())
		}
		if flagVerbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "emit logs as JSON instead of console output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the command tree. Errors are logged here so main stays
// trivial.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logging.Err(err).Msg("Command failed")
		return err
	}
	return nil
}
