package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/config"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/match"
)

// validateCmd checks the configuration documents without running a batch.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate and compile the configuration documents",
	Long: `Validate loads the location mapping, variation patterns, and product
groups, and compiles every regex and group rule. It fails on the first
violation with the offending field path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		locations, err := config.LoadLocations(runFlags.locations)
		if err != nil {
			return err
		}
		patterns, err := config.LoadPatterns(runFlags.patterns)
		if err != nil {
			return err
		}
		groups, err := config.LoadGroups(runFlags.groups)
		if err != nil {
			return err
		}

		if _, err := match.CompilePatterns(patterns); err != nil {
			return err
		}
		if _, err := match.CompileGroups(groups); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d locations, %d patterns, %d groups\n",
			len(locations.Locations), len(patterns.Patterns), len(groups.Groups))
		return nil
	},
}

func init() {
	flags := validateCmd.Flags()
	flags.StringVar(&runFlags.locations, "locations", envDefault("POSRECON_LOCATIONS", "config/locations.yaml"), "location mapping config file")
	flags.StringVar(&runFlags.patterns, "patterns", envDefault("POSRECON_PATTERNS", "config/patterns.yaml"), "variation pattern config file")
	flags.StringVar(&runFlags.groups, "groups", envDefault("POSRECON_GROUPS", "config/groups.yaml"), "product group config file")

	rootCmd.AddCommand(validateCmd)
}
