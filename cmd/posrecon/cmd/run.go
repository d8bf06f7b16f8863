package cmd

import (
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/config"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/errors"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/logging"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/reconciler"
	"github.com/DaveDDH/clave-take-home-sub000/pkg/sources"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var runFlags struct {
	locations   string
	patterns    string
	groups      string
	toast       string
	doordash    string
	square      string
	out         string
	sourceOrder []string
}

// runCmd executes one batch reconciliation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one batch reconciliation over vendor export files",
	Long: `Run loads the three configuration documents and whichever vendor
export files are provided, runs the reconciliation pipeline, and writes
the resulting bundle with its integrity report as JSON.

Integrity warnings are reported but are not fatal; the command fails only
on configuration or input errors.`,
	RunE: runBatch,
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&runFlags.locations, "locations", envDefault("POSRECON_LOCATIONS", "config/locations.yaml"), "location mapping config file")
	flags.StringVar(&runFlags.patterns, "patterns", envDefault("POSRECON_PATTERNS", "config/patterns.yaml"), "variation pattern config file")
	flags.StringVar(&runFlags.groups, "groups", envDefault("POSRECON_GROUPS", "config/groups.yaml"), "product group config file")
	flags.StringVar(&runFlags.toast, "toast", os.Getenv("POSRECON_TOAST"), "Toast export JSON file")
	flags.StringVar(&runFlags.doordash, "doordash", os.Getenv("POSRECON_DOORDASH"), "DoorDash export JSON file")
	flags.StringVar(&runFlags.square, "square", os.Getenv("POSRECON_SQUARE"), "Square export JSON file")
	flags.StringVarP(&runFlags.out, "out", "o", "", "write the result to this file instead of stdout")
	flags.StringSliceVar(&runFlags.sourceOrder, "source-order", nil, "override the source processing order (e.g. square,toast,doordash)")

	rootCmd.AddCommand(runCmd)
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := logging.Default()

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

	inputs, err := loadInputs()
	if err != nil {
		return err
	}

	var opts []reconciler.Option
	if len(runFlags.sourceOrder) > 0 {
		order := make([]catalog.Source, len(runFlags.sourceOrder))
		for i, s := range runFlags.sourceOrder {
			order[i] = catalog.Source(s)
		}
		opts = append(opts, reconciler.WithSourceOrder(order...))
	}

	r, err := reconciler.New(patterns, groups, locations, opts...)
	if err != nil {
		return err
	}

	result, err := r.Reconcile(cmd.Context(), inputs)
	if err != nil {
		return err
	}

	if err := writeResult(result); err != nil {
		return err
	}

	if !result.Integrity.Success {
		logger.Warn().
			Int("warnings", len(result.Integrity.Warnings)).
			Msg("Reconciliation finished with integrity warnings")
	}
	return nil
}

// loadInputs decodes whichever vendor export files were provided. Missing
// flags simply mean the vendor contributed nothing this batch.
func loadInputs() (*sources.Inputs, error) {
	inputs := &sources.Inputs{}

	if runFlags.toast != "" {
		export, err := decodeFile(runFlags.toast, sources.DecodeToast)
		if err != nil {
			return nil, err
		}
		inputs.Toast = export
	}
	if runFlags.doordash != "" {
		export, err := decodeFile(runFlags.doordash, sources.DecodeDoorDash)
		if err != nil {
			return nil, err
		}
		inputs.DoorDash = export
	}
	if runFlags.square != "" {
		export, err := decodeFile(runFlags.square, sources.DecodeSquare)
		if err != nil {
			return nil, err
		}
		inputs.Square = export
	}
	return inputs, nil
}

func decodeFile[T any](path string, decode func(r io.Reader) (*T, error)) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	export, err := decode(f)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return export, nil
}

func writeResult(result *reconciler.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if runFlags.out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(runFlags.out, data, 0o644); err != nil {
		return errors.WrapIO("write", runFlags.out, err)
	}
	return nil
}
