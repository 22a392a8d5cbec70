package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ppiankov/covidetl/internal/filter"
	"github.com/ppiankov/covidetl/internal/logging"
	"github.com/ppiankov/covidetl/internal/record"
)

const toolName = "covidetl"

var (
	verbose bool
	version string
	commit  string
	date    string
)

var rootCmd = &cobra.Command{
	Use:   "covidetl [dataset filter [post]]",
	Short: "covidetl: COVID-19 bed capacity and measures aggregation",
	Long: `covidetl aggregates the hospital bed capacity and the pandemic measures
datasets by country, writes the results as JSON documents and can post them
to a remote API.

Without arguments an interactive menu is shown. With arguments the run is
non-interactive: covidetl <index of dataset> <index of filter> [post]`,
	Args: cobra.MaximumNArgs(3),
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(verbose)
	},
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.AddCommand(bedsCmd)
	rootCmd.AddCommand(measuresCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return runMenu(cmd, nil)
	case 1:
		return fmt.Errorf("not enough arguments. Usage: %s <index of dataset> <index of filter> [post]", toolName)
	}

	ds, err := parseDatasetOption(args[0])
	if err != nil {
		return err
	}
	f := runFlags{filter: args[1], topN: filter.DefaultTopN, format: defaultFormat}
	if len(args) == 3 {
		f.post = args[2] == "post"
	}
	if _, err := strconv.Atoi(f.filter); err != nil {
		return errOnlyNumbers
	}
	return runDataset(cmd, ds, f)
}

func parseDatasetOption(v string) (record.Dataset, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return "", errOnlyNumbers
	}
	if n < 1 || n > len(record.Datasets) {
		return "", errInvalidOption
	}
	return record.Datasets[n-1], nil
}
