package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and environment files",
	Long:  `Creates a sample .covidetl.yaml config file and a .env.example file listing the supported environment overrides.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".covidetl.yaml"
	envPath := ".env.example"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(envPath, sampleEnv, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, envPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Put hospital_beds.csv and measures.csv under ./data or edit the paths in .covidetl.yaml")
	fmt.Println("  2. Copy .env.example to .env to override settings per machine")
	fmt.Println("  3. Run: covidetl  (menu)  OR  covidetl beds --filter 2")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# covidetl configuration

beds:
  # Input dataset (.csv or .xlsx)
  data: data/hospital_beds.csv
  # API endpoint used when posting results
  endpoint: https://api-covid-pi.now.sh/bed
  # Rows processed with --sample
  sample_records: 24

measures:
  data: data/measures.csv
  endpoint: https://jsonplaceholder.typicode.com/posts
  sample_records: 30

# Root directory for exported JSON files
export_dir: export

# Countries kept by top and bottom filters
top_n: 10

# Output format: text or json
format: text

submit:
  # Per-request timeout
  timeout: 30s
  # Parallel requests
  concurrency: 4
  # Retries for transport errors (0 disables retrying)
  retries: 0
`

const sampleEnv = `# Environment overrides for covidetl. Copy to .env to use.
# COVIDETL_BEDS_DATA=data/hospital_beds.csv
# COVIDETL_MEASURES_DATA=data/measures.csv
# COVIDETL_BEDS_URL=https://api-covid-pi.now.sh/bed
# COVIDETL_MEASURES_URL=https://jsonplaceholder.typicode.com/posts
# COVIDETL_EXPORT_DIR=export
# COVIDETL_TOP_N=10
# COVIDETL_LOG_FORMAT=json
# COVIDETL_LOG_LEVEL=info
`
