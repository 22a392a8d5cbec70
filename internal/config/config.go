package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/covidetl/internal/record"
)

// Environment variables that override file values.
const (
	EnvBedsData     = "COVIDETL_BEDS_DATA"
	EnvMeasuresData = "COVIDETL_MEASURES_DATA"
	EnvBedsURL      = "COVIDETL_BEDS_URL"
	EnvMeasuresURL  = "COVIDETL_MEASURES_URL"
	EnvExportDir    = "COVIDETL_EXPORT_DIR"
	EnvTopN         = "COVIDETL_TOP_N"
)

// Config holds covidetl configuration loaded from .covidetl.yaml.
type Config struct {
	Beds      Dataset `yaml:"beds"`
	Measures  Dataset `yaml:"measures"`
	ExportDir string  `yaml:"export_dir"`
	TopN      int     `yaml:"top_n"`
	Format    string  `yaml:"format"`
	Submit    Submit  `yaml:"submit"`
}

// Dataset holds the input and endpoint of one dataset.
type Dataset struct {
	Data          string `yaml:"data"`
	Endpoint      string `yaml:"endpoint"`
	SampleRecords int    `yaml:"sample_records"`
}

// Submit controls HTTP submission of results.
type Submit struct {
	Timeout     string `yaml:"timeout"`
	Concurrency int    `yaml:"concurrency"`
	Retries     int    `yaml:"retries"`
}

// TimeoutDuration parses the timeout string as a duration.
func (s Submit) TimeoutDuration() time.Duration {
	if s.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(s.Timeout)
	return d
}

// For returns the section of the given dataset.
func (c Config) For(ds record.Dataset) Dataset {
	switch ds {
	case record.DatasetBeds:
		return c.Beds
	case record.DatasetMeasures:
		return c.Measures
	default:
		return Dataset{}
	}
}

// Load searches for .covidetl.yaml or .covidetl.yml in the given directory
// and returns the parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".covidetl.yaml"),
		filepath.Join(dir, ".covidetl.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}

// LoadEnv reads dir/.env into the process environment without replacing
// variables that are already set. A missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides file values with non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Beds.Data, EnvBedsData)
	set(&c.Measures.Data, EnvMeasuresData)
	set(&c.Beds.Endpoint, EnvBedsURL)
	set(&c.Measures.Endpoint, EnvMeasuresURL)
	set(&c.ExportDir, EnvExportDir)

	if v := getenv(EnvTopN); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid top count %q", EnvTopN, v)
		}
		c.TopN = n
	}
	return nil
}
