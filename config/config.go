// Package config loads reconcile settings from defaults, an optional YAML
// file, a .env file and RECONCILE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/reconcile/contributor"
	"github.com/lehigh-university-libraries/reconcile/format/bibtex"
	"github.com/lehigh-university-libraries/reconcile/importer"
	"github.com/lehigh-university-libraries/reconcile/urlresolve"
)

// EnvPrefix is prepended to every environment variable, e.g.
// RECONCILE_RESOLVER_DOCS_DIR for resolver.docs_dir.
const EnvPrefix = "RECONCILE"

// Config holds every setting of the CLI.
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	Repair   RepairConfig   `mapstructure:"repair"`
	Match    MatchConfig    `mapstructure:"match"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Import   ImportConfig   `mapstructure:"import"`
	Registry RegistryConfig `mapstructure:"registry"`
}

// RepairConfig configures record repair.
type RepairConfig struct {
	NoiseMarkers []string `mapstructure:"noise_markers"`
}

// MatchConfig configures contributor matching.
type MatchConfig struct {
	Threshold   int    `mapstructure:"threshold"`
	AuthorField string `mapstructure:"author_field"`
}

// ResolverConfig configures URL canonicalization.
type ResolverConfig struct {
	Host      string   `mapstructure:"host"`
	DocsDir   string   `mapstructure:"docs_dir"`
	Subdirs   []string `mapstructure:"subdirs"`
	IndexFile string   `mapstructure:"index_file"`
	Workers   int      `mapstructure:"workers"`
}

// ImportConfig configures the import pipeline.
type ImportConfig struct {
	URLFields []string `mapstructure:"url_fields"`
	Workers   int      `mapstructure:"workers"`
}

// RegistryConfig selects the contributor registry. An empty File uses the
// embedded registry.
type RegistryConfig struct {
	File string `mapstructure:"file"`
}

// Load reads configuration. When path is empty, reconcile.yaml is looked up
// in the working directory and in ~/.reconcile/config.yaml; neither has to
// exist. An explicit path must be readable.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}

	// LOG_LEVEL is honored without the prefix.
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" && os.Getenv(EnvPrefix+"_LOG_LEVEL") == "" {
		v.Set("log_level", lvl)
	}

	// Noise markers end in commas, so the environment form is one marker
	// per line instead of viper's comma split.
	if raw := os.Getenv(EnvPrefix + "_REPAIR_NOISE_MARKERS"); raw != "" {
		v.Set("repair.noise_markers", splitLines(raw))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")
	v.SetDefault("repair.noise_markers", bibtex.DefaultNoiseMarkers)
	v.SetDefault("match.threshold", contributor.DefaultThreshold)
	v.SetDefault("match.author_field", importer.DefaultAuthorField)
	v.SetDefault("resolver.host", urlresolve.DefaultHost)
	v.SetDefault("resolver.docs_dir", "")
	v.SetDefault("resolver.subdirs", urlresolve.DefaultSubdirs)
	v.SetDefault("resolver.index_file", "Edmond.xml")
	v.SetDefault("resolver.workers", 0)
	v.SetDefault("import.url_fields", importer.DefaultURLFields)
	v.SetDefault("import.workers", 0)
	v.SetDefault("registry.file", "")
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("reconcile")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".reconcile"))
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Match.Threshold < 0 || c.Match.Threshold > 100 {
		return fmt.Errorf("match.threshold must be between 0 and 100, got %d", c.Match.Threshold)
	}
	for i, marker := range c.Repair.NoiseMarkers {
		if marker == "" {
			return fmt.Errorf("repair.noise_markers[%d] must not be empty", i)
		}
	}
	if c.Resolver.Workers < 0 {
		return fmt.Errorf("resolver.workers must not be negative, got %d", c.Resolver.Workers)
	}
	if c.Import.Workers < 0 {
		return fmt.Errorf("import.workers must not be negative, got %d", c.Import.Workers)
	}
	return nil
}

// ResolverOptions converts the resolver settings for urlresolve.Load.
func (c *Config) ResolverOptions() urlresolve.Options {
	return urlresolve.Options{
		Host:      c.Resolver.Host,
		DocsDir:   c.Resolver.DocsDir,
		Subdirs:   c.Resolver.Subdirs,
		IndexFile: c.Resolver.IndexFile,
		Workers:   c.Resolver.Workers,
	}
}

// LoadRegistry returns the configured contributor registry.
func (c *Config) LoadRegistry() (*contributor.Registry, error) {
	if c.Registry.File == "" {
		return contributor.DefaultRegistry()
	}
	return contributor.LoadRegistry(c.Registry.File)
}
