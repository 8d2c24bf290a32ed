package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time).
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values.
var (
	cfgFile              string
	inputPath            string
	outputPath           string
	logLevel             string
	logFormat            string
	defaultVarcharLength int
)

var rootCmd = &cobra.Command{
	Use:   "erdc",
	Short: "ER-diagram-to-relational-DDL compiler",
	Long: `erdc reads a draw.io entity-relationship diagram and compiles it into
a standalone relational DDL script.

Features:
  - Table and field extraction from draw.io table shapes
  - Cardinality-aware foreign key resolution, including many-to-many
    junction table synthesis
  - Dependency-ordered CREATE/DROP statements with cycle-safe deferred
    foreign keys
  - Pre-emission schema validation`,
	Version: Version,
	RunE:    runCompile,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to optional YAML configuration file")

	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "",
		"Path to the input draw.io diagram (required)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "",
		"Path to write the generated DDL (required for compile)")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
	rootCmd.PersistentFlags().IntVar(&defaultVarcharLength, "default-varchar-length", 0,
		"Override the VARCHAR fallback length used for fields with no declared type")
}

// GetConfigFile returns the config file path.
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings.
type CLIOverrides struct {
	LogLevel             string
	LogFormat            string
	DefaultVarcharLength int
}

// GetCLIOverrides returns the CLI flag override values.
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:             logLevel,
		LogFormat:            logFormat,
		DefaultVarcharLength: defaultVarcharLength,
	}
}
