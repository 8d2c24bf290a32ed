package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erdc/erdc/internal/compiler"
	"github.com/erdc/erdc/internal/config"
	"github.com/erdc/erdc/internal/logger"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a draw.io diagram into a relational DDL script",
	Long: `Compile runs the full pipeline: reads the diagram, extracts tables,
resolves relationships, builds the dependency graph, validates the
result, and writes the generated DDL.

Example:
  erdc compile -i diagram.drawio -o schema.sql`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		return fmt.Errorf("output path is required (-o/--output)")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	result, err := compiler.CompileAndLog(context.Background(), in, cfg.Emit, log)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	if err := os.WriteFile(cfg.Output, []byte(result.DDL), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Printf("\n=== Compile Complete ===\n")
	fmt.Printf("Tables: %d\n", result.Summary.TableCount)
	fmt.Printf("Foreign keys: %d (%d deferred)\n", result.Summary.ForeignKeyCount, result.Summary.DeferredCount)
	fmt.Printf("Junction tables: %d\n", result.Summary.JunctionCount)
	fmt.Printf("Duration: %s\n", result.Summary.Duration)
	fmt.Printf("Output written to: %s\n", cfg.Output)

	return nil
}

// loadEffectiveConfig loads the optional config file (if given), falling
// back to defaults, then applies CLI flag overrides and input/output paths.
func loadEffectiveConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if GetConfigFile() != "" {
		cfg, err = config.Load(GetConfigFile())
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.DefaultVarcharLength)

	if inputPath != "" {
		cfg.Input = inputPath
	}
	if outputPath != "" {
		cfg.Output = outputPath
	}

	return cfg, nil
}
