package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erdc/erdc/internal/compiler"
	"github.com/erdc/erdc/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a draw.io diagram without emitting DDL",
	Long: `Validate runs the diagram through extraction, relationship resolution,
and the schema validator, reporting any errors without writing output.

Example:
  erdc validate -i diagram.drawio`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	in, openErr := os.Open(cfg.Input)
	if openErr != nil {
		return fmt.Errorf("failed to open input: %w", openErr)
	}
	defer in.Close()

	stage := log.WithStage("validate")
	stage.Info("validating diagram")

	s, checkErr := compiler.Check(context.Background(), in)
	if checkErr != nil {
		fmt.Printf("\n=== Validation Failed ===\n%s\n", checkErr)
		return checkErr
	}

	stage.Infow("validation passed", "tables", len(s.TableNames()))
	fmt.Printf("\n=== Validation Passed ===\n")
	fmt.Printf("Tables: %d\n", len(s.TableNames()))

	return nil
}
