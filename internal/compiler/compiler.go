// Package compiler wires the six pipeline stages together: read diagram XML,
// extract tables, resolve relationships, build the dependency graph,
// validate, and emit DDL. It is the single entrypoint the CLI calls.
package compiler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/erdc/erdc/internal/ddl"
	"github.com/erdc/erdc/internal/extractor"
	"github.com/erdc/erdc/internal/graph"
	"github.com/erdc/erdc/internal/logger"
	"github.com/erdc/erdc/internal/resolver"
	"github.com/erdc/erdc/internal/schema"
	"github.com/erdc/erdc/internal/validator"
	"github.com/erdc/erdc/internal/xmlreader"
)

// Summary reports what the pipeline produced, for logging and the CLI's
// human-readable output.
type Summary struct {
	TableCount      int
	ForeignKeyCount int
	DeferredCount   int
	JunctionCount   int
	Duration        time.Duration
	Tables          []string
}

// Result is the outcome of a full compile: the assembled DDL text plus a
// summary of what went into it.
type Result struct {
	DDL     string
	Summary Summary
}

// Compile runs Reader through Extractor, Resolver, the dependency Analyzer,
// the Validator, and finally the Emitter, in that order. The Validator runs
// after the graph is built and before DDL is emitted, since it needs the
// resolved schema but must catch errors before any output is produced.
func Compile(ctx context.Context, r io.Reader, opts ddl.Options) (*Result, error) {
	start := time.Now()

	cells, order, err := xmlreader.Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading diagram: %w", err)
	}

	s := extractor.Extract(cells, order)
	resolver.Resolve(s, cells, order)

	g, deferred, err := graph.BuildFromSchema(s)
	if err != nil {
		return nil, fmt.Errorf("building dependency graph: %w", err)
	}

	if err := validator.Validate(s); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	out := ddl.Emit(s, g, deferred, opts)

	return &Result{
		DDL:     out,
		Summary: summarize(s, deferred, start),
	}, nil
}

// Check runs everything up to and including the Validator, without
// emitting DDL. Used by the CLI's validate subcommand, and by anything
// that wants the accumulated errors without writing output. It also builds
// the dependency graph so BuildFromSchema's Kahn cross-check runs here too,
// catching any dependency cycle before a compile would ever attempt one.
func Check(ctx context.Context, r io.Reader) (*schema.Schema, error) {
	cells, order, err := xmlreader.Read(r)
	if err != nil {
		return nil, fmt.Errorf("reading diagram: %w", err)
	}

	s := extractor.Extract(cells, order)
	resolver.Resolve(s, cells, order)

	if _, _, err := graph.BuildFromSchema(s); err != nil {
		return s, fmt.Errorf("building dependency graph: %w", err)
	}

	if err := validator.Validate(s); err != nil {
		return s, err
	}

	return s, nil
}

// CompileAndLog runs Compile and writes progress through log, mirroring the
// teacher's per-stage logging around its own orchestration loop.
func CompileAndLog(ctx context.Context, r io.Reader, opts ddl.Options, log *logger.Logger) (*Result, error) {
	stage := log.WithStage("compile")
	stage.Info("reading diagram")

	result, err := Compile(ctx, r, opts)
	if err != nil {
		stage.Errorw("compile failed", "error", err)
		return nil, err
	}

	for _, name := range result.Summary.Tables {
		stage.WithTable(name).Debug("table compiled")
	}

	stage.Infow("compile finished",
		"tables", result.Summary.TableCount,
		"foreign_keys", result.Summary.ForeignKeyCount,
		"deferred", result.Summary.DeferredCount,
		"junctions", result.Summary.JunctionCount,
		"duration", result.Summary.Duration,
	)

	return result, nil
}

func summarize(s *schema.Schema, deferred []graph.DeferredFK, start time.Time) Summary {
	var fkCount, junctionCount int
	for _, t := range s.AllTables() {
		fkCount += len(t.FKs)
		if t.IsJunction {
			junctionCount++
		}
	}

	return Summary{
		TableCount:      len(s.TableNames()),
		ForeignKeyCount: fkCount,
		DeferredCount:   len(deferred),
		JunctionCount:   junctionCount,
		Duration:        time.Since(start),
		Tables:          s.TableNames(),
	}
}
