// Package services orchestrates the extraction pipeline:
// scan archives, extract matches, convert shapefiles, assemble the script.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rskelly/canvec/pkg/canvec"
)

// Pipeline runs one extraction end to end. Strictly sequential: the
// converter invocation dominates the cost and is single-process per call,
// so there is nothing to gain from parallelism.
//
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
// Create separate instances for concurrent runs.
type Pipeline struct {
	scanner   canvec.ArchiveScanner
	extractor canvec.Extractor
	invoker   canvec.ConverterInvoker
	assembler canvec.ScriptAssembler
	logger    canvec.Logger
}

// NewPipeline creates a Pipeline with all dependencies injected.
//
// Panics on nil dependencies: those are programmer errors that should fail
// loudly at startup, not surface as nil dereferences mid-run. Runtime
// conditions (bad config, unreadable archives, tool failures) are returned
// as errors from Run.
func NewPipeline(
	scanner canvec.ArchiveScanner,
	extractor canvec.Extractor,
	invoker canvec.ConverterInvoker,
	assembler canvec.ScriptAssembler,
	logger canvec.Logger,
) *Pipeline {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if extractor == nil {
		panic("extractor cannot be nil")
	}
	if invoker == nil {
		panic("invoker cannot be nil")
	}
	if assembler == nil {
		panic("assembler cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Pipeline{
		scanner:   scanner,
		extractor: extractor,
		invoker:   invoker,
		assembler: assembler,
		logger:    logger,
	}
}

// Run executes the pipeline with the provided configuration and returns
// the run summary.
//
// Error contract (asymmetric on purpose):
//   - Per-entry failures (unreadable archive, failed extraction) are
//     recovered: the entry is skipped with a reason, the run continues.
//   - Tool-level failures (converter missing or exiting non-zero) abort
//     the run; a partial script that loads silently incomplete data is
//     worse than no script.
//
// A token that matches nothing is a warning, not an error: the output
// file is written with its header only and Run returns nil.
func (p *Pipeline) Run(ctx context.Context, config canvec.Config) (canvec.Summary, error) {
	var summary canvec.Summary

	if err := config.Validate(); err != nil {
		return summary, err
	}

	// Probe for the converter before the output file is touched, so a
	// missing tool aborts with nothing written.
	if err := p.invoker.CheckAvailable(); err != nil {
		return summary, err
	}

	scan, err := p.scanner.Scan(ctx, config.ArchiveRoot, config.SearchToken)
	if err != nil {
		return summary, err
	}
	summary.ArchivesScanned = scan.ArchivesScanned
	summary.ArchivesSkipped = scan.ArchivesSkipped
	summary.EntriesMatched = len(scan.Entries)
	p.logger.Info("scanned %d archive(s), %d entries match %q",
		scan.ArchivesScanned, len(scan.Entries), config.SearchToken)

	scratchDir, cleanup, err := p.prepareScratch(config)
	if err != nil {
		return summary, err
	}
	defer cleanup()

	if err := p.assembler.Begin(config.OutputPath, config.SearchToken); err != nil {
		return summary, err
	}
	defer p.assembler.Close()

	if len(scan.Entries) == 0 {
		p.logger.Warn("no entries matched %q; wrote header-only script to %s",
			config.SearchToken, config.OutputPath)
		return summary, p.assembler.Close()
	}

	shapefiles := p.extractAll(scan.Entries, scratchDir, &summary)

	mode := canvec.ModeCreate
	for _, shpPath := range shapefiles {
		fragment, err := p.invoker.Convert(ctx, shpPath, mode)
		if err != nil {
			return summary, err
		}
		if err := p.assembler.Append(fragment); err != nil {
			return summary, err
		}
		summary.ShapefilesConverted++
		mode = canvec.ModeAppend
	}

	if err := p.assembler.Close(); err != nil {
		return summary, err
	}

	p.logger.Verbose("wrote %d fragment(s) to %s", p.assembler.Fragments(), config.OutputPath)
	return summary, nil
}

// extractAll extracts every matched entry (shapefiles and their sidecars)
// and returns the extracted shapefile paths in discovery order. Failed
// entries are recorded as skips and do not stop the run.
func (p *Pipeline) extractAll(entries []canvec.Entry, scratchDir string, summary *canvec.Summary) []string {
	var shapefiles []string
	for _, entry := range entries {
		extracted, err := p.extractor.Extract(entry, scratchDir)
		if err != nil {
			summary.EntriesSkipped++
			summary.Skips = append(summary.Skips, canvec.SkipReason{Entry: entry, Reason: err})
			p.logger.Warn("skipping %s!%s: %v", entry.ArchivePath, entry.Name, err)
			continue
		}
		summary.EntriesExtracted++

		if strings.EqualFold(filepath.Ext(entry.Name), canvec.ShapefileExtension) {
			shapefiles = append(shapefiles, extracted)
		}
	}
	return shapefiles
}

// prepareScratch resolves the scratch directory for this run.
//
// With no configured directory, a unique one is created under the system
// temp location and removed afterwards unless KeepScratch is set. A
// user-configured directory is created if missing and never removed; the
// user owns it.
func (p *Pipeline) prepareScratch(config canvec.Config) (string, func(), error) {
	if config.ScratchDir != "" {
		if err := os.MkdirAll(config.ScratchDir, 0o755); err != nil {
			return "", nil, fmt.Errorf("failed to create scratch directory %s: %w", config.ScratchDir, err)
		}
		return config.ScratchDir, func() {}, nil
	}

	dir := filepath.Join(os.TempDir(), "canvec-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	p.logger.Verbose("scratch directory: %s", dir)

	cleanup := func() {
		if config.KeepScratch {
			p.logger.Info("keeping scratch directory %s", dir)
			return
		}
		if err := os.RemoveAll(dir); err != nil {
			p.logger.Warn("failed to remove scratch directory %s: %v", dir, err)
		}
	}
	return dir, cleanup, nil
}
