package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rskelly/canvec/internal/archive"
	"github.com/rskelly/canvec/internal/checksum"
	"github.com/rskelly/canvec/internal/config"
	"github.com/rskelly/canvec/internal/converter"
	"github.com/rskelly/canvec/internal/logging"
	"github.com/rskelly/canvec/internal/script"
	"github.com/rskelly/canvec/internal/services"
	"github.com/rskelly/canvec/internal/ui"
	"github.com/rskelly/canvec/pkg/canvec"
)

// Environment variable names recognized for run defaults.
// Precedence: flag > environment (.env included) > canvec.yaml > built-in.
const (
	envSRID       = "CANVEC_SRID"
	envEncoding   = "CANVEC_ENCODING"
	envScratchDir = "CANVEC_SCRATCH_DIR"
	envConverter  = "CANVEC_CONVERTER"
)

type runFlagValues struct {
	scratchDir  string
	keepScratch bool
	srid        int
	encoding    string
	converter   string
	noIndex     bool
}

var runFlags runFlagValues

func init() {
	rootCmd.Flags().StringVar(&runFlags.scratchDir, "scratch-dir", "",
		"Extraction directory (created if missing, never removed)\n"+
			"Default: a per-run directory under the system temp location,\n"+
			"removed after the run unless --keep-scratch is set\n"+
			"Precedence: --scratch-dir > $CANVEC_SCRATCH_DIR > canvec.yaml")
	rootCmd.Flags().BoolVar(&runFlags.keepScratch, "keep-scratch", false,
		"Keep the per-run scratch directory after the run\n"+
			"Useful for inspecting what was extracted")
	rootCmd.Flags().IntVar(&runFlags.srid, "srid", canvec.DefaultSRID,
		"SRID passed to the converter as -s\n"+
			"Precedence: --srid > $CANVEC_SRID > canvec.yaml > 4326")
	rootCmd.Flags().StringVar(&runFlags.encoding, "encoding", "",
		"Attribute encoding passed to the converter as -W\n"+
			"(default: unset, converter default applies)\n"+
			"Precedence: --encoding > $CANVEC_ENCODING > canvec.yaml")
	rootCmd.Flags().StringVar(&runFlags.converter, "converter", canvec.DefaultConverter,
		"Converter executable name or path\n"+
			"Precedence: --converter > $CANVEC_CONVERTER > canvec.yaml > shp2pgsql")
	rootCmd.Flags().BoolVar(&runFlags.noIndex, "no-index", false,
		"Do not pass -I (build spatial index) on the first shapefile")
}

// buildRunConfig assembles the run configuration from positional arguments,
// flags, environment and the optional canvec.yaml in the working directory.
// This function is extracted for testability and separation of concerns.
func buildRunConfig(cmd *cobra.Command, args []string, verbose bool) (canvec.Config, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(".")
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return canvec.Config{}, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	if projectCfg == nil {
		projectCfg = &config.ProjectConfig{}
	}

	srid, err := resolveSRID(cmd.Flags().Changed("srid"), runFlags.srid, os.Getenv(envSRID), projectCfg.SRID)
	if err != nil {
		return canvec.Config{}, err
	}

	cfg := canvec.Config{
		SearchToken: args[0],
		OutputPath:  args[1],
		ArchiveRoot: args[2],
		TableName:   args[3],
		SchemaName:  resolveSchema(args, projectCfg.Schema),
		ScratchDir:  resolveString(runFlags.scratchDir, os.Getenv(envScratchDir), projectCfg.ScratchDir, ""),
		KeepScratch: runFlags.keepScratch,
		SRID:        srid,
		Encoding:    resolveString(runFlags.encoding, os.Getenv(envEncoding), projectCfg.Encoding, ""),
		Converter:   resolveConverter(cmd.Flags().Changed("converter"), runFlags.converter, os.Getenv(envConverter), projectCfg.Converter),
		CreateIndex: !runFlags.noIndex,
		Verbose:     verbose,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Run configuration resolved:\n")
		fmt.Fprintf(os.Stderr, "  Search token: %s\n", cfg.SearchToken)
		fmt.Fprintf(os.Stderr, "  Output script: %s\n", cfg.OutputPath)
		fmt.Fprintf(os.Stderr, "  Archive root: %s\n", cfg.ArchiveRoot)
		fmt.Fprintf(os.Stderr, "  Target table: %s\n", cfg.QualifiedTable())
		fmt.Fprintf(os.Stderr, "  SRID: %d\n", cfg.SRID)
		fmt.Fprintf(os.Stderr, "  Encoding: %s\n", orDefault(cfg.Encoding, "(converter default)"))
		fmt.Fprintf(os.Stderr, "  Converter: %s\n", cfg.Converter)
		fmt.Fprintf(os.Stderr, "  Scratch dir: %s\n", orDefault(cfg.ScratchDir, "(per-run temp)"))
	}

	return cfg, nil
}

// resolveSchema picks the schema name: the optional fifth positional
// argument wins, then canvec.yaml, then the built-in default.
func resolveSchema(args []string, projectVal string) string {
	if len(args) == 5 && args[4] != "" {
		return args[4]
	}
	if projectVal != "" {
		return projectVal
	}
	return canvec.DefaultSchema
}

// resolveString applies the flag > env > project file > default layering
// for string settings. An empty flag value means the flag was not given.
func resolveString(flagVal, envVal, projectVal, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	if projectVal != "" {
		return projectVal
	}
	return def
}

// resolveConverter layers the converter setting. The flag carries a
// non-empty default, so explicit use is detected via Changed.
func resolveConverter(flagChanged bool, flagVal, envVal, projectVal string) string {
	if flagChanged {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	if projectVal != "" {
		return projectVal
	}
	return canvec.DefaultConverter
}

// resolveSRID layers the SRID setting. The flag carries a non-zero
// default, so explicit use is detected via Changed.
func resolveSRID(flagChanged bool, flagVal int, envVal string, projectVal int) (int, error) {
	if flagChanged {
		return flagVal, nil
	}
	if envVal != "" {
		srid, err := strconv.Atoi(envVal)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q is not an integer", canvec.ErrInvalidConfig, envSRID, envVal)
		}
		return srid, nil
	}
	if projectVal != 0 {
		return projectVal, nil
	}
	return canvec.DefaultSRID, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func runRoot(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildRunConfig(cmd, args, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	pipeline := services.NewPipeline(
		archive.NewScanner(logger),
		archive.NewExtractor(checksum.New(), logger),
		converter.NewInvoker(cfg, logger),
		script.NewAssembler(),
		logger,
	)

	// No run-level timeout: the converter may legitimately grind through a
	// large sheet for a long time. Interrupt signals still cancel cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling run...")
		cancel()
	}()

	summary, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Fprint(os.Stderr, ui.RenderSummary(summary))
	return nil
}
