package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canvec <search> <output_sql> <archive_root> <table> [schema]",
	Short: "Build a PostGIS load script from map-sheet shapefile archives",
	Long: `canvec searches a directory tree of map-sheet zip archives for entries
whose name contains a feature-type token (for example FO_1030009 for
metric contours), extracts the matching shapefile sets to a scratch
directory and runs shp2pgsql over each one. The converter output is
concatenated, in discovery order, into a single SQL script: the first
shapefile creates and populates the target table, every later one
appends to it.

The script is written to <output_sql>, replacing any prior content.
The target table WILL BE DROPPED by the generated script.

A token that matches nothing is a warning, not an error: the run exits 0
and leaves a header-only script behind.

Arguments:
  search        Substring matched (case-sensitively) against entry names
  output_sql    Destination SQL script, overwritten
  archive_root  Directory searched recursively for *.zip archives
  table         Target table name
  schema        Target schema name (default: public)

Exit Codes:
  0  - Success (including a token that matched nothing)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Archive root directory not found
  12 - shp2pgsql not found on the search path
  13 - shp2pgsql exited with a non-zero status`,
	Example: `  # Metric contours from two sheets into public.contours
  canvec FO_1030009 contours.sql ./canvec_data contours

  # Into a dedicated schema, with a shared scratch volume
  canvec FO_1030009 contours.sql ./canvec_data contours gis --scratch-dir /var/tmp/canvec`,
	Args:         RequireRunArgs,
	RunE:         runRoot,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
