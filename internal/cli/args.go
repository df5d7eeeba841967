package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireRunArgs validates the positional arguments of the root command:
// search token, output path, archive root and table name are required, the
// schema name is optional.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireRunArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf(`missing required arguments: <search> <output_sql> <archive_root> <table>

Usage: %s

Example:
  %s FO_1030009 contours.sql ./canvec_data contours`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 5 {
		return fmt.Errorf("accepts at most 5 arg(s), received %d", len(args))
	}
	return nil
}
