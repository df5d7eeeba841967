package canvec

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Extraction completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitRootNotFound     = 11 // Archive root directory does not exist
	ExitConverterMissing = 12 // shp2pgsql not found on PATH
	ExitConverterFailed  = 13 // shp2pgsql exited with a non-zero status
)

const (
	// DefaultConverter is the shapefile-to-SQL converter invoked per shapefile.
	DefaultConverter = "shp2pgsql"

	// DefaultSRID is the spatial reference identifier passed to the converter.
	// 4326 is WGS 84, the reference system CanVec sheets are distributed in.
	DefaultSRID = 4326

	// DefaultSchema is the target schema when none is given on the command line.
	DefaultSchema = "public"

	// ArchiveExtension identifies map-sheet archives under the archive root.
	ArchiveExtension = ".zip"

	// ShapefileExtension identifies the entries handed to the converter.
	// Sidecar entries (.dbf, .shx, .prj, ...) are extracted but not converted.
	ShapefileExtension = ".shp"
)
