package canvec

import (
	"context"
	"fmt"
	"strings"
)

// Config carries everything a run needs. It is assembled once by the CLI
// (flags > environment > canvec.yaml > defaults) and passed into the
// pipeline; nothing reads ambient state after this point.
type Config struct {
	// SearchToken is matched case-sensitively as a substring against the
	// name of every archive entry.
	SearchToken string

	// OutputPath is the destination SQL script. Overwritten on every run.
	OutputPath string

	// ArchiveRoot is searched recursively for *.zip archives.
	ArchiveRoot string

	// TableName and SchemaName identify the target table the converter
	// creates and populates.
	TableName  string
	SchemaName string

	// ScratchDir receives extracted entries. Empty means a per-run
	// directory under the system temp location.
	ScratchDir string

	// KeepScratch leaves the per-run scratch directory in place after the
	// run instead of removing it.
	KeepScratch bool

	// SRID is passed to the converter as -s.
	SRID int

	// Encoding, when non-empty, is passed to the converter as -W.
	Encoding string

	// Converter is the executable name or path of the shapefile-to-SQL tool.
	Converter string

	// CreateIndex adds -I (build a spatial index) to the first invocation.
	CreateIndex bool

	// Verbose enables diagnostic logging.
	Verbose bool
}

// Validate checks that all required fields are present and well-formed.
// Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.SearchToken == "" {
		return fmt.Errorf("%w: search token is required", ErrInvalidConfig)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("%w: output path is required", ErrInvalidConfig)
	}
	if c.ArchiveRoot == "" {
		return fmt.Errorf("%w: archive root is required", ErrInvalidConfig)
	}
	if c.TableName == "" {
		return fmt.Errorf("%w: table name is required", ErrInvalidConfig)
	}
	if c.SchemaName == "" {
		return fmt.Errorf("%w: schema name is required", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.TableName, " \t\n") || strings.ContainsAny(c.SchemaName, " \t\n") {
		return fmt.Errorf("%w: table and schema names must not contain whitespace", ErrInvalidConfig)
	}
	if c.SRID <= 0 {
		return fmt.Errorf("%w: SRID must be positive, got %d", ErrInvalidConfig, c.SRID)
	}
	if c.Converter == "" {
		return fmt.Errorf("%w: converter executable is required", ErrInvalidConfig)
	}
	return nil
}

// QualifiedTable returns the schema-qualified table name the converter targets.
func (c Config) QualifiedTable() string {
	return c.SchemaName + "." + c.TableName
}

// Entry identifies one matched file inside one archive. Ephemeral: produced
// by the scanner, consumed by the extractor, never persisted.
type Entry struct {
	// ArchivePath is the path of the containing zip archive.
	ArchivePath string

	// Name is the entry's path inside the archive.
	Name string

	// Size is the uncompressed size in bytes.
	Size uint64
}

// ScanResult holds the ordered matches of one scan plus scan-level counts.
type ScanResult struct {
	// Entries are the matches in discovery order (lexical walk order, then
	// archive entry order). Order is stable across runs over the same tree.
	Entries []Entry

	ArchivesScanned int
	ArchivesSkipped int
}

// ConvertMode selects between table creation and data append.
type ConvertMode int

const (
	// ModeCreate drops and recreates the target table, then populates it.
	// Used for the first shapefile in discovery order.
	ModeCreate ConvertMode = iota

	// ModeAppend inserts into the already-declared table.
	// Used for every subsequent shapefile.
	ModeAppend
)

// String returns the mode name for logging.
func (m ConvertMode) String() string {
	if m == ModeCreate {
		return "create"
	}
	return "append"
}

// Summary is the end-of-run report shown to the user.
type Summary struct {
	ArchivesScanned     int
	ArchivesSkipped     int
	EntriesMatched      int
	EntriesExtracted    int
	ShapefilesConverted int
	EntriesSkipped      int

	// Skips records why individual entries were skipped, in order.
	Skips []SkipReason
}

// SkipReason pairs a skipped entry with the error that caused the skip.
type SkipReason struct {
	Entry  Entry
	Reason error
}

// ArchiveScanner discovers matching entries under an archive root.
type ArchiveScanner interface {
	Scan(ctx context.Context, root, token string) (ScanResult, error)
}

// Extractor writes one entry's bytes into the scratch directory and returns
// the extracted file's path.
type Extractor interface {
	Extract(entry Entry, scratchDir string) (string, error)
}

// ConverterInvoker wraps the external shapefile-to-SQL tool.
type ConverterInvoker interface {
	// CheckAvailable verifies the tool can be found on the search path.
	// Called before the output file is touched.
	CheckAvailable() error

	// Convert runs the tool against one extracted shapefile and returns the
	// SQL fragment it wrote to stdout.
	Convert(ctx context.Context, shpPath string, mode ConvertMode) ([]byte, error)
}

// ScriptAssembler owns the output script for the duration of a run.
type ScriptAssembler interface {
	// Begin creates (or truncates) the destination and writes the header.
	Begin(outputPath, token string) error

	// Append writes one converter fragment. Fragments land in call order.
	Append(fragment []byte) error

	// Close flushes and releases the destination file.
	Close() error

	// Fragments reports how many fragments have been appended.
	Fragments() int
}
