package canvec

import "errors"

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := pipeline.Run(ctx, config)
//	if errors.Is(err, canvec.ErrConverterNotFound) {
//	    // shp2pgsql is not installed
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrArchiveRootNotFound indicates the archive root directory does not exist.
	ErrArchiveRootNotFound = errors.New("archive root not found")

	// ErrConverterNotFound indicates the converter executable is not on the
	// search path. Fatal for the run: no valid SQL can be produced without it.
	ErrConverterNotFound = errors.New("converter not found")

	// ErrConverterFailed indicates the converter exited with a non-zero status.
	// Fatal for the run: appending past a failed conversion would leave the
	// script silently incomplete.
	ErrConverterFailed = errors.New("converter failed")

	// ErrArchiveRead indicates an archive could not be opened or read.
	// Recovered per archive: the run skips it and continues.
	ErrArchiveRead = errors.New("archive read failed")

	// ErrExtraction indicates a matched entry could not be written to the
	// scratch directory. Recovered per entry: the run skips it and continues.
	ErrExtraction = errors.New("extraction failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrArchiveRootNotFound):
		return ExitRootNotFound
	case errors.Is(err, ErrConverterNotFound):
		return ExitConverterMissing
	case errors.Is(err, ErrConverterFailed):
		return ExitConverterFailed
	}

	return ExitGeneralError
}
