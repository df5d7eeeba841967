package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/rskelly/canvec/internal/checksum"
	"github.com/rskelly/canvec/pkg/canvec"
)

// DiskExtractor writes matched archive entries into a scratch directory.
// Safe for concurrent use as long as the logger is; the pipeline runs it
// sequentially.
type DiskExtractor struct {
	calculator checksum.Calculator
	logger     canvec.Logger
}

// NewExtractor creates a new extractor using the given checksum calculator
// for name disambiguation.
// Panics if calculator or logger is nil.
func NewExtractor(calculator checksum.Calculator, logger canvec.Logger) *DiskExtractor {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &DiskExtractor{calculator: calculator, logger: logger}
}

// Extract streams the entry's bytes to the scratch directory and returns
// the extracted file's path. The file is named
//
//	<digest>_<base name of entry>
//
// where digest is a short hash of the source archive path. Entries from
// the same archive share the prefix, which keeps a shapefile next to its
// sidecar set; entries from different archives can never collide. Entry
// names are flattened to their base name so hostile ../ components cannot
// escape the scratch directory.
//
// Failures wrap canvec.ErrExtraction and are fatal for the entry only.
func (e *DiskExtractor) Extract(entry canvec.Entry, scratchDir string) (string, error) {
	reader, err := zip.OpenReader(entry.ArchivePath)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", canvec.ErrExtraction, entry.ArchivePath, err)
	}
	defer reader.Close()

	var file *zip.File
	for _, f := range reader.File {
		if f.Name == entry.Name {
			file = f
			break
		}
	}
	if file == nil {
		return "", fmt.Errorf("%w: entry %s not found in %s", canvec.ErrExtraction, entry.Name, entry.ArchivePath)
	}

	destPath := filepath.Join(scratchDir, e.extractedName(entry))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", canvec.ErrExtraction, entry.Name, err)
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", canvec.ErrExtraction, destPath, err)
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		os.Remove(destPath)
		return "", fmt.Errorf("%w: writing %s: %v", canvec.ErrExtraction, destPath, err)
	}
	if err := dest.Close(); err != nil {
		return "", fmt.Errorf("%w: closing %s: %v", canvec.ErrExtraction, destPath, err)
	}

	e.logger.Verbose("extracted %s!%s -> %s", entry.ArchivePath, entry.Name, destPath)
	return destPath, nil
}

// extractedName builds the disambiguated scratch file name for an entry.
// Entry names use forward slashes inside zip archives regardless of
// platform, hence path.Base rather than filepath.Base.
func (e *DiskExtractor) extractedName(entry canvec.Entry) string {
	prefix := e.calculator.Short(entry.ArchivePath, checksum.PrefixLength)
	return prefix + "_" + path.Base(entry.Name)
}

// Verify DiskExtractor implements the interface at compile time
var _ canvec.Extractor = (*DiskExtractor)(nil)
