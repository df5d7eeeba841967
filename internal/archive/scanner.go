package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rskelly/canvec/pkg/canvec"
)

// Scanner discovers matching entries inside zip archives under a root
// directory. Safe for concurrent use as long as the logger is.
type Scanner struct {
	logger canvec.Logger
}

// NewScanner creates a new archive scanner.
// Panics if logger is nil.
func NewScanner(logger canvec.Logger) *Scanner {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scanner{logger: logger}
}

// Scan walks root recursively and returns every archive entry whose name
// contains token as a case-sensitive substring. Discovery order is the
// lexical walk order of filepath.WalkDir followed by archive entry order,
// so results are stable across runs over the same tree.
//
// Archives that cannot be opened or read are logged, counted in
// ArchivesSkipped and skipped. A missing or non-directory root returns
// an error wrapping canvec.ErrArchiveRootNotFound.
func (s *Scanner) Scan(ctx context.Context, root, token string) (canvec.ScanResult, error) {
	var result canvec.ScanResult

	info, err := os.Stat(root)
	if err != nil {
		return result, fmt.Errorf("%w: %s", canvec.ErrArchiveRootNotFound, root)
	}
	if !info.IsDir() {
		return result, fmt.Errorf("%w: %s is not a directory", canvec.ErrArchiveRootNotFound, root)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			// Unreadable subdirectory or stat failure: skip it, keep walking.
			s.logger.Warn("cannot read %s: %v", path, walkErr)
			return nil
		}
		if d.IsDir() || !isArchive(path) {
			return nil
		}

		entries, scanErr := s.scanArchive(path, token)
		if scanErr != nil {
			result.ArchivesSkipped++
			s.logger.Warn("skipping archive %s: %v", path, scanErr)
			return nil
		}

		result.ArchivesScanned++
		result.Entries = append(result.Entries, entries...)
		s.logger.Verbose("scanned %s: %d matching entries", path, len(entries))
		return nil
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

// scanArchive opens one zip archive and returns its matching entries in
// archive order. Errors wrap canvec.ErrArchiveRead.
func (s *Scanner) scanArchive(path, token string) ([]canvec.Entry, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", canvec.ErrArchiveRead, err)
	}
	defer reader.Close()

	var entries []canvec.Entry
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.Contains(f.Name, token) {
			continue
		}
		entries = append(entries, canvec.Entry{
			ArchivePath: path,
			Name:        f.Name,
			Size:        f.UncompressedSize64,
		})
	}
	return entries, nil
}

// isArchive reports whether path names a map-sheet archive.
func isArchive(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == canvec.ArchiveExtension
}

// Verify Scanner implements the interface at compile time
var _ canvec.ArchiveScanner = (*Scanner)(nil)
