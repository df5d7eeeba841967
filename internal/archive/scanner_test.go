package archive

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rskelly/canvec/internal/logging"
	"github.com/rskelly/canvec/pkg/canvec"
)

// writeZip creates a zip archive at path with the given entries.
// Entries are written in sorted name order so fixtures are deterministic.
func writeZip(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

// sheetEntries builds a typical map-sheet file set for one feature type.
func sheetEntries(feature string) map[string][]byte {
	return map[string][]byte{
		feature + "_0.shp": []byte("shp bytes for " + feature),
		feature + "_0.dbf": []byte("dbf bytes for " + feature),
		feature + "_0.shx": []byte("shx bytes for " + feature),
		feature + "_0.prj": []byte("prj bytes for " + feature),
	}
}

func entryNames(entries []canvec.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestScan_MatchesExactlyEntriesContainingToken(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "021D04.zip"), map[string][]byte{
		"FO_1030009_0.shp": []byte("contours"),
		"FO_1030009_0.dbf": []byte("attrs"),
		"HD_1480009_1.shp": []byte("water"),
	})

	scanner := NewScanner(logging.NewNullLogger())
	result, err := scanner.Scan(context.Background(), root, "FO_1030009")
	require.NoError(t, err)

	assert.Equal(t, 1, result.ArchivesScanned)
	assert.Equal(t, 0, result.ArchivesSkipped)
	assert.ElementsMatch(t, []string{"FO_1030009_0.shp", "FO_1030009_0.dbf"}, entryNames(result.Entries))
	for _, e := range result.Entries {
		assert.Equal(t, filepath.Join(root, "021D04.zip"), e.ArchivePath)
		assert.NotZero(t, e.Size)
	}
}

func TestScan_TokenIsCaseSensitive(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "sheet.zip"), sheetEntries("FO_1030009"))

	scanner := NewScanner(logging.NewNullLogger())
	result, err := scanner.Scan(context.Background(), root, "fo_1030009")
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestScan_FindsArchivesInNestedDirectories(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "canvec", "50k", "021", "D")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	writeZip(t, filepath.Join(deep, "021D04.zip"), sheetEntries("FO_1030009"))

	scanner := NewScanner(logging.NewNullLogger())
	result, err := scanner.Scan(context.Background(), root, "FO_1030009")
	require.NoError(t, err)

	assert.Equal(t, 1, result.ArchivesScanned)
	assert.Len(t, result.Entries, 4)
}

func TestScan_IgnoresNonArchiveFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("FO_1030009"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "FO_1030009_0.shp"), []byte("loose shapefile"), 0o644))

	scanner := NewScanner(logging.NewNullLogger())
	result, err := scanner.Scan(context.Background(), root, "FO_1030009")
	require.NoError(t, err)

	assert.Equal(t, 0, result.ArchivesScanned)
	assert.Empty(t, result.Entries)
}

func TestScan_SkipsCorruptArchiveAndContinues(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "021D04.zip"), []byte("not a zip"), 0o644))
	writeZip(t, filepath.Join(root, "021D05.zip"), sheetEntries("FO_1030009"))

	scanner := NewScanner(logging.NewNullLogger())
	result, err := scanner.Scan(context.Background(), root, "FO_1030009")
	require.NoError(t, err)

	assert.Equal(t, 1, result.ArchivesScanned)
	assert.Equal(t, 1, result.ArchivesSkipped)
	assert.Len(t, result.Entries, 4)
}

func TestScan_IgnoresDirectoryEntries(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "sheet.zip"), map[string][]byte{
		"FO_1030009/":          nil,
		"FO_1030009/files.shp": []byte("nested"),
	})

	scanner := NewScanner(logging.NewNullLogger())
	result, err := scanner.Scan(context.Background(), root, "FO_1030009")
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "FO_1030009/files.shp", result.Entries[0].Name)
}

func TestScan_RootDoesNotExist(t *testing.T) {
	scanner := NewScanner(logging.NewNullLogger())
	_, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), "FO")
	require.Error(t, err)
	assert.True(t, errors.Is(err, canvec.ErrArchiveRootNotFound), "expected ErrArchiveRootNotFound, got: %v", err)
}

func TestScan_RootIsAFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	scanner := NewScanner(logging.NewNullLogger())
	_, err := scanner.Scan(context.Background(), file, "FO")
	assert.True(t, errors.Is(err, canvec.ErrArchiveRootNotFound), "expected ErrArchiveRootNotFound, got: %v", err)
}

func TestScan_DiscoveryOrderIsLexicalAndStable(t *testing.T) {
	root := t.TempDir()
	// Written out of order on purpose; WalkDir visits lexically.
	writeZip(t, filepath.Join(root, "021D05.zip"), sheetEntries("FO_1030009"))
	writeZip(t, filepath.Join(root, "021D04.zip"), sheetEntries("FO_1030009"))

	scanner := NewScanner(logging.NewNullLogger())
	first, err := scanner.Scan(context.Background(), root, "FO_1030009_0.shp")
	require.NoError(t, err)
	require.Len(t, first.Entries, 2)
	assert.Equal(t, filepath.Join(root, "021D04.zip"), first.Entries[0].ArchivePath)
	assert.Equal(t, filepath.Join(root, "021D05.zip"), first.Entries[1].ArchivePath)

	second, err := scanner.Scan(context.Background(), root, "FO_1030009_0.shp")
	require.NoError(t, err)
	assert.Equal(t, first.Entries, second.Entries)
}

func TestScan_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeZip(t, filepath.Join(root, "sheet.zip"), sheetEntries("FO_1030009"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewScanner(logging.NewNullLogger())
	_, err := scanner.Scan(ctx, root, "FO_1030009")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewScanner_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewScanner(nil) })
}
