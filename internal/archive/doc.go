// Package archive discovers and extracts matching entries from map-sheet
// zip archives.
//
// Scanner walks an archive root recursively, opens every .zip it finds and
// collects the entries whose name contains the search token. Unreadable
// archives are skipped and counted, never fatal: a bulk dataset with one
// corrupt sheet should still yield the other sheets.
//
// Extractor streams a matched entry into the scratch directory under a
// digest-prefixed name, so same-named entries from different archives
// cannot overwrite each other during a run.
package archive
