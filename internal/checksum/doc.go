// Package checksum provides content and path hashing for the extraction
// pipeline.
//
// Two uses:
//
//   - Content digests: verifying that an extracted file's bytes match the
//     entry inside its source archive.
//   - Short path digests: a stable per-archive prefix for extracted file
//     names, so same-named entries from different map sheets never collide
//     in the scratch directory. Sidecar files from one archive share the
//     prefix, which keeps a shapefile next to its .dbf/.shx/.prj set.
//
// # Example Usage
//
//	calculator := checksum.New()
//	digest := calculator.Calculate(content)
//	prefix := calculator.Short("/data/021D04.zip", checksum.PrefixLength)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
