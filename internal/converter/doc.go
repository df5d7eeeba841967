// Package converter wraps the external shapefile-to-SQL tool (shp2pgsql).
//
// The tool is invoked once per extracted shapefile. The first invocation
// of a run creates and populates the target table (-d, optionally -I);
// every later invocation appends (-a) into the table already declared by
// the first. Its stdout is the SQL fragment handed to the assembler.
//
// A missing tool or a non-zero exit is fatal for the whole run: appending
// past a failed conversion would produce a script that loads silently
// incomplete data.
package converter
