// Package script owns the output SQL file for the duration of a run.
package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/rskelly/canvec/pkg/canvec"
)

// FileAssembler writes converter fragments to a destination file in the
// order they are appended. The destination is truncated on Begin, so a run
// always replaces any prior script at the same path.
type FileAssembler struct {
	file      *os.File
	fragments int
}

// NewAssembler creates a new, unopened assembler. Begin must be called
// before Append.
func NewAssembler() *FileAssembler {
	return &FileAssembler{}
}

// Begin creates (or truncates) the destination and writes a header comment
// naming the search token. A run that matches nothing therefore still
// leaves a well-formed, header-only script behind.
func (a *FileAssembler) Begin(outputPath, token string) error {
	if a.file != nil {
		return errors.New("assembler already begun")
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output script %s: %w", outputPath, err)
	}

	if _, err := fmt.Fprintf(file, "-- canvec: entries matching %q\n", token); err != nil {
		file.Close()
		return fmt.Errorf("failed to write script header: %w", err)
	}

	a.file = file
	return nil
}

// Append writes one converter fragment, ensuring fragments stay separated
// by a newline even if the converter's output lacks a trailing one.
func (a *FileAssembler) Append(fragment []byte) error {
	if a.file == nil {
		return errors.New("assembler not begun")
	}

	if _, err := a.file.Write(fragment); err != nil {
		return fmt.Errorf("failed to append to output script: %w", err)
	}
	if len(fragment) > 0 && fragment[len(fragment)-1] != '\n' {
		if _, err := a.file.Write([]byte{'\n'}); err != nil {
			return fmt.Errorf("failed to append to output script: %w", err)
		}
	}

	a.fragments++
	return nil
}

// Close flushes and releases the destination file. Safe to call more than
// once; calls after the first are no-ops.
func (a *FileAssembler) Close() error {
	if a.file == nil {
		return nil
	}
	file := a.file
	a.file = nil
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output script: %w", err)
	}
	return nil
}

// Fragments reports how many fragments have been appended.
func (a *FileAssembler) Fragments() int {
	return a.fragments
}

// Verify FileAssembler implements the interface at compile time
var _ canvec.ScriptAssembler = (*FileAssembler)(nil)
