// Package ui renders the end-of-run summary for human consumption.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rskelly/canvec/pkg/canvec"
)

// Color palette - keeping it minimal and accessible.
var (
	colorPrimary = lipgloss.Color("39")  // Blue
	colorSuccess = lipgloss.Color("34")  // Green
	colorWarning = lipgloss.Color("214") // Orange
	colorMuted   = lipgloss.Color("240") // Dark gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	okStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)
)

// Styled reports whether summary output should be styled.
//
// Returns false when:
//   - NO_COLOR is set (accessibility/automation indicator)
//   - CI is set (common CI/CD convention)
//   - stderr is not a terminal (piped or redirected output)
func Styled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RenderSummary formats the run summary, styled when the environment
// supports it and plain otherwise.
func RenderSummary(s canvec.Summary) string {
	if Styled() {
		return renderStyled(s)
	}
	return renderPlain(s)
}

func renderPlain(s canvec.Summary) string {
	var b strings.Builder
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  archives scanned:     %d\n", s.ArchivesScanned)
	fmt.Fprintf(&b, "  archives skipped:     %d\n", s.ArchivesSkipped)
	fmt.Fprintf(&b, "  entries matched:      %d\n", s.EntriesMatched)
	fmt.Fprintf(&b, "  entries extracted:    %d\n", s.EntriesExtracted)
	fmt.Fprintf(&b, "  shapefiles converted: %d\n", s.ShapefilesConverted)
	fmt.Fprintf(&b, "  entries skipped:      %d\n", s.EntriesSkipped)
	for _, skip := range s.Skips {
		fmt.Fprintf(&b, "    - %s!%s: %v\n", skip.Entry.ArchivePath, skip.Entry.Name, skip.Reason)
	}
	return b.String()
}

func renderStyled(s canvec.Summary) string {
	count := func(n int, style lipgloss.Style) string {
		return style.Render(fmt.Sprintf("%d", n))
	}
	countsStyle := okStyle
	if s.ShapefilesConverted == 0 {
		countsStyle = warnStyle
	}
	skippedStyle := labelStyle
	if s.ArchivesSkipped > 0 || s.EntriesSkipped > 0 {
		skippedStyle = warnStyle
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Summary") + "\n")
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("archives scanned:    "), count(s.ArchivesScanned, okStyle))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("archives skipped:    "), count(s.ArchivesSkipped, skippedStyle))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("entries matched:     "), count(s.EntriesMatched, countsStyle))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("entries extracted:   "), count(s.EntriesExtracted, countsStyle))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("shapefiles converted:"), count(s.ShapefilesConverted, countsStyle))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("entries skipped:     "), count(s.EntriesSkipped, skippedStyle))
	for _, skip := range s.Skips {
		fmt.Fprintf(&b, "    %s %s!%s: %v\n", warnStyle.Render("✗"), skip.Entry.ArchivePath, skip.Entry.Name, skip.Reason)
	}
	return b.String()
}
