package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rskelly/canvec/pkg/canvec"
)

func sampleSummary() canvec.Summary {
	return canvec.Summary{
		ArchivesScanned:     12,
		ArchivesSkipped:     1,
		EntriesMatched:      40,
		EntriesExtracted:    39,
		ShapefilesConverted: 10,
		EntriesSkipped:      1,
		Skips: []canvec.SkipReason{
			{
				Entry:  canvec.Entry{ArchivePath: "/data/021D04.zip", Name: "FO_1030009_0.dbf"},
				Reason: errors.New("disk full"),
			},
		},
	}
}

func TestRenderPlain_ContainsAllCounts(t *testing.T) {
	out := renderPlain(sampleSummary())

	assert.Contains(t, out, "archives scanned:     12")
	assert.Contains(t, out, "archives skipped:     1")
	assert.Contains(t, out, "entries matched:      40")
	assert.Contains(t, out, "entries extracted:    39")
	assert.Contains(t, out, "shapefiles converted: 10")
	assert.Contains(t, out, "entries skipped:      1")
	assert.Contains(t, out, "/data/021D04.zip!FO_1030009_0.dbf: disk full")
}

func TestRenderPlain_NoSkipsNoSkipLines(t *testing.T) {
	s := sampleSummary()
	s.Skips = nil
	out := renderPlain(s)
	assert.NotContains(t, out, "!")
}

func TestRenderStyled_CarriesTheSameCounts(t *testing.T) {
	out := renderStyled(sampleSummary())

	// Styling may wrap the numbers in escape sequences; the digits and
	// skip detail must still be present.
	for _, want := range []string{"12", "40", "39", "10", "FO_1030009_0.dbf"} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.Contains(out, "Summary"))
}

func TestStyled_RespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, Styled())
}

func TestStyled_RespectsCI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "true")
	assert.False(t, Styled())
}
