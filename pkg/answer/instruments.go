package answer

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// Instruments is the fixed vocabulary recognized by the instrument
// extractor.
var Instruments = []string{
	"viol", "lute", "violin", "flute", "harp",
	"fiddle", "guitar", "drum", "strings",
}

// instrumentAC scans text for the vocabulary in a single pass.
// LeftmostLongest prefers "violin" over its "viol" prefix.
var instrumentAC *ahocorasick.Automaton

func init() {
	ac, err := ahocorasick.NewBuilder().
		AddStrings(Instruments).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		panic("answer: build instrument automaton: " + err.Error())
	}
	instrumentAC = ac
}

// ExtractInstrument returns the first vocabulary entry appearing in text
// (case-insensitive, earliest occurrence wins), or "" when none appears.
func ExtractInstrument(text string) string {
	matches := instrumentAC.FindAllOverlapping([]byte(strings.ToLower(text)))
	if len(matches) == 0 {
		return ""
	}

	best := matches[0]
	for _, m := range matches[1:] {
		if m.Start < best.Start || (m.Start == best.Start && m.End > best.End) {
			best = m
		}
	}
	return Instruments[best.PatternID]
}
