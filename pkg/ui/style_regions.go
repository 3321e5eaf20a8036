package ui

import (
	"sort"

	"src.lmc.sh/pkg/diag"
)

// StylingRegion is a byte range of a string together with the styling to
// apply to it.
type StylingRegion struct {
	diag.Ranging
	Styling  Styling
	Priority int
}

// StyleRegions styles the regions of s and returns the result. Text outside
// any region is left unstyled.
//
// When regions overlap, the one starting earlier wins; among regions with the
// same start, the one with the highest Priority wins. Losing regions are
// dropped entirely.
func StyleRegions(s string, regions []StylingRegion) Text {
	var text Text
	lastTo := 0
	for _, r := range nonOverlapping(regions) {
		if r.From > lastTo {
			text = append(text, &Segment{Text: s[lastTo:r.From]})
		}
		text = append(text, &Segment{
			Text: r.Text(s), Style: ApplyStyling(Style{}, r.Styling)})
		lastTo = r.To
	}
	if lastTo < len(s) {
		text = append(text, &Segment{Text: s[lastTo:]})
	}
	return text
}

func nonOverlapping(regions []StylingRegion) []StylingRegion {
	sorted := append([]StylingRegion(nil), regions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		return a.From < b.From || (a.From == b.From && a.Priority > b.Priority)
	})
	kept := sorted[:0]
	lastTo := 0
	for _, r := range sorted {
		if r.From >= lastTo {
			kept = append(kept, r)
			lastTo = r.To
		}
	}
	return kept
}
