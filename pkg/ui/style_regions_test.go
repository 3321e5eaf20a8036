package ui_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.lmc.sh/pkg/diag"
	"src.lmc.sh/pkg/ui"
)

var styleRegionsTests = []struct {
	name    string
	s       string
	regions []ui.StylingRegion
	want    ui.Text
}{
	{
		name: "empty string and regions",
		s:    "", regions: nil, want: nil,
	},
	{
		name:    "no regions",
		s:       "HLT",
		regions: nil,
		want:    ui.T("HLT"),
	},
	{
		name: "single region",
		s:    "LDA ONE",
		regions: []ui.StylingRegion{
			{r(0, 3), ui.FgMagenta, 0},
		},
		want: ui.Concat(ui.T("LDA", ui.FgMagenta), ui.T(" ONE")),
	},
	{
		name: "adjacent regions",
		s:    "ADD7",
		regions: []ui.StylingRegion{
			{r(0, 3), ui.FgMagenta, 0},
			{r(3, 4), ui.FgCyan, 0},
		},
		want: ui.Concat(ui.T("ADD", ui.FgMagenta), ui.T("7", ui.FgCyan)),
	},
	{
		name: "regions out of order",
		s:    "LOOP BRA LOOP",
		regions: []ui.StylingRegion{
			{r(9, 13), ui.FgBlue, 0},
			{r(0, 4), ui.FgBlue, 0},
			{r(5, 8), ui.FgMagenta, 0},
		},
		want: ui.Concat(
			ui.T("LOOP", ui.FgBlue), ui.T(" "), ui.T("BRA", ui.FgMagenta),
			ui.T(" "), ui.T("LOOP", ui.FgBlue)),
	},
	{
		name: "same start, higher priority wins",
		s:    "OUTPUT",
		regions: []ui.StylingRegion{
			{r(0, 6), ui.FgBrightBlack, 0},
			{r(0, 3), ui.FgGreen, 1},
		},
		want: ui.Concat(ui.T("OUT", ui.FgGreen), ui.T("PUT")),
	},
	{
		name: "overlapping region starting later is dropped",
		s:    "STA X",
		regions: []ui.StylingRegion{
			{r(0, 3), ui.FgMagenta, 0},
			{r(2, 5), ui.FgYellow, 9},
		},
		want: ui.Concat(ui.T("STA", ui.FgMagenta), ui.T(" X")),
	},
}

func r(a, b int) diag.Ranging { return diag.Ranging{From: a, To: b} }

func TestStyleRegions(t *testing.T) {
	for _, test := range styleRegionsTests {
		t.Run(test.name, func(t *testing.T) {
			got := ui.StyleRegions(test.s, test.regions)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
