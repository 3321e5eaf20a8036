package highlight

import (
	"src.lmc.sh/pkg/lmc"
	"src.lmc.sh/pkg/ui"
)

// Theme maps token types to stylings. Token types absent from the map are
// left unstyled.
type Theme map[lmc.TokenType]ui.Styling

// DefaultTheme is the theme used when none is configured.
var DefaultTheme = Theme{
	lmc.Keyword:   ui.Stylings(ui.FgMagenta, ui.Bold),
	lmc.IOKeyword: ui.FgGreen,
	lmc.Link:      ui.FgBlue,
	lmc.Variable:  ui.FgYellow,
	lmc.Number:    ui.FgCyan,
	lmc.Directive: ui.FgRed,
	lmc.Comment:   ui.Stylings(ui.FgBrightBlack, ui.Italic),
}

// Merge returns a new Theme with the entries of t overridden by those of
// other.
func (t Theme) Merge(other Theme) Theme {
	merged := make(Theme, len(t)+len(other))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
