// Package theme loads highlighting themes from YAML and TOML files.
//
// A theme file maps token type names to styling strings:
//
//	keyword: magenta bold
//	label-link: fg-blue underlined
//
// The equivalent TOML file is:
//
//	keyword = "magenta bold"
//	label-link = "fg-blue underlined"
//
// Token type names are those of lmc.TokenType.String, and styling strings are
// parsed with ui.ParseStyling. Token types not mentioned keep their styling in
// highlight.DefaultTheme.
package theme

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"src.lmc.sh/pkg/errutil"
	"src.lmc.sh/pkg/highlight"
	"src.lmc.sh/pkg/lmc"
	"src.lmc.sh/pkg/ui"
)

// Format is the format of a theme file.
type Format int

// Supported formats.
const (
	YAML Format = iota
	TOML
)

// FormatOf returns the format of a theme file judging from its extension.
func FormatOf(path string) (Format, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("unknown theme file extension: %q", filepath.Ext(path))
	}
}

// Load reads a theme file.
func Load(path string) (highlight.Theme, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse parses the content of a theme file.
func Parse(data []byte, format Format) (highlight.Theme, error) {
	var raw map[string]string
	var err error
	switch format {
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	case TOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	default:
		return nil, fmt.Errorf("unknown theme format %d", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	overrides := make(highlight.Theme, len(raw))
	var errs []error
	for _, name := range names {
		t, ok := lmc.ParseTokenType(name)
		if !ok || t == lmc.None {
			errs = append(errs, fmt.Errorf("unknown token type %q", name))
			continue
		}
		styling := ui.ParseStyling(raw[name])
		if styling == nil {
			errs = append(errs, fmt.Errorf("invalid styling %q for %s", raw[name], name))
			continue
		}
		overrides[t] = styling
	}
	if len(errs) > 0 {
		return nil, errutil.Multi(errs...)
	}
	return highlight.DefaultTheme.Merge(overrides), nil
}
