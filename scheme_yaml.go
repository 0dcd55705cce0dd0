package linelog

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// ErrInvalidScheme indicates a palette definition could not be parsed.
var ErrInvalidScheme = errors.New("invalid color scheme")

// palette mirrors the YAML form of one [ColorScheme]. Empty slots inherit
// from the surrounding scheme.
type palette struct {
	Level   string `yaml:"level"`
	Header  string `yaml:"header"`
	Context string `yaml:"context"`
	CID     string `yaml:"cid"`
	Msg     string `yaml:"msg"`
	Key     string `yaml:"key"`
	Value   string `yaml:"value"`
}

// schemeDoc is the YAML form of a full scheme: a base palette applied to all
// levels plus per-level overrides keyed by level string.
type schemeDoc struct {
	Default palette            `yaml:"default"`
	Levels  map[string]palette `yaml:"levels"`
}

// over returns base with the palette's non-empty slots applied on top.
func (p palette) over(base ColorScheme) ColorScheme {
	if p.Level != "" {
		base.Level = p.Level
	}

	if p.Header != "" {
		base.Header = p.Header
	}

	if p.Context != "" {
		base.Context = p.Context
	}

	if p.CID != "" {
		base.CID = p.CID
	}

	if p.Msg != "" {
		base.Msg = p.Msg
	}

	if p.Key != "" {
		base.Key = p.Key
	}

	if p.Value != "" {
		base.Value = p.Value
	}

	return base
}

// ParseScheme parses a YAML palette definition into a [SchemeFunc]. Slots
// omitted from the definition fall back to [GruvboxDark]. The expected
// document shape is:
//
//	default:
//	  header: "38;5;250"
//	  msg: "38;5;255"
//	levels:
//	  error:
//	    level: "38;5;196"
//	  warn:
//	    level: "38;5;220"
//
// The returned function only takes effect once installed with
// [SetColorScheme].
func ParseScheme(data []byte) (SchemeFunc, error) {
	var doc schemeDoc

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScheme, err)
	}

	overrides := make(map[Level]palette, len(doc.Levels))

	for name, p := range doc.Levels {
		lvl, err := ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScheme, err)
		}

		overrides[lvl] = p
	}

	return func(level Level) ColorScheme {
		scheme := doc.Default.over(GruvboxDark(level))
		if p, ok := overrides[level]; ok {
			scheme = p.over(scheme)
		}

		return scheme
	}, nil
}
