// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"fmt"
	"html/template"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Color selects the spinner palette.
type Color string

const (
	ColorPrimary   Color = "primary"
	ColorSecondary Color = "secondary"
	ColorInherit   Color = "inherit"
)

// DefaultSpinnerSize is the spinner diameter in pixels.
const DefaultSpinnerSize = 32

type spinnerConfig struct {
	size   int
	center bool
	color  Color
	styles map[string]string
}

// SpinnerOption customises a Spinner.
type SpinnerOption func(*spinnerConfig)

// WithSize sets the diameter in pixels. Non-positive sizes are ignored.
func WithSize(px int) SpinnerOption {
	return func(c *spinnerConfig) {
		if px > 0 {
			c.size = px
		}
	}
}

// WithCenter toggles absolute centering within the positioned parent.
func WithCenter(center bool) SpinnerOption {
	return func(c *spinnerConfig) { c.center = center }
}

// WithColor sets the palette. Unknown colors are ignored.
func WithColor(color Color) SpinnerOption {
	return func(c *spinnerConfig) {
		switch color {
		case ColorPrimary, ColorSecondary, ColorInherit:
			c.color = color
		}
	}
}

// WithStyles adds inline style overrides. Keys may be CSS properties or their
// camelCase form (marginTop). Declarations that are not plain values are dropped.
func WithStyles(styles map[string]string) SpinnerOption {
	return func(c *spinnerConfig) {
		for k, v := range styles {
			c.styles[k] = v
		}
	}
}

var (
	cssProperty = regexp.MustCompile(`^-?[a-z][a-z0-9-]*$`)
	cssValue    = regexp.MustCompile(`^[a-zA-Z0-9#%.,\s-]+$`)
)

var spinnerTmpl = template.Must(template.New("spinner").Parse(
	`<span class="spinner spinner--{{.Color}}{{if .Center}} spinner--center{{end}}" role="progressbar" aria-busy="true" style="{{.Style}}">` +
		`<svg viewBox="22 22 44 44" width="{{.Size}}" height="{{.Size}}" aria-hidden="true">` +
		`<circle class="spinner__circle" cx="44" cy="44" r="20.2" fill="none" stroke-width="3.6"></circle>` +
		`</svg></span>`))

// Spinner renders the circular progress indicator. Defaults: 32px, centered,
// primary color, no style overrides.
func Spinner(opts ...SpinnerOption) template.HTML {
	cfg := spinnerConfig{
		size:   DefaultSpinnerSize,
		center: true,
		color:  ColorPrimary,
		styles: map[string]string{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	err := spinnerTmpl.Execute(&b, struct {
		Size   int
		Center bool
		Color  Color
		Style  template.CSS
	}{
		Size:   cfg.size,
		Center: cfg.center,
		Color:  cfg.color,
		Style:  inlineStyle(cfg.size, cfg.styles),
	})
	if err != nil {
		return ""
	}

	return template.HTML(b.String())
}

// inlineStyle builds a sanitized style attribute with sorted declarations so
// the output is deterministic.
func inlineStyle(size int, overrides map[string]string) template.CSS {
	decls := map[string]string{
		"width":  fmt.Sprintf("%dpx", size),
		"height": fmt.Sprintf("%dpx", size),
	}
	for k, v := range overrides {
		prop := kebab(strings.TrimSpace(k))
		val := strings.TrimSpace(v)
		if !cssProperty.MatchString(prop) || !cssValue.MatchString(val) {
			continue
		}
		decls[prop] = val
	}

	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+decls[k])
	}

	return template.CSS(strings.Join(parts, ";"))
}

// kebab turns marginTop into margin-top.
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// spinnerFunc exposes Spinner to templates:
//
//	{{spinner}}                     defaults
//	{{spinner 20 false}}            size and centering
//	{{spinner 20 false "inherit"}}  plus color
func spinnerFunc(args ...any) (template.HTML, error) {
	var opts []SpinnerOption
	if len(args) > 3 {
		return "", fmt.Errorf("spinner: expected at most 3 arguments, got %d", len(args))
	}
	if len(args) > 0 {
		size, ok := args[0].(int)
		if !ok {
			return "", fmt.Errorf("spinner: size must be an int, got %T", args[0])
		}
		opts = append(opts, WithSize(size))
	}
	if len(args) > 1 {
		center, ok := args[1].(bool)
		if !ok {
			return "", fmt.Errorf("spinner: center must be a bool, got %T", args[1])
		}
		opts = append(opts, WithCenter(center))
	}
	if len(args) > 2 {
		color, ok := args[2].(string)
		if !ok {
			return "", fmt.Errorf("spinner: color must be a string, got %T", args[2])
		}
		opts = append(opts, WithColor(Color(color)))
	}
	return Spinner(opts...), nil
}
