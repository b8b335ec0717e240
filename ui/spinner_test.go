// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinner_Defaults(t *testing.T) {
	html := string(Spinner())

	assert.Contains(t, html, `class="spinner spinner--primary spinner--center"`)
	assert.Contains(t, html, `width="32" height="32"`)
	assert.Contains(t, html, `style="height:32px;width:32px"`)
	assert.Contains(t, html, `role="progressbar"`)
}

func TestSpinner_Options(t *testing.T) {
	html := string(Spinner(WithSize(20), WithCenter(false), WithColor(ColorSecondary)))

	assert.Contains(t, html, `class="spinner spinner--secondary"`)
	assert.NotContains(t, html, "spinner--center")
	assert.Contains(t, html, `width="20" height="20"`)
}

func TestSpinner_InvalidOptionsFallBack(t *testing.T) {
	tests := []struct {
		name string
		opt  SpinnerOption
	}{
		{"zero size", WithSize(0)},
		{"negative size", WithSize(-4)},
		{"unknown color", WithColor(Color("chartreuse"))},
		{"nil styles", WithStyles(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Spinner(), Spinner(tt.opt))
		})
	}
}

func TestSpinner_Styles(t *testing.T) {
	html := string(Spinner(WithStyles(map[string]string{
		"marginTop":  "8px",
		"color":      "#fff",
		"background": "url(javascript:alert(1))",
		"bad;key":    "1px",
	})))

	assert.Contains(t, html, `style="color:#fff;height:32px;margin-top:8px;width:32px"`)
	assert.NotContains(t, html, "javascript")
	assert.NotContains(t, html, "bad")
}

func TestSpinner_StylesOverrideSize(t *testing.T) {
	html := string(Spinner(WithStyles(map[string]string{"width": "100%"})))
	assert.Contains(t, html, "width:100%")
}

func TestSpinner_Deterministic(t *testing.T) {
	styles := map[string]string{"marginTop": "1px", "marginLeft": "2px", "opacity": "0.5"}
	first := Spinner(WithStyles(styles))
	for i := 0; i < 20; i++ {
		require.Equal(t, first, Spinner(WithStyles(styles)))
	}
}

func TestSpinnerFunc(t *testing.T) {
	html, err := spinnerFunc()
	require.NoError(t, err)
	assert.Equal(t, Spinner(), html)

	html, err = spinnerFunc(20, false, "inherit")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(html), "spinner--inherit"))

	_, err = spinnerFunc("big")
	assert.Error(t, err)

	_, err = spinnerFunc(1, true, "primary", "extra")
	assert.Error(t, err)
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "margin-top", kebab("marginTop"))
	assert.Equal(t, "webkit-transform", kebab("WebkitTransform"))
	assert.Equal(t, "color", kebab("color"))
}
