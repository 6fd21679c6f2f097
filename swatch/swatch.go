// Package swatch extracts the color palette of a flag from its SVG markup
// and renders it as a raster color strip.
//
// Only plain colors are taken into account: hex values (#rgb, #rrggbb) and
// a few named colors used in flag artwork. Gradients and pattern references
// are skipped.
package swatch

import (
	"errors"
	"image"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/countryflags/utils"
)

// ErrNoColors is returned when a strip is requested for an empty palette.
var ErrNoColors = errors.New("swatch: no colors to render")

var paintAttr = regexp.MustCompile(`(?i)(?:^|[\s;"'])(?:fill|stroke|stop-color)\s*[=:]\s*["']?\s*(#[0-9a-f]{3,6}\b|[a-z]+)`)

var namedColors = map[string]color.NRGBA{
	"black":  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"white":  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"red":    {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"green":  {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"blue":   {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"yellow": {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	"orange": {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"gold":   {R: 0xff, G: 0xd7, B: 0x00, A: 0xff},
	"navy":   {R: 0x00, G: 0x00, B: 0x80, A: 0xff},
}

// Extract returns the distinct colors painted by the fill, stroke and
// stop-color attributes of svg, in order of first appearance.
func Extract(svg string) []color.NRGBA {
	var (
		colors []color.NRGBA
		seen   = make(map[color.NRGBA]struct{})
	)
	for _, m := range paintAttr.FindAllStringSubmatch(svg, -1) {
		c, ok := ParseColor(m[1])
		if !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	}
	return colors
}

// ParseColor converts a hex (#rgb or #rrggbb) or named color to color.NRGBA.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

// Render draws the colors as vertical bands of equal width on a width x height strip.
// The last band absorbs the remainder of the division.
func Render(colors []color.NRGBA, width, height int) (*image.NRGBA, error) {
	if len(colors) == 0 {
		return nil, ErrNoColors
	}
	width = utils.Max(width, len(colors))
	height = utils.Max(height, 1)

	dst := imaging.New(width, height, color.Transparent)
	bandWidth := width / len(colors)

	for i, c := range colors {
		x := i * bandWidth
		w := bandWidth
		if i == len(colors)-1 {
			w = width - x
		}
		dst = imaging.Paste(dst, imaging.New(w, height, c), image.Pt(x, 0))
	}
	return dst, nil
}
