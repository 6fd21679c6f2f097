package countryflags

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Intrinsic canvas of the bundled assets.
const (
	DefaultWidth  = 900
	DefaultHeight = 450
)

var (
	// svgOpenTag matches the opening tag of the root svg element.
	svgOpenTag = regexp.MustCompile(`(?is)<svg\b[^>]*>`)
	// sizeAttr matches the root element attributes rewritten by Resize.
	sizeAttr = regexp.MustCompile(`(?is)\s+(?:width|height|viewBox)\s*=\s*(?:"[^"]*"|'[^']*')`)
)

// validate checks that the requested dimensions are usable.
func (o *SizeOptions) validate() error {
	if o == nil {
		return nil
	}
	for _, v := range []float64{o.Width, o.Height} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("size %v: %w", v, ErrInvalidArgument)
		}
	}
	return nil
}

// Dimensions returns the output width and height for a flag of the given
// intrinsic size. The 2:1 ratio of the flag set is always enforced:
// a requested width sets the height to width/2, a requested height sets
// the width to height*2. Without any option the intrinsic size is used.
func (o *SizeOptions) Dimensions(w0, h0 float64) (width, height float64) {
	switch {
	case o != nil && o.Width > 0:
		return o.Width, o.Width / 2
	case o != nil && o.Height > 0:
		return o.Height * 2, o.Height
	default:
		return w0, h0
	}
}

// Resize rewrites the width, height and viewBox attributes of the root svg tag.
// The viewBox always spans the intrinsic w0 x h0 canvas, so the drawing scales
// without loss. Every other attribute and the nested markup are left untouched.
// It returns an error wrapping ErrMalformedAsset if no svg tag is found.
func Resize(svg string, w0, h0 float64, opt *SizeOptions) (string, error) {
	if w0 <= 0 || h0 <= 0 || math.IsInf(w0, 0) || math.IsInf(h0, 0) {
		return "", fmt.Errorf("intrinsic size %vx%v: %w", w0, h0, ErrInvalidArgument)
	}
	if err := opt.validate(); err != nil {
		return "", err
	}

	loc := svgOpenTag.FindStringIndex(svg)
	if loc == nil {
		return "", fmt.Errorf("no <svg> element found: %w", ErrMalformedAsset)
	}
	width, height := opt.Dimensions(w0, h0)

	tag := sizeAttr.ReplaceAllString(svg[loc[0]:loc[1]], "")
	attrs := fmt.Sprintf(` width="%s" height="%s" viewBox="0 0 %s %s"`,
		formatNum(width), formatNum(height), formatNum(w0), formatNum(h0),
	)

	var b strings.Builder
	b.Grow(len(svg) + len(attrs))
	b.WriteString(svg[:loc[0]])
	b.WriteString(tag[:len("<svg")])
	b.WriteString(attrs)
	b.WriteString(tag[len("<svg"):])
	b.WriteString(svg[loc[1]:])

	return b.String(), nil
}

// formatNum formats v in its shortest decimal representation.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
