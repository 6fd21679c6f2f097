package countryflags

import (
	"strings"
	"unicode/utf8"
)

// regionalIndicatorOffset is the distance between an uppercase ASCII letter
// and its Regional Indicator Symbol counterpart (U+1F1E6 - 'A').
const regionalIndicatorOffset = 127397

// Flag holds the country code, the display name and the SVG markup of a flag.
type Flag struct {
	Code string `json:"code"`
	Name string `json:"name"`
	SVG  string `json:"svg"`
}

// SizeOptions describes the requested pixel size of a flag.
// A zero value means the dimension is not set. Width takes precedence over Height.
type SizeOptions struct {
	Width  float64
	Height float64
}

// normalize returns the registry key for a country code.
func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// ValidCode reports whether code is made up of exactly two ASCII letters.
// It checks the shape only, not whether a flag exists for the code.
func ValidCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// Emoji returns the flag emoji of a two letter country code, built from
// the Regional Indicator Symbols of its letters. It returns false for
// codes which are not made up of exactly two ASCII letters.
func Emoji(code string) (string, bool) {
	if !ValidCode(code) {
		return "", false
	}
	code = strings.ToUpper(code)

	buf := make([]byte, 0, 2*utf8.UTFMax)
	for i := 0; i < len(code); i++ {
		buf = utf8.AppendRune(buf, rune(code[i])+regionalIndicatorOffset)
	}
	return string(buf), true
}
