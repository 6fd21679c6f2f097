package countryflags

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAsset is returned when the SVG markup of a flag can't be transformed.
	ErrMalformedAsset = errors.New("countryflags: malformed svg asset")
	// ErrInvalidArgument is returned for arguments which are clearly wrong,
	// like negative sizes or a missing asset source.
	ErrInvalidArgument = errors.New("countryflags: invalid argument")
)

// FetchError reports that the asset of an existing country could not be retrieved.
// It is distinct from a missing country, which is not an error at all.
type FetchError struct {
	Code       string
	Location   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("countryflags: fetching %q from %s: unexpected status %d", e.Code, e.Location, e.StatusCode)
	}
	return fmt.Sprintf("countryflags: fetching %q from %s: %v", e.Code, e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
