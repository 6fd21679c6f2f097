package utils

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
)

// Contains reports whether v is present in the slice.
func Contains[T comparable](s []T, v T) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// HasExtension checks whether the file name ends with one of the extensions, ignoring case.
func HasExtension(fname string, extensions []string) bool {
	return Contains(extensions, strings.ToLower(filepath.Ext(fname)))
}

// DetectContentType detects the MIME type of the data.
// Only the first 512 bytes are used to sniff the content type.
func DetectContentType(data []byte) string {
	return http.DetectContentType(data)
}

// IsSVG reports whether the data looks like an SVG document.
func IsSVG(data []byte) bool {
	ctype := DetectContentType(data)
	if !strings.Contains(ctype, "xml") && !strings.HasPrefix(ctype, "text/") {
		return false
	}
	return bytes.Contains(bytes.ToLower(data), []byte("<svg"))
}
