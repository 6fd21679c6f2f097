package countryflags

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/esimov/countryflags/utils"
)

// DefaultHTTPTimeout bounds a single asset download.
const DefaultHTTPTimeout = 10 * time.Second

// HTTPSource downloads flags from <base>/<code>.svg.
// It is meant to be used with NewLazy, which fetches each flag on first use.
type HTTPSource struct {
	base   string
	codes  []string
	client *http.Client
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource returns a source fetching the given codes relative to baseURL.
// A nil client defaults to an http.Client with DefaultHTTPTimeout.
func NewHTTPSource(baseURL string, codes []string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = normalize(c); c != "" {
			normalized = append(normalized, c)
		}
	}
	return &HTTPSource{
		base:   strings.TrimRight(baseURL, "/"),
		codes:  normalized,
		client: client,
	}
}

// Codes returns the codes the source was configured with.
func (h *HTTPSource) Codes(ctx context.Context) ([]string, error) {
	codes := make([]string, len(h.codes))
	copy(codes, h.codes)
	return codes, nil
}

// Load downloads the SVG markup of code.
func (h *HTTPSource) Load(ctx context.Context, code string) ([]byte, error) {
	code = normalize(code)
	uri := h.base + "/" + url.PathEscape(code) + svgExt

	data, status, err := utils.Fetch(ctx, h.client, uri)
	if err != nil {
		return nil, &FetchError{Code: code, Location: uri, Err: err}
	}
	if status != http.StatusOK {
		return nil, &FetchError{Code: code, Location: uri, StatusCode: status}
	}
	if !utils.IsSVG(data) {
		return nil, fmt.Errorf("flag %q: the downloaded file from %s is not an svg document: %w", code, uri, ErrMalformedAsset)
	}
	return data, nil
}
