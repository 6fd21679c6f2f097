package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxDownloadSize bounds the size of a downloaded asset.
const maxDownloadSize = 4 << 20

// ErrTooLarge is returned when a response body exceeds maxDownloadSize.
var ErrTooLarge = errors.New("response body too large")

// Fetch downloads the resource found at uri and returns its body together with
// the response status code. The body is read only for successful responses.
func Fetch(ctx context.Context, client *http.Client, uri string) ([]byte, int, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to create the request for URI %s: %w", uri, err)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to download file from URI %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		// Drain the body so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxDownloadSize))
		return nil, res.StatusCode, nil
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadSize+1))
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("unable to read response body: %w", err)
	}
	if len(data) > maxDownloadSize {
		return nil, res.StatusCode, fmt.Errorf("downloading %s: exceeds %d bytes: %w", uri, maxDownloadSize, ErrTooLarge)
	}
	return data, res.StatusCode, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
