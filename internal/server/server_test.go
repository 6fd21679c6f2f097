package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/countryflags"
)

func newTestServer(t *testing.T, flags *countryflags.Flags) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(flags, logger, NewMetrics(prometheus.NewRegistry()), Options{
		Showcase:      []string{"us", "fr", "jp"},
		ShowcaseWidth: 150,
	})
	return srv.Routes()
}

func newDefaultServer(t *testing.T) (http.Handler, *countryflags.Flags) {
	t.Helper()
	flags, err := countryflags.NewDefault(context.Background())
	require.NoError(t, err)
	return newTestServer(t, flags), flags
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_SVG(t *testing.T) {
	h, _ := newDefaultServer(t)

	rec := serve(h, "/flags/US.svg?width=150")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "default-src 'none'; style-src 'unsafe-inline'", rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Body.String(), `width="150" height="75" viewBox="0 0 900 450"`)

	rec = serve(h, "/flags/gb-eng.svg")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, "/flags/zz.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_InvalidSize(t *testing.T) {
	h, _ := newDefaultServer(t)

	for _, target := range []string{
		"/flags/us.svg?width=abc",
		"/flags/us.svg?height=-10",
		"/api/flags/us?width=NaN",
	} {
		rec := serve(h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestServer_API(t *testing.T) {
	h, flags := newDefaultServer(t)

	rec := serve(h, "/api/flags")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []flagSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, flags.Len())

	rec = serve(h, "/api/flags/JP?height=100")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp flagResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "jp", resp.Code)
	assert.Equal(t, "Japan", resp.Name)
	assert.Equal(t, "\U0001F1EF\U0001F1F5", resp.Emoji)
	assert.Contains(t, resp.SVG, `width="200" height="100"`)
	assert.Equal(t, countryflags.DataURL(resp.SVG), resp.DataURL)

	rec = serve(h, "/api/flags/zz")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Search(t *testing.T) {
	h, _ := newDefaultServer(t)

	rec := serve(h, "/api/search?q=united")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []flagSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))

	codes := make([]string, 0, len(list))
	for _, f := range list {
		codes = append(codes, f.Code)
	}
	assert.Equal(t, []string{"ae", "gb", "us"}, codes)

	rec = serve(h, "/api/search?q=%20%20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestServer_Index(t *testing.T) {
	h, _ := newDefaultServer(t)

	rec := serve(h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Showcase")
	assert.Contains(t, body, `alt="Japan"`)
	assert.Contains(t, body, "data:image/svg+xml;base64,")

	rec = serve(h, "/?q=u")
	assert.Contains(t, rec.Body.String(), "at least two characters")

	rec = serve(h, "/?q=fran")
	assert.Contains(t, rec.Body.String(), `alt="France"`)

	rec = serve(h, "/?q=atlantis")
	assert.Contains(t, rec.Body.String(), "No flags found.")
}

func TestServer_Metrics(t *testing.T) {
	h, _ := newDefaultServer(t)

	serve(h, "/flags/us.svg")
	serve(h, "/flags/zz.svg")

	rec := serve(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `countryflags_lookups_total{result="found"} 1`)
	assert.Contains(t, body, `countryflags_lookups_total{result="not_found"} 1`)
	assert.Contains(t, body, `countryflags_request_duration_seconds_count{method="GET",route="/flags/{code}.svg"} 2`)
}

func TestServer_RemoteFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	src := countryflags.NewHTTPSource(ts.URL, []string{"xx"}, ts.Client())
	flags, err := countryflags.NewLazy(context.Background(), src)
	require.NoError(t, err)

	h := newTestServer(t, flags)
	rec := serve(h, "/api/flags/xx")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "500")
}
