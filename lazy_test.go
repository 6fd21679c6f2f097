package countryflags

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/countryflags/utils"
)

// countingSource counts the loads and optionally blocks them until release is closed.
type countingSource struct {
	Source
	loads   atomic.Int32
	release chan struct{}
}

func (c *countingSource) Load(ctx context.Context, code string) ([]byte, error) {
	c.loads.Add(1)
	if c.release != nil {
		<-c.release
	}
	return c.Source.Load(ctx, code)
}

func newCountingSource(blocking bool) *countingSource {
	src := &countingSource{
		Source: NewDirSource(fstest.MapFS{
			"us.svg": {Data: []byte(tinySVG)},
			"fr.svg": {Data: []byte(tinySVG)},
		}, "."),
	}
	if blocking {
		src.release = make(chan struct{})
	}
	return src
}

func TestLazy_CachesFlags(t *testing.T) {
	src := newCountingSource(false)
	flags, err := NewLazy(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []string{"fr", "us"}, flags.Codes())
	assert.Equal(t, int32(0), src.loads.Load())

	for i := 0; i < 3; i++ {
		f, ok, err := flags.Get(context.Background(), "US", &SizeOptions{Width: float64(100 * (i + 1))})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "United States", f.Name)
	}
	assert.Equal(t, int32(1), src.loads.Load())

	_, ok, err := flags.Get(context.Background(), "zz", nil)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int32(1), src.loads.Load())
}

func TestLazy_MergesConcurrentFetches(t *testing.T) {
	src := newCountingSource(true)
	flags, err := NewLazy(context.Background(), src)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := flags.Get(context.Background(), "fr", nil)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.loads.Load())
}

func TestLazy_CanceledCallerDoesNotAbortFetch(t *testing.T) {
	src := newCountingSource(true)
	flags, err := NewLazy(context.Background(), src)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok, err := flags.Get(ctx, "us", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ok)

	close(src.release)
	f, ok, err := flags.Get(context.Background(), "us", nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tinySVG, f.SVG)
	assert.Equal(t, int32(1), src.loads.Load())
}

func newFlagServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/flags/us.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(tinySVG))
	})
	mux.HandleFunc("/flags/fr.svg", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/flags/de.svg", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("just some text"))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTPSource_Load(t *testing.T) {
	ts := newFlagServer(t)
	src := NewHTTPSource(ts.URL+"/flags/", []string{"US", "fr", "de", "jp", " "}, ts.Client())

	codes, err := src.Codes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"us", "fr", "de", "jp"}, codes)

	data, err := src.Load(context.Background(), "us")
	require.NoError(t, err)
	assert.Equal(t, tinySVG, string(data))

	_, err = src.Load(context.Background(), "fr")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
	assert.Equal(t, ts.URL+"/flags/fr.svg", fetchErr.Location)

	_, err = src.Load(context.Background(), "jp")
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)

	_, err = src.Load(context.Background(), "de")
	assert.ErrorIs(t, err, ErrMalformedAsset)
}

func TestHTTPSource_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewHTTPSource(url, []string{"us"}, nil).Load(context.Background(), "us")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
	assert.Error(t, fetchErr.Unwrap())
}

func TestLazy_HTTPSource(t *testing.T) {
	ts := newFlagServer(t)
	src := NewHTTPSource(ts.URL+"/flags", []string{"us", "fr"}, ts.Client())
	flags, err := NewLazy(context.Background(), src, WithCacheTTL(time.Minute))
	require.NoError(t, err)

	f, ok, err := flags.Get(context.Background(), "us", &SizeOptions{Width: 90})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, f.SVG, `width="90" height="45"`)

	// A known country whose asset can't be fetched is an error, not an absence.
	_, ok, err = flags.Get(context.Background(), "fr", nil)
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.False(t, ok)

	_, err = flags.All(context.Background())
	assert.ErrorAs(t, err, &fetchErr)

	found, err := flags.Search(context.Background(), "united")
	require.NoError(t, err)
	assert.Equal(t, []string{"us"}, flagCodes(found))
}

func TestLazy_OversizedDownload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="900" height="450"><!--`))
		_, _ = w.Write([]byte(strings.Repeat("a", 5<<20)))
		_, _ = w.Write([]byte(`--><rect/></svg>`))
	}))
	defer ts.Close()

	src := NewHTTPSource(ts.URL, []string{"us"}, ts.Client())
	_, err := src.Load(context.Background(), "us")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, utils.ErrTooLarge)

	flags, err := NewLazy(context.Background(), src)
	require.NoError(t, err)

	f, ok, err := flags.Get(context.Background(), "us", nil)
	assert.ErrorIs(t, err, utils.ErrTooLarge)
	assert.False(t, ok)
	assert.Equal(t, Flag{}, f)
}

func TestLazy_MalformedAsset(t *testing.T) {
	src := NewDirSource(fstest.MapFS{
		"us.svg": {Data: []byte(tinySVG)},
		"xx.svg": {Data: []byte(`<html>not a flag</html>`)},
	}, ".")
	flags, err := NewLazy(context.Background(), src)
	require.NoError(t, err)
	require.True(t, flags.Has("xx"))

	f, ok, err := flags.Get(context.Background(), "xx", nil)
	assert.ErrorIs(t, err, ErrMalformedAsset)
	assert.False(t, ok)
	assert.Equal(t, Flag{}, f)

	// A malformed asset is never cached as a valid flag.
	_, ok, err = flags.Get(context.Background(), "xx", &SizeOptions{Width: 10})
	assert.ErrorIs(t, err, ErrMalformedAsset)
	assert.False(t, ok)

	_, ok, err = flags.Get(context.Background(), "us", nil)
	assert.NoError(t, err)
	assert.True(t, ok)
}
