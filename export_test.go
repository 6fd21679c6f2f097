package countryflags

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_WritesFiles(t *testing.T) {
	flags := newDefault(t)
	dst := filepath.Join(t.TempDir(), "out")

	var (
		mu      sync.Mutex
		results = make(map[string]ExportResult)
	)
	err := flags.Export(context.Background(), ExportOps{
		Dst:     dst,
		Codes:   []string{"US", "jp", "fr"},
		Size:    &SizeOptions{Width: 300},
		Workers: 2,
	}, func(res ExportResult) {
		mu.Lock()
		defer mu.Unlock()
		results[res.Code] = res
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for code, res := range results {
		assert.NoError(t, res.Err)
		assert.Equal(t, filepath.Join(dst, code+".svg"), res.Path)

		data, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `width="300" height="150"`)
	}
}

func TestExport_AllFlags(t *testing.T) {
	flags := newDefault(t)
	dst := t.TempDir()

	require.NoError(t, flags.Export(context.Background(), ExportOps{Dst: dst}, nil))

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Len(t, entries, flags.Len())
}

func TestExport_ReportsFailures(t *testing.T) {
	flags := newDefault(t)
	dst := t.TempDir()

	var failed []string
	err := flags.Export(context.Background(), ExportOps{
		Dst:   dst,
		Codes: []string{"de", "zz"},
	}, func(res ExportResult) {
		if res.Err != nil {
			failed = append(failed, res.Code)
		}
	})
	assert.ErrorContains(t, err, `no flag found for "zz"`)
	assert.Equal(t, []string{"zz"}, failed)
	assert.FileExists(t, filepath.Join(dst, "de.svg"))
}

func TestExport_InvalidOptions(t *testing.T) {
	flags := newDefault(t)

	err := flags.Export(context.Background(), ExportOps{Dst: ""}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = flags.Export(context.Background(), ExportOps{Dst: t.TempDir(), Size: &SizeOptions{Height: -1}}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// staticSource serves the same markup for a fixed list of codes.
type staticSource []string

func (s staticSource) Codes(context.Context) ([]string, error) { return s, nil }

func (s staticSource) Load(context.Context, string) ([]byte, error) { return []byte(tinySVG), nil }

func TestExport_RejectsPathLikeCodes(t *testing.T) {
	flags, err := NewLazy(context.Background(), staticSource{"../evil", `a\b`, "ok"})
	require.NoError(t, err)

	root := t.TempDir()
	dst := filepath.Join(root, "out")

	failed := make(map[string]error)
	err = flags.Export(context.Background(), ExportOps{Dst: dst}, func(res ExportResult) {
		if res.Err != nil {
			failed[res.Code] = res.Err
		}
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	require.Len(t, failed, 2)
	assert.ErrorIs(t, failed["../evil"], ErrInvalidArgument)
	assert.ErrorIs(t, failed[`a\b`], ErrInvalidArgument)

	assert.NoFileExists(t, filepath.Join(root, "evil.svg"))
	assert.FileExists(t, filepath.Join(dst, "ok.svg"))
}
