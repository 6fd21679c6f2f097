package countryflags

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// svgExt is the file extension of the flag assets.
const svgExt = ".svg"

// Source supplies the raw SVG markup of the flags, keyed by country code.
// Implementations must be safe for concurrent use.
type Source interface {
	// Codes lists the lowercase country codes the source can supply.
	Codes(ctx context.Context) ([]string, error)
	// Load returns the SVG markup of a single flag.
	Load(ctx context.Context, code string) ([]byte, error)
}

// DirSource reads flags stored as <code>.svg files in a directory of a file system.
// Use os.DirFS for a local folder or Embedded for the bundled assets.
type DirSource struct {
	fsys fs.FS
	dir  string

	once  sync.Once
	files map[string]string // code -> file name
	err   error
}

var _ Source = (*DirSource)(nil)

// NewDirSource returns a source reading the SVG files found in dir.
func NewDirSource(fsys fs.FS, dir string) *DirSource {
	return &DirSource{fsys: fsys, dir: dir}
}

// index lists the directory once and maps every code to its file name.
func (d *DirSource) index() (map[string]string, error) {
	d.once.Do(func() {
		entries, err := fs.ReadDir(d.fsys, d.dir)
		if err != nil {
			d.err = &FetchError{Location: d.dir, Err: err}
			return
		}
		d.files = make(map[string]string, len(entries))
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			name := e.Name()
			if !strings.EqualFold(path.Ext(name), svgExt) {
				continue
			}
			code := normalize(strings.TrimSuffix(name, path.Ext(name)))
			if code == "" {
				continue
			}
			d.files[code] = name
		}
	})
	return d.files, d.err
}

// Codes returns the codes of every SVG file in ascending order.
func (d *DirSource) Codes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := d.index()
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(files))
	for code := range files {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes, nil
}

// Load reads the SVG file of code.
func (d *DirSource) Load(ctx context.Context, code string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := d.index()
	if err != nil {
		return nil, err
	}
	code = normalize(code)
	name, ok := files[code]
	if !ok {
		return nil, &FetchError{Code: code, Location: d.dir, Err: fs.ErrNotExist}
	}
	fname := path.Join(d.dir, name)
	data, err := fs.ReadFile(d.fsys, fname)
	if err != nil {
		return nil, &FetchError{Code: code, Location: fname, Err: err}
	}
	return data, nil
}

// checkAsset verifies that the loaded markup looks like an SVG document.
func checkAsset(code string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("flag %q: empty asset: %w", code, ErrMalformedAsset)
	}
	if svgOpenTag.Find(data) == nil {
		return fmt.Errorf("flag %q: no <svg> element found: %w", code, ErrMalformedAsset)
	}
	return nil
}
