package countryflags

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// dataURLPrefix is prepended to the base64 encoded SVG markup by DataURL.
const dataURLPrefix = "data:image/svg+xml;base64,"

// Flags answers the lookup, search and formatting queries over a set of flags.
// It is read-only once constructed and safe for concurrent use.
type Flags struct {
	store   store
	names   NameTable
	width   float64
	height  float64
	workers int
}

// Option configures Flags.
type Option func(*options)

type options struct {
	names    NameTable
	width    float64
	height   float64
	workers  int
	cacheTTL time.Duration
}

// WithNames sets the table the display names are taken from.
// The bundled table is used by default.
func WithNames(names NameTable) Option {
	return func(o *options) { o.names = names }
}

// WithIntrinsicSize sets the original canvas size of the assets (900x450 by default).
func WithIntrinsicSize(width, height float64) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// WithConcurrency limits the number of assets loaded at the same time.
func WithConcurrency(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithCacheTTL sets how long a lazily fetched flag is kept. It has no effect on New.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.cacheTTL = ttl }
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{
		names:    DefaultNames(),
		width:    DefaultWidth,
		height:   DefaultHeight,
		workers:  runtime.NumCPU(),
		cacheTTL: DefaultCacheTTL,
	}
	for _, fn := range opts {
		fn(o)
	}
	if o.width <= 0 || o.height <= 0 || math.IsInf(o.width, 0) || math.IsInf(o.height, 0) {
		return nil, fmt.Errorf("intrinsic size %vx%v: %w", o.width, o.height, ErrInvalidArgument)
	}
	if o.workers <= 0 {
		o.workers = runtime.NumCPU()
	}
	return o, nil
}

// New reads every flag of src up front. It either returns a complete set of
// flags or fails without returning a partially populated one.
func New(ctx context.Context, src Source, opts ...Option) (*Flags, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	r, err := newRegistry(ctx, src, o.names, o.workers)
	if err != nil {
		return nil, fmt.Errorf("unable to build the flag registry: %w", err)
	}
	return newFlags(eagerStore{r: r}, o), nil
}

// NewLazy lists the codes of src up front but fetches each flag on first use.
// Fetched flags are cached; concurrent fetches of the same flag are merged.
func NewLazy(ctx context.Context, src Source, opts ...Option) (*Flags, error) {
	if src == nil {
		return nil, fmt.Errorf("nil source: %w", ErrInvalidArgument)
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	s, err := newLazyStore(ctx, src, o.names, o.cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("unable to list the flag codes: %w", err)
	}
	return newFlags(s, o), nil
}

// NewDefault returns the bundled flags with the bundled names.
func NewDefault(ctx context.Context) (*Flags, error) {
	return New(ctx, Embedded())
}

func newFlags(s store, o *options) *Flags {
	return &Flags{
		store:   s,
		names:   o.names,
		width:   o.width,
		height:  o.height,
		workers: o.workers,
	}
}

// Get returns the flag of code, ignoring case. If opt is not nil the SVG is
// resized accordingly; the stored flag is never modified.
// The boolean result is false if no flag exists for code, which is not an error.
// Errors are reserved for failed fetches (*FetchError), malformed assets
// (ErrMalformedAsset) and invalid size options (ErrInvalidArgument).
func (f *Flags) Get(ctx context.Context, code string, opt *SizeOptions) (Flag, bool, error) {
	if err := opt.validate(); err != nil {
		return Flag{}, false, err
	}
	flag, ok, err := f.store.lookup(ctx, normalize(code))
	if err != nil || !ok {
		return Flag{}, false, err
	}
	if opt == nil {
		return flag, true, nil
	}
	return f.resize(flag, opt)
}

func (f *Flags) resize(flag Flag, opt *SizeOptions) (Flag, bool, error) {
	svg, err := Resize(flag.SVG, f.width, f.height, opt)
	if err != nil {
		return Flag{}, false, fmt.Errorf("flag %q: %w", flag.Code, err)
	}
	flag.SVG = svg
	return flag, true, nil
}

// All returns every flag, unresized, in ascending code order.
func (f *Flags) All(ctx context.Context) ([]Flag, error) {
	return f.collect(ctx, f.store.codes())
}

// Search returns the flags whose code or name contains query, ignoring case.
// A blank query matches nothing. Results keep the ascending code order.
func (f *Flags) Search(ctx context.Context, query string) ([]Flag, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Flag{}, nil
	}

	var matches []string
	for _, code := range f.store.codes() {
		if strings.Contains(code, query) ||
			strings.Contains(strings.ToLower(f.names.Lookup(code)), query) {
			matches = append(matches, code)
		}
	}
	return f.collect(ctx, matches)
}

// collect resolves the flags of codes, keeping their order.
func (f *Flags) collect(ctx context.Context, codes []string) ([]Flag, error) {
	flags := make([]Flag, len(codes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, code := range codes {
		g.Go(func() error {
			flag, ok, err := f.store.lookup(ctx, code)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("flag %q vanished from the store: %w", code, ErrMalformedAsset)
			}
			flags[i] = flag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flags, nil
}

// DataURL returns the (optionally resized) flag of code as a base64 encoded
// data:image/svg+xml URI. The boolean result is false if no flag exists for code.
func (f *Flags) DataURL(ctx context.Context, code string, opt *SizeOptions) (string, bool, error) {
	flag, ok, err := f.Get(ctx, code, opt)
	if err != nil || !ok {
		return "", false, err
	}
	return DataURL(flag.SVG), true, nil
}

// DataURL encodes svg as a base64 data:image/svg+xml URI.
func DataURL(svg string) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString([]byte(svg))
}

// Codes returns every known country code in ascending order.
func (f *Flags) Codes() []string {
	return f.store.codes()
}

// Has reports whether a flag exists for code, ignoring case.
// Unlike ValidCode it checks existence, not the shape of the code.
func (f *Flags) Has(code string) bool {
	return f.store.has(code)
}

// Name returns the display name of code, or the uppercased code if the name is unknown.
func (f *Flags) Name(code string) string {
	return f.names.Lookup(code)
}

// Len returns the number of known flags.
func (f *Flags) Len() int {
	return len(f.store.codes())
}
