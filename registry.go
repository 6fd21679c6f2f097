package countryflags

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Registry is an immutable, in-memory mapping from country code to Flag.
// It is fully populated on construction and safe for concurrent reads.
type Registry struct {
	codes []string
	flags map[string]Flag
}

// NewRegistry reads every asset of src and builds the registry.
// The construction is all or nothing: the first load error aborts it.
// Names are taken from names, falling back to the uppercased code.
func NewRegistry(ctx context.Context, src Source, names NameTable) (*Registry, error) {
	return newRegistry(ctx, src, names, runtime.NumCPU())
}

func newRegistry(ctx context.Context, src Source, names NameTable, workers int) (*Registry, error) {
	if src == nil {
		return nil, fmt.Errorf("nil source: %w", ErrInvalidArgument)
	}
	codes, err := src.Codes(ctx)
	if err != nil {
		return nil, err
	}
	codes = dedupe(codes)

	svgs := make([]string, len(codes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, code := range codes {
		g.Go(func() error {
			data, err := src.Load(ctx, code)
			if err != nil {
				return err
			}
			if err := checkAsset(code, data); err != nil {
				return err
			}
			svgs[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Registry{
		codes: codes,
		flags: make(map[string]Flag, len(codes)),
	}
	for i, code := range codes {
		r.flags[code] = Flag{
			Code: code,
			Name: names.Lookup(code),
			SVG:  svgs[i],
		}
	}
	return r, nil
}

// Codes returns every country code in ascending order.
func (r *Registry) Codes() []string {
	codes := make([]string, len(r.codes))
	copy(codes, r.codes)
	return codes
}

// Has reports whether a flag exists for code, ignoring case.
func (r *Registry) Has(code string) bool {
	_, ok := r.flags[normalize(code)]
	return ok
}

// Get returns the stored flag of code, ignoring case.
func (r *Registry) Get(code string) (Flag, bool) {
	f, ok := r.flags[normalize(code)]
	return f, ok
}

// Len returns the number of flags in the registry.
func (r *Registry) Len() int { return len(r.codes) }

// dedupe normalizes the codes, drops duplicates and empty values and sorts the result.
func dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = normalize(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
