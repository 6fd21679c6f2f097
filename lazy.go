package countryflags

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is the lifetime of a lazily fetched flag.
const DefaultCacheTTL = 30 * time.Minute

// store is the read side used by Flags. It is implemented by the eager
// Registry and by lazyStore.
type store interface {
	codes() []string
	has(code string) bool
	lookup(ctx context.Context, code string) (Flag, bool, error)
}

// eagerStore adapts a fully populated Registry.
type eagerStore struct {
	r *Registry
}

func (s eagerStore) codes() []string      { return s.r.Codes() }
func (s eagerStore) has(code string) bool { return s.r.Has(code) }

func (s eagerStore) lookup(_ context.Context, code string) (Flag, bool, error) {
	f, ok := s.r.Get(code)
	return f, ok, nil
}

// lazyStore knows the codes up front and fetches each flag on first use.
// Fetched flags are cached for the configured TTL; concurrent fetches of the
// same code share one request.
type lazyStore struct {
	src   Source
	names NameTable
	list  []string
	known map[string]struct{}
	cache *gocache.Cache
	group singleflight.Group
}

func newLazyStore(ctx context.Context, src Source, names NameTable, ttl time.Duration) (*lazyStore, error) {
	codes, err := src.Codes(ctx)
	if err != nil {
		return nil, err
	}
	codes = dedupe(codes)

	known := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		known[c] = struct{}{}
	}
	cleanup := ttl * 2
	if ttl <= 0 {
		cleanup = 0
	}
	return &lazyStore{
		src:   src,
		names: names,
		list:  codes,
		known: known,
		cache: gocache.New(ttl, cleanup),
	}, nil
}

func (s *lazyStore) codes() []string {
	codes := make([]string, len(s.list))
	copy(codes, s.list)
	return codes
}

func (s *lazyStore) has(code string) bool {
	_, ok := s.known[normalize(code)]
	return ok
}

func (s *lazyStore) lookup(ctx context.Context, code string) (Flag, bool, error) {
	code = normalize(code)
	if _, ok := s.known[code]; !ok {
		return Flag{}, false, nil
	}
	if v, found := s.cache.Get(code); found {
		if f, ok := v.(Flag); ok {
			return f, true, nil
		}
	}

	ch := s.group.DoChan(code, func() (any, error) {
		// The fetch outlives a single caller, so it must not be
		// canceled by the context of whoever started it.
		data, err := s.src.Load(context.WithoutCancel(ctx), code)
		if err != nil {
			return nil, err
		}
		if err := checkAsset(code, data); err != nil {
			return nil, err
		}
		f := Flag{Code: code, Name: s.names.Lookup(code), SVG: string(data)}
		s.cache.Set(code, f, gocache.DefaultExpiration)
		return f, nil
	})

	select {
	case <-ctx.Done():
		return Flag{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Flag{}, false, res.Err
		}
		return res.Val.(Flag), true, nil
	}
}
