package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/esimov/countryflags"
)

const svgCSP = "default-src 'none'; style-src 'unsafe-inline'"

type flagSummary struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}

type flagResponse struct {
	flagSummary
	SVG     string `json:"svg"`
	DataURL string `json:"dataUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type card struct {
	flagSummary
	Src template.URL
}

type indexPage struct {
	Query    string
	TooShort bool
	Results  []card
	Showcase []card
	All      []flagSummary
}

func summarize(f countryflags.Flag) flagSummary {
	emoji, _ := countryflags.Emoji(f.Code)
	return flagSummary{Code: f.Code, Name: f.Name, Emoji: emoji}
}

// parseSize reads the optional width and height query parameters.
func parseSize(r *http.Request) (*countryflags.SizeOptions, error) {
	q := r.URL.Query()
	if q.Get("width") == "" && q.Get("height") == "" {
		return nil, nil
	}
	var opt countryflags.SizeOptions
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"width", &opt.Width}, {"height", &opt.Height}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", p.name, v, countryflags.ErrInvalidArgument)
		}
		*p.dst = n
	}
	return &opt, nil
}

func (s *Server) lookup(ctx context.Context, code string, opt *countryflags.SizeOptions) (countryflags.Flag, bool, error) {
	f, ok, err := s.flags.Get(ctx, code, opt)
	s.metrics.ObserveLookup(ok, err)
	return f, ok, err
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	opt, err := parseSize(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, ok, err := s.lookup(r.Context(), chi.URLParam(r, "code"), opt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	// Assets may come from a remote source, keep their scripts from running on our origin.
	w.Header().Set("Content-Security-Policy", svgCSP)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write([]byte(f.SVG))
}

func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	opt, err := parseSize(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, ok, err := s.lookup(r.Context(), code, opt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("no flag found for %q", code)})
		return
	}
	writeJSON(w, http.StatusOK, flagResponse{
		flagSummary: summarize(f),
		SVG:         f.SVG,
		DataURL:     countryflags.DataURL(f.SVG),
	})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	codes := s.flags.Codes()
	list := make([]flagSummary, 0, len(codes))
	for _, code := range codes {
		emoji, _ := countryflags.Emoji(code)
		list = append(list, flagSummary{Code: code, Name: s.flags.Name(code), Emoji: emoji})
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	found, err := s.flags.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list := make([]flagSummary, 0, len(found))
	for _, f := range found {
		list = append(list, summarize(f))
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	size := &countryflags.SizeOptions{Width: s.opts.ShowcaseWidth}
	page := indexPage{Query: strings.TrimSpace(r.URL.Query().Get("q"))}

	switch {
	case page.Query == "":
		for _, code := range s.opts.Showcase {
			f, ok, err := s.lookup(ctx, code, size)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if ok {
				page.Showcase = append(page.Showcase, newCard(f))
			}
		}
	case len(page.Query) < MinQueryLen:
		page.TooShort = true
	default:
		found, err := s.flags.Search(ctx, page.Query)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		for _, f := range found {
			sized, ok, err := s.lookup(ctx, f.Code, size)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if ok {
				page.Results = append(page.Results, newCard(sized))
			}
		}
	}

	for _, code := range s.flags.Codes() {
		page.All = append(page.All, flagSummary{Code: code, Name: s.flags.Name(code)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", page); err != nil {
		s.logger.ErrorContext(ctx, "rendering the gallery failed", "error", err)
	}
}

func newCard(f countryflags.Flag) card {
	// The markup is referenced through a data URI instead of being inlined,
	// so scripts in a remote asset never run in the page.
	return card{flagSummary: summarize(f), Src: template.URL(countryflags.DataURL(f.SVG))}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status   int
		fetchErr *countryflags.FetchError
	)
	switch {
	case errors.Is(err, countryflags.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.As(err, &fetchErr):
		status = http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	s.logger.ErrorContext(r.Context(), "request failed",
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
