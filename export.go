package countryflags

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/esimov/countryflags/utils"
)

// maxWorkers sets the maximum number of concurrently running export workers.
const maxWorkers = 20

// ExportOps describes a bulk export of flags into a directory.
type ExportOps struct {
	// Dst is the destination directory. It is created if missing.
	Dst string
	// Codes selects the flags to export. Empty means every flag.
	Codes []string
	// Size resizes the exported flags when not nil.
	Size *SizeOptions
	// Workers is the number of files written concurrently.
	Workers int
}

// ExportResult holds the outcome of exporting a single flag.
type ExportResult struct {
	Code string
	Path string
	Err  error
}

// Export writes the selected flags as <code>.svg files into op.Dst.
// The files are written by a pool of workers; report, if not nil, is called
// from the calling goroutine once per flag. Unknown codes are reported as
// failures. Export returns the first failure after every flag was processed.
func (f *Flags) Export(ctx context.Context, op ExportOps, report func(ExportResult)) error {
	if err := op.Size.validate(); err != nil {
		return err
	}
	if op.Dst == "" {
		return fmt.Errorf("empty export destination: %w", ErrInvalidArgument)
	}
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	// Limit the concurrently running workers to maxWorkers.
	if op.Workers <= 0 {
		op.Workers = runtime.NumCPU()
	}
	op.Workers = utils.Clamp(op.Workers, 1, maxWorkers)

	codes := op.Codes
	if len(codes) == 0 {
		codes = f.Codes()
	}

	done := make(chan struct{})
	defer close(done)

	ch := make(chan ExportResult)
	paths := produceCodes(done, codes)

	var g errgroup.Group
	for i := 0; i < op.Workers; i++ {
		g.Go(func() error {
			f.consumer(ctx, op, done, paths, ch)
			return nil
		})
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		_ = g.Wait()
	}()

	var firstErr error
	for res := range ch {
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
		if report != nil {
			report(res)
		}
	}
	return firstErr
}

// produceCodes sends the codes on the returned channel until they run out
// or the done channel is closed.
func produceCodes(done <-chan struct{}, codes []string) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, code := range codes {
			select {
			case <-done:
				return
			case out <- code:
			}
		}
	}()
	return out
}

// consumer reads the codes from the codes channel, writes the matching flags
// and sends the results on the res channel.
func (f *Flags) consumer(
	ctx context.Context,
	op ExportOps,
	done <-chan struct{},
	codes <-chan string,
	res chan<- ExportResult,
) {
	for code := range codes {
		r := f.exportOne(ctx, op, code)

		select {
		case <-done:
			return
		case res <- r:
		}
	}
}

// exportOne writes the flag of code into the destination directory.
func (f *Flags) exportOne(ctx context.Context, op ExportOps, code string) ExportResult {
	code = normalize(code)
	if code == "" || code == "." || strings.Contains(code, "..") || strings.ContainsAny(code, `/\`) {
		return ExportResult{Code: code, Err: fmt.Errorf("invalid file name for code %q: %w", code, ErrInvalidArgument)}
	}
	dst := filepath.Join(op.Dst, code+svgExt)
	res := ExportResult{Code: code, Path: dst}

	flag, ok, err := f.Get(ctx, code, op.Size)
	switch {
	case err != nil:
		res.Err = err
	case !ok:
		res.Err = fmt.Errorf("no flag found for %q", code)
	default:
		if err := os.WriteFile(dst, []byte(flag.SVG), 0644); err != nil {
			res.Err = fmt.Errorf("unable to write the flag file: %w", err)
		}
	}
	return res
}
