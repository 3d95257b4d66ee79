/*
Package batch renders every gni command stream found under a directory.

Each file with the .gni extension is rendered by one of a pool of workers and
every finished frame is written as a PNG file next to it, named after the
stream with a four digit frame number appended.
*/
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/gni"
	"github.com/bodgit/gni/raster"
	"github.com/rs/zerolog"
)

// Extension is the file extension of command streams.
const Extension = ".gni"

// Batch renders directories of command streams.
type Batch struct {
	cfg       raster.Config
	workers   int
	keepGoing bool
	logger    zerolog.Logger
}

// New returns a Batch that renders with cfg using the given number of
// workers.
func New(cfg raster.Config, workers int, keepGoing bool, logger zerolog.Logger) *Batch {
	if workers <= 0 {
		workers = 1
	}
	return &Batch{
		cfg:       cfg,
		workers:   workers,
		keepGoing: keepGoing,
		logger:    logger,
	}
}

// FrameName returns the name of frame n rendered from file.
func FrameName(file string, n int) string {
	return fmt.Sprintf("%s-%04d.png", strings.TrimSuffix(file, filepath.Ext(file)), n)
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (b *Batch) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || filepath.Ext(file) != Extension {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// renderFile renders every frame in file, returning the number of frames.
func (b *Batch) renderFile(file string) (int, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	logger := b.logger.With().Str("file", file).Logger()

	r := raster.New(b.cfg, logger)
	r.OnFrame(func(n int, m *image.RGBA) error {
		return writePNG(FrameName(file, n), m)
	})

	skipped, err := r.Stream(gni.NewDecoder(f), b.keepGoing)
	if err != nil {
		return r.Frames(), fmt.Errorf("%s: %w", file, err)
	}
	if skipped > 0 {
		logger.Warn().Int("skipped", skipped).Msg("malformed lines skipped")
	}
	return r.Frames(), nil
}

func (b *Batch) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			n, err := b.renderFile(file)
			if err != nil {
				errc <- err
				return
			}
			b.logger.Info().Str("file", file).Int("frames", n).Msg("rendered")

			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Render renders every command stream under path.
func (b *Batch) Render(ctx context.Context, path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := b.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < b.workers; i++ {
		errc, err := b.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
