package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ssargent/polyparser/pkg/convert"
)

// Converter converts each file reported by a Watcher.
type Converter struct {
	opts      convert.Options
	outputDir string
	log       *slog.Logger

	mu       sync.Mutex
	produced map[string]struct{}
}

// NewConverter writes results into outputDir, or next to each input when
// outputDir is empty.
func NewConverter(outputDir string, opts convert.Options) *Converter {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Converter{
		opts:      opts,
		outputDir: outputDir,
		log:       log.With("component", "watch"),
		produced:  make(map[string]struct{}),
	}
}

func (c *Converter) outputPath(in string) string {
	out := convert.OutputPath(in, c.opts.Format)
	if c.outputDir != "" {
		out = filepath.Join(c.outputDir, filepath.Base(out))
	}
	return out
}

// takeProduced reports whether path is a file this converter wrote,
// forgetting it so later edits are converted again.
func (c *Converter) takeProduced(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.produced[path]; ok {
		delete(c.produced, path)
		return true
	}
	return false
}

// Convert converts one file. It returns a nil Outcome when path is one of
// the converter's own outputs.
func (c *Converter) Convert(path string) (*convert.Outcome, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if c.takeProduced(abs) {
		c.log.Debug("skipping own output", "path", path)
		return nil, nil
	}

	opts := c.opts
	opts.Output = c.outputPath(path)
	if outAbs, err := filepath.Abs(opts.Output); err == nil {
		c.mu.Lock()
		c.produced[outAbs] = struct{}{}
		c.mu.Unlock()
	}

	res, err := convert.File(path, opts)
	if err != nil {
		if outAbs, aerr := filepath.Abs(opts.Output); aerr == nil {
			c.takeProduced(outAbs)
		}
		return res, err
	}
	return res, nil
}

// Run converts every event from w until ctx is done or w is closed.
// Failures are logged and do not stop the loop.
func (c *Converter) Run(ctx context.Context, w *Watcher) error {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
			return err
		}
	}
	errs := w.Errors
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			res, err := c.Convert(path)
			switch {
			case err != nil:
				c.log.Error("conversion failed", "path", path, "error", err)
			case res != nil:
				c.log.Info("converted",
					"input", res.Input,
					"output", res.Output,
					"kind", res.Kind.String(),
					"session", res.SessionID,
					"warnings", len(res.Warnings),
				)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			c.log.Warn("watch error", "error", err)
		}
	}
}
