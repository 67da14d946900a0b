// Package animate turns generator output into image artifacts: the
// sequential trajectory GIF, the bifurcation diagram PNG and the zooming
// bifurcation GIF.
package animate

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/briandowns/spinner"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/iterate"
	"github.com/san-kum/chaosmap/internal/maps"
	"github.com/san-kum/chaosmap/internal/metrics"
	"github.com/san-kum/chaosmap/internal/render"
	"github.com/san-kum/chaosmap/internal/trace"
)

// Kinds of artifact an Animator produces.
const (
	KindGIF            = "gif"
	KindBifurcation    = "bifurcation"
	KindBifurcationGIF = "bifurcation-gif"
)

// Result describes a written artifact.
type Result struct {
	Kind   string
	Output string
	Frames int
	// Table is the generator output behind the artifact. For the zoom GIF
	// it is the sweep of the last frame.
	Table   *iterate.Table
	Elapsed time.Duration
}

// Animator renders artifacts. The zero value is not usable; use New.
type Animator struct {
	logger  *slog.Logger
	tracer  *trace.Tracer
	metrics *metrics.Recorder
	maps    *maps.Registry

	// Progress, when non-nil, receives a spinner while frames render.
	Progress io.Writer
}

func New(logger *slog.Logger, tracer *trace.Tracer, rec *metrics.Recorder, registry *maps.Registry) *Animator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if tracer == nil {
		tracer = trace.Nop()
	}
	if registry == nil {
		registry = maps.NewRegistry()
	}
	return &Animator{logger: logger, tracer: tracer, metrics: rec, maps: registry}
}

// Run dispatches on kind.
func (a *Animator) Run(ctx context.Context, kind string, cfg *config.Config) (*Result, error) {
	switch kind {
	case KindGIF:
		return a.TrajectoryGIF(ctx, cfg)
	case KindBifurcation:
		return a.BifurcationPNG(ctx, cfg)
	case KindBifurcationGIF:
		return a.BifurcationGIF(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown artifact kind %q", kind)
	}
}

// OutputPath returns cfg.Output.Path or the default file name for kind.
func OutputPath(kind string, cfg *config.Config) string {
	if cfg.Output.Path != "" {
		return cfg.Output.Path
	}
	name := cfg.Map
	if name == "" {
		name = maps.Default
	}
	switch kind {
	case KindBifurcation:
		return name + "_bifurcation.png"
	case KindBifurcationGIF:
		return name + "_bifurcation.gif"
	default:
		return name + "_map.gif"
	}
}

func (a *Animator) recurrence(name string) (dynamo.Recurrence, string, error) {
	if name == "" {
		name = maps.Default
	}
	f, err := a.maps.Get(name)
	if err != nil {
		return nil, "", err
	}
	return trace.Wrap(f, a.tracer, name), name, nil
}

func (a *Animator) figure(cfg *config.Config, title string) render.Figure {
	return render.Figure{Title: title, Width: cfg.Output.Width, Height: cfg.Output.Height}
}

func (a *Animator) startSpinner(msg string) func() {
	if a.Progress == nil {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(a.Progress))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}

func (a *Animator) renderFrames(ctx context.Context, kind string, n, workers int, fn render.FrameFunc) ([]image.Image, error) {
	stop := a.startSpinner(fmt.Sprintf("rendering %d frames", n))
	defer stop()

	return render.RenderFrames(ctx, n, workers, func(ctx context.Context, i int) (image.Image, error) {
		start := time.Now()
		img, err := fn(ctx, i)
		if err == nil {
			a.metrics.ObserveFrame(kind, time.Since(start))
		}
		return img, err
	})
}

func (a *Animator) writeGIF(path string, frames []image.Image, cfg *config.Config) error {
	total, err := cfg.PlaybackDuration()
	if err != nil {
		return err
	}
	anim, err := render.Assemble(frames, total)
	if err != nil {
		return err
	}
	return render.SaveGIF(path, anim)
}

func workers(cfg *config.Config) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return 1
}
