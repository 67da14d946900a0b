package animate

import (
	"context"
	"image"
	"time"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/iterate"
	"github.com/san-kum/chaosmap/internal/render"
	"github.com/san-kum/chaosmap/internal/trace"
)

func (a *Animator) sweep(f dynamo.Recurrence, name string, cfg *config.Config, start, stop float64) (*iterate.Table, error) {
	rs, err := iterate.LinearRange(start, stop, cfg.Sweep.Samples)
	if err != nil {
		return nil, err
	}

	done := a.tracer.Call("sweep",
		trace.String("map", name),
		trace.Float64("x0", cfg.X0),
		trace.Int("discard", cfg.Sweep.Discard),
		trace.Int("retain", cfg.Sweep.Retain),
		trace.Float64("start", start),
		trace.Float64("stop", stop),
		trace.Int("lanes", len(rs)),
	)
	table, err := iterate.Sweep(f, cfg.X0, cfg.Sweep.Discard, cfg.Sweep.Retain, rs, iterate.WithWorkers(workers(cfg)))
	done(err)
	if err != nil {
		return nil, err
	}
	a.metrics.AddEvaluations(name, (cfg.Sweep.Discard+cfg.Sweep.Retain)*len(rs))
	return table, nil
}

// BifurcationPNG sweeps Samples parameters across [Start, Stop] and draws
// the recorded tail of every lane as a scatter.
func (a *Animator) BifurcationPNG(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	f, name, err := a.recurrence(cfg.Map)
	if err != nil {
		return nil, err
	}
	table, err := a.sweep(f, name, cfg, cfg.Start, cfg.Stop)
	if err != nil {
		return nil, err
	}

	fig := a.figure(cfg, "Bifurcation Diagram for "+name)
	frames, err := a.renderFrames(ctx, KindBifurcation, 1, 1, func(context.Context, int) (image.Image, error) {
		return render.BifurcationFrame(fig, table, cfg.Start, cfg.Stop)
	})
	if err != nil {
		return nil, err
	}

	out := OutputPath(KindBifurcation, cfg)
	if err := render.SavePNG(out, frames[0]); err != nil {
		return nil, err
	}

	elapsed := time.Since(started)
	a.logger.Info("bifurcation diagram written",
		"path", out, "map", name, "params", table.NumCols(), "elapsed", elapsed.Round(time.Millisecond))

	return &Result{Kind: KindBifurcation, Output: out, Frames: 1, Table: table, Elapsed: elapsed}, nil
}

// BifurcationGIF animates the diagram unfolding: frame k sweeps
// [Start, stop_k] with stop_k stepping evenly up to Stop. The x axis stays
// fixed at [Start, Stop].
func (a *Animator) BifurcationGIF(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	f, name, err := a.recurrence(cfg.Map)
	if err != nil {
		return nil, err
	}

	n := cfg.Output.Frames
	span := (cfg.Stop - cfg.Start) / float64(n)
	tables := make([]*iterate.Table, n)

	fig := a.figure(cfg, "Bifurcation Diagram for "+name)
	frames, err := a.renderFrames(ctx, KindBifurcationGIF, n, workers(cfg), func(_ context.Context, k int) (image.Image, error) {
		stop := cfg.Start + span*float64(k+1)
		if k == n-1 {
			stop = cfg.Stop
		}
		table, err := a.sweep(f, name, cfg, cfg.Start, stop)
		if err != nil {
			return nil, err
		}
		tables[k] = table
		return render.BifurcationFrame(fig, table, cfg.Start, cfg.Stop)
	})
	if err != nil {
		return nil, err
	}

	out := OutputPath(KindBifurcationGIF, cfg)
	if err := a.writeGIF(out, frames, cfg); err != nil {
		return nil, err
	}

	elapsed := time.Since(started)
	a.logger.Info("bifurcation gif written",
		"path", out, "map", name, "frames", n, "elapsed", elapsed.Round(time.Millisecond))

	return &Result{Kind: KindBifurcationGIF, Output: out, Frames: n, Table: tables[n-1], Elapsed: elapsed}, nil
}
