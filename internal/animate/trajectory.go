package animate

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/iterate"
	"github.com/san-kum/chaosmap/internal/render"
	"github.com/san-kum/chaosmap/internal/trace"
)

// TrajectoryGIF renders one frame per parameter in
// LinearRange(Start, Stop, Frames), each showing the first Values states of
// the orbit from X0, and writes them as a GIF lasting GIFDuration.
func (a *Animator) TrajectoryGIF(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	f, name, err := a.recurrence(cfg.Map)
	if err != nil {
		return nil, err
	}

	rs, err := iterate.LinearRange(cfg.Start, cfg.Stop, cfg.Output.Frames)
	if err != nil {
		return nil, err
	}

	done := a.tracer.Call("trajectory_batch",
		trace.String("map", name),
		trace.Float64("x0", cfg.X0),
		trace.Int("n", cfg.Trajectory.Values),
		trace.Float64("start", cfg.Start),
		trace.Float64("stop", cfg.Stop),
		trace.Int("lanes", len(rs)),
	)
	table, err := iterate.TrajectoryBatch(f, cfg.X0, cfg.Trajectory.Values, rs, iterate.WithWorkers(workers(cfg)))
	done(err)
	if err != nil {
		return nil, err
	}
	a.metrics.AddEvaluations(name, (cfg.Trajectory.Values-1)*len(rs))

	fig := a.figure(cfg, "Sequential plot for "+name)
	frames, err := a.renderFrames(ctx, KindGIF, len(rs), workers(cfg), func(_ context.Context, i int) (image.Image, error) {
		return render.TrajectoryFrame(fig, table.Column(i), fmt.Sprintf("r = %.4f", rs[i]))
	})
	if err != nil {
		return nil, err
	}

	out := OutputPath(KindGIF, cfg)
	if err := a.writeGIF(out, frames, cfg); err != nil {
		return nil, err
	}

	elapsed := time.Since(started)
	a.logger.Info("trajectory gif written",
		"path", out, "map", name, "frames", len(frames), "elapsed", elapsed.Round(time.Millisecond))

	return &Result{Kind: KindGIF, Output: out, Frames: len(frames), Table: table, Elapsed: elapsed}, nil
}
