package animate

import (
	"bytes"
	"context"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/logging"
	"github.com/san-kum/chaosmap/internal/metrics"
	"github.com/san-kum/chaosmap/internal/trace"
)

func smallConfig(t *testing.T, name string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output.Path = filepath.Join(t.TempDir(), name)
	cfg.Output.Frames = 3
	cfg.Output.Width = 160
	cfg.Output.Height = 120
	cfg.Output.GIFDuration = 300
	cfg.Output.GIFUnit = "ms"
	cfg.Trajectory.Values = 20
	cfg.Sweep.Discard = 50
	cfg.Sweep.Retain = 10
	cfg.Sweep.Samples = 40
	cfg.Start = 2.5
	cfg.Stop = 4
	return cfg
}

func decodeGIF(t *testing.T, path string) *gif.GIF {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	return anim
}

func TestTrajectoryGIF(t *testing.T) {
	rec := metrics.NewRecorder()
	a := New(logging.Discard(), nil, rec, nil)
	cfg := smallConfig(t, "traj.gif")

	res, err := a.TrajectoryGIF(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, KindGIF, res.Kind)
	assert.Equal(t, 3, res.Frames)
	assert.Equal(t, 3, res.Table.NumCols())
	assert.Equal(t, 20, res.Table.NumRows())
	assert.Equal(t, 4.0, res.Table.Params[2])

	anim := decodeGIF(t, cfg.Output.Path)
	assert.Len(t, anim.Image, 3)
	assert.Equal(t, []int{10, 10, 10}, anim.Delay)
}

func TestTrajectoryGIFMinimal(t *testing.T) {
	a := New(nil, nil, nil, nil)
	cfg := smallConfig(t, "min.gif")
	cfg.X0 = 0
	cfg.Trajectory.Values = 1
	cfg.Start, cfg.Stop = 0, 1
	cfg.Output.Frames = 2
	cfg.Output.GIFDuration = 1
	cfg.Output.GIFUnit = "s"

	res, err := a.TrajectoryGIF(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Frames)
	assert.Equal(t, []int{50, 50}, decodeGIF(t, cfg.Output.Path).Delay)
}

func TestBifurcationPNG(t *testing.T) {
	a := New(logging.Discard(), nil, nil, nil)
	cfg := smallConfig(t, "bif.png")

	res, err := a.BifurcationPNG(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 40, res.Table.NumCols())
	assert.Equal(t, 10, res.Table.NumRows())
	assert.Equal(t, 51, res.Table.Start)

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
}

func TestBifurcationGIF(t *testing.T) {
	a := New(logging.Discard(), nil, nil, nil)
	cfg := smallConfig(t, "zoom.gif")
	cfg.Workers = 2

	res, err := a.BifurcationGIF(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Frames)
	assert.Equal(t, 4.0, res.Table.Params[len(res.Table.Params)-1])
	assert.Len(t, decodeGIF(t, cfg.Output.Path).Image, 3)
}

func TestTracingWritesCalls(t *testing.T) {
	var buf bytes.Buffer
	a := New(logging.Discard(), trace.New(&buf), nil, nil)
	cfg := smallConfig(t, "traced.png")
	cfg.Sweep.Samples = 2
	cfg.Sweep.Discard = 1
	cfg.Sweep.Retain = 1

	_, err := a.BifurcationPNG(context.Background(), cfg)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"action_type":"sweep"`)
	assert.Contains(t, out, `"action_status":"succeeded"`)
	assert.Equal(t, 5, strings.Count(out, "\n"), "four map evaluations plus one call event")
}

func TestRunErrors(t *testing.T) {
	a := New(nil, nil, nil, nil)
	cfg := smallConfig(t, "x.gif")

	_, err := a.Run(context.Background(), "mp4", cfg)
	assert.Error(t, err)

	cfg.Map = "henon"
	_, err = a.Run(context.Background(), KindGIF, cfg)
	assert.Error(t, err)

	cfg = smallConfig(t, "x.gif")
	cfg.Output.GIFUnit = "min"
	_, err = a.Run(context.Background(), KindGIF, cfg)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, "logistic_map.gif", OutputPath(KindGIF, cfg))
	assert.Equal(t, "logistic_bifurcation.png", OutputPath(KindBifurcation, cfg))
	cfg.Map = "tent"
	assert.Equal(t, "tent_bifurcation.gif", OutputPath(KindBifurcationGIF, cfg))
	cfg.Output.Path = "custom.gif"
	assert.Equal(t, "custom.gif", OutputPath(KindGIF, cfg))
}
