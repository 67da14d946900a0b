package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/chaosmap/internal/iterate"
	"github.com/san-kum/chaosmap/internal/maps"
)

func TestTrajectoryFrame(t *testing.T) {
	orbit, err := iterate.Trajectory(maps.Logistic, 0.5, 50, 3.7)
	require.NoError(t, err)

	img, err := TrajectoryFrame(Figure{Title: "Sequential plot for logistic", Width: 320, Height: 240}, orbit, "r=3.7")
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestTrajectoryFrameDiverged(t *testing.T) {
	orbit, err := iterate.Trajectory(maps.Logistic, 0.5, 30, 10)
	require.NoError(t, err)

	_, err = TrajectoryFrame(Figure{Width: 200, Height: 150}, orbit, "")
	require.NoError(t, err)
}

func TestTrajectoryFrameEmpty(t *testing.T) {
	_, err := TrajectoryFrame(Figure{}, nil, "")
	assert.Error(t, err)
}

func TestBifurcationFrame(t *testing.T) {
	rs, err := iterate.LinearRange(2.8, 4, 100)
	require.NoError(t, err)
	table, err := iterate.Sweep(maps.Logistic, 0.5, 100, 20, rs)
	require.NoError(t, err)

	img, err := BifurcationFrame(Figure{Width: 300, Height: 200}, table, 2.8, 4)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())

	_, err = BifurcationFrame(Figure{}, nil, 0, 1)
	assert.Error(t, err)
}

func TestFrameDelay(t *testing.T) {
	assert.Equal(t, 10, FrameDelay(10*time.Second, 100))
	assert.Equal(t, 1, FrameDelay(10*time.Millisecond, 100))
	assert.Equal(t, 50, FrameDelay(time.Second, 2))
	assert.Equal(t, 1, FrameDelay(time.Second, 0))
}

func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestAssembleAndSave(t *testing.T) {
	frames := []image.Image{solid(color.White), solid(color.Black), solid(color.White)}
	anim, err := Assemble(frames, 3*time.Second)
	require.NoError(t, err)
	require.Len(t, anim.Image, 3)
	assert.Equal(t, []int{100, 100, 100}, anim.Delay)

	path := filepath.Join(t.TempDir(), "out.gif")
	require.NoError(t, SaveGIF(path, anim))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 3)

	_, err = Assemble(nil, time.Second)
	assert.Error(t, err)
}

func TestRenderFramesOrder(t *testing.T) {
	var calls atomic.Int32
	frames, err := RenderFrames(context.Background(), 8, 3, func(_ context.Context, i int) (image.Image, error) {
		calls.Add(1)
		return image.NewRGBA(image.Rect(0, 0, i+1, 1)), nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 8, calls.Load())
	for i, f := range frames {
		assert.Equal(t, i+1, f.Bounds().Dx())
	}
}

func TestRenderFramesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := RenderFrames(context.Background(), 5, 2, func(_ context.Context, i int) (image.Image, error) {
		if i == 2 {
			return nil, boom
		}
		return solid(color.White), nil
	})
	require.ErrorIs(t, err, boom)

	_, err = RenderFrames(context.Background(), 0, 1, nil)
	assert.Error(t, err)
}
