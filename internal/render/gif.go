package render

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// FrameFunc renders frame i.
type FrameFunc func(ctx context.Context, i int) (image.Image, error)

// RenderFrames renders n frames with at most workers running at once.
// Frames come back in index order; the first error cancels the rest.
func RenderFrames(ctx context.Context, n, workers int, fn FrameFunc) ([]image.Image, error) {
	if n <= 0 {
		return nil, fmt.Errorf("render: frame count must be positive, got %d", n)
	}
	if workers <= 0 {
		workers = 1
	}

	frames := make([]image.Image, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := fn(ctx, i)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			frames[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// Paletted quantises img to the Plan 9 palette with Floyd-Steinberg
// dithering.
func Paletted(img image.Image) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}
	bounds := img.Bounds()
	dst := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(dst, bounds, img, bounds.Min)
	return dst
}

// FrameDelay spreads total evenly over n frames, in the 1/100 s units GIF
// uses. Every frame lasts at least one unit.
func FrameDelay(total time.Duration, n int) int {
	if n <= 0 {
		return 1
	}
	delay := int(total / time.Duration(n) / (10 * time.Millisecond))
	return max(delay, 1)
}

// Assemble builds a looping GIF whose playback lasts total.
func Assemble(frames []image.Image, total time.Duration) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("render: no frames to assemble")
	}
	delay := FrameDelay(total, len(frames))
	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, Paletted(frame))
		anim.Delay = append(anim.Delay, delay)
	}
	return anim, nil
}

// SaveGIF writes an animation to path.
func SaveGIF(path string, anim *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}

// SavePNG writes a single frame to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
