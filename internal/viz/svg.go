package viz

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSVG writes every lit braille dot of the canvas as an SVG circle,
// scale pixels per dot.
func (c *Canvas) WriteSVG(w io.Writer, scale float64) error {
	if scale <= 0 {
		scale = 4
	}
	width := float64(c.Width) * scale * 2
	height := float64(c.Height) * scale * 4

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<g fill="#000000">
`, width, height, width, height)

	dotRadius := scale * 0.4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - brailleBlank)
			if pattern <= 0 {
				continue
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
				}
			}
		}
	}

	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}
