package raster

// Grid colors
var (
	gridBackground = [4]byte{255, 255, 255, 255}
	gridLine       = [4]byte{0, 0, 0, 255}
)

// DrawGrid renders a white image with black grid lines every step pixels.
// With centered set, lines radiate from the midpoint so that the center
// of the image always falls on a crossing; otherwise lines start at the
// top-left corner.
func DrawGrid(width, height, step int, centered bool) *Raster {
	r := New(width, height, DepthRGB, gridBackground)

	if centered {
		midX := width / 2
		midY := height / 2
		for x := 0; midX+x < width || midX-x >= 0; x += step {
			drawVertical(r, midX+x)
			drawVertical(r, midX-x)
		}
		for y := 0; midY+y < height || midY-y >= 0; y += step {
			drawHorizontal(r, midY+y)
			drawHorizontal(r, midY-y)
		}
		return r
	}

	for x := 0; x < width; x += step {
		drawVertical(r, x)
	}
	for y := 0; y < height; y += step {
		drawHorizontal(r, y)
	}
	return r
}

func drawVertical(r *Raster, x int) {
	if x < 0 || x >= r.Width {
		return
	}
	for y := 0; y < r.Height; y++ {
		r.Set(x, y, gridLine)
	}
}

func drawHorizontal(r *Raster, y int) {
	if y < 0 || y >= r.Height {
		return
	}
	for x := 0; x < r.Width; x++ {
		r.Set(x, y, gridLine)
	}
}
