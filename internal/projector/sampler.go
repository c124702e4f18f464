package projector

import (
	"math"

	"github.com/selliott512/image-utils/pkg/raster"
)

// Sampler fetches a color at a fractional input image coordinate. The
// variant is chosen once per run, not per pixel.
type Sampler interface {
	Sample(inX, inY float64) [4]byte
}

// NewSampler returns the bilinear or nearest sampler over the sphere
// region of src.
func NewSampler(src *raster.Raster, region Region, bilinear bool) Sampler {
	if bilinear {
		return &bilinearSampler{src: src, region: region}
	}
	return &nearestSampler{src: src}
}

type nearestSampler struct {
	src *raster.Raster
}

// Sample floors the coordinate to the pixel that contains it. Each
// rectangular pixel region is labeled by its lowest X and Y coordinates.
func (s *nearestSampler) Sample(inX, inY float64) [4]byte {
	return s.src.At(int(math.Floor(inX)), int(math.Floor(inY)))
}

type bilinearSampler struct {
	src    *raster.Raster
	region Region
}

// Sample takes a weighted average of the four pixels surrounding
// (inX, inY), each weighted by the area opposite it. The weights sum to
// one, so a uniform region reproduces its color exactly.
func (s *bilinearSampler) Sample(inX, inY float64) [4]byte {
	// Neighbor coordinates clipped into the region. "l" is just below
	// (inX, inY), "h" just above.
	lx := math.Max(float64(s.region.BeginX), inX-0.5)
	hx := math.Min(float64(s.region.EndX-1), inX+0.5)
	ly := math.Max(float64(s.region.BeginY), inY-0.5)
	hy := math.Min(float64(s.region.EndY-1), inY+0.5)

	colorLL := s.src.At(int(lx), int(ly))
	colorLH := s.src.At(int(lx), int(hy))
	colorHL := s.src.At(int(hx), int(ly))
	colorHH := s.src.At(int(hx), int(hy))

	// Fraction of the way from the low pixel to the high pixel.
	fracLX := math.Mod(inX+0.5, 1)
	fracLY := math.Mod(inY+0.5, 1)
	fracHX := 1 - fracLX
	fracHY := 1 - fracLY

	var c [4]byte
	for i := 0; i < 4; i++ {
		// The 0.5 rounds; the weights sum to 1, so the result stays in
		// the convex hull of the four source channels.
		v := float64(colorLL[i])*fracHX*fracHY +
			float64(colorLH[i])*fracHX*fracLY +
			float64(colorHL[i])*fracLX*fracHY +
			float64(colorHH[i])*fracLX*fracLY + 0.5
		if v > 255 {
			v = 255
		}
		c[i] = byte(v)
	}
	return c
}
