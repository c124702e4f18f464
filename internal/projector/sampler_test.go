package projector

import (
	"testing"

	"github.com/selliott512/image-utils/pkg/raster"
)

func uniformRaster(width, height int, c [4]byte) *raster.Raster {
	return raster.New(width, height, raster.DepthRGBA, c)
}

func fullRegion(r *raster.Raster) Region {
	return Region{
		BeginX: 0, BeginY: 0,
		EndX: r.Width, EndY: r.Height,
		SizeX: r.Width, SizeY: r.Height,
	}
}

func TestBilinearUniformColorExact(t *testing.T) {
	color := [4]byte{123, 45, 67, 255}
	src := uniformRaster(10, 10, color)
	s := NewSampler(src, fullRegion(src), true)

	// The weights sum to 1, so four identical neighbors reproduce the
	// color exactly at any fractional coordinate.
	for _, coord := range [][2]float64{{5.3, 5.7}, {0.0, 0.0}, {9.9, 9.9}, {4.5, 4.5}} {
		got := s.Sample(coord[0], coord[1])
		if got != color {
			t.Errorf("Sample(%g, %g) = %v, want %v", coord[0], coord[1], got, color)
		}
	}
}

func TestNearestFloors(t *testing.T) {
	src := uniformRaster(10, 10, [4]byte{0, 0, 0, 255})
	marker := [4]byte{200, 100, 50, 255}
	src.Set(2, 3, marker)

	s := NewSampler(src, fullRegion(src), false)

	// Each pixel cell is labeled by its lowest-index corner.
	if got := s.Sample(2.9, 3.9); got != marker {
		t.Errorf("Sample(2.9, 3.9) = %v, want %v", got, marker)
	}
	if got := s.Sample(3.0, 3.9); got == marker {
		t.Error("Sample(3.0, 3.9) should land in the next cell")
	}
}

func TestBilinearMidpointAverage(t *testing.T) {
	src := uniformRaster(2, 1, [4]byte{0, 0, 0, 255})
	src.Set(1, 0, [4]byte{100, 0, 0, 255})

	s := NewSampler(src, fullRegion(src), true)

	// Halfway between the two pixel centers each neighbor carries half
	// the weight; 0.5 rounding keeps the result exact.
	got := s.Sample(1.0, 0.5)
	if got[0] != 50 {
		t.Errorf("Expected red channel 50 at the midpoint, got %d", got[0])
	}
	if got[1] != 0 || got[2] != 0 {
		t.Errorf("Expected untouched channels to stay 0, got %v", got)
	}
	if got[3] != 255 {
		t.Errorf("Alpha should interpolate like any channel, got %d", got[3])
	}
}

func TestBilinearClipsToRegion(t *testing.T) {
	color := [4]byte{10, 20, 30, 255}
	src := uniformRaster(4, 4, [4]byte{255, 255, 255, 255})
	// Paint the 2x2 region in the middle.
	for y := 1; y < 3; y++ {
		for x := 1; x < 3; x++ {
			src.Set(x, y, color)
		}
	}
	region := Region{BeginX: 1, BeginY: 1, EndX: 3, EndY: 3, SizeX: 2, SizeY: 2}

	s := NewSampler(src, region, true)

	// At the region corner every neighbor clips into the region, so the
	// surrounding white pixels never leak in.
	if got := s.Sample(1.0, 1.0); got != color {
		t.Errorf("Sample at region corner = %v, want %v", got, color)
	}
	if got := s.Sample(2.9, 2.9); got != color {
		t.Errorf("Sample at far region corner = %v, want %v", got, color)
	}
}
