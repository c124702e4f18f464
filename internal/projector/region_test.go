package projector

import (
	"errors"
	"testing"
)

func intp(v int) *int {
	return &v
}

func TestResolveRegionBeginEnd(t *testing.T) {
	r, err := ResolveRegion(RegionSpec{BeginX: intp(10), EndX: intp(110)}, 200, 200)
	if err != nil {
		t.Fatalf("ResolveRegion failed: %v", err)
	}

	if r.SizeX != 100 {
		t.Errorf("Expected SizeX 100 from begin/end, got %d", r.SizeX)
	}
	if r.BeginX != 10 || r.EndX != 110 {
		t.Errorf("Expected X range [10, 110), got [%d, %d)", r.BeginX, r.EndX)
	}
	// Y falls back to the largest inscribed circle, centered.
	if r.SizeY != 200 || r.BeginY != 0 || r.EndY != 200 {
		t.Errorf("Expected default Y region [0, 200), got [%d, %d) size %d", r.BeginY, r.EndY, r.SizeY)
	}
}

func TestResolveRegionSizeConflict(t *testing.T) {
	_, err := ResolveRegion(RegionSpec{BeginX: intp(10), EndX: intp(110), Size: intp(50)}, 200, 200)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for conflicting size, got %v", err)
	}
}

func TestResolveRegionDefaults(t *testing.T) {
	r, err := ResolveRegion(RegionSpec{}, 100, 100)
	if err != nil {
		t.Fatalf("ResolveRegion failed: %v", err)
	}

	want := Region{BeginX: 0, BeginY: 0, EndX: 100, EndY: 100, SizeX: 100, SizeY: 100}
	if r != want {
		t.Errorf("Expected %+v, got %+v", want, r)
	}
}

func TestResolveRegionCentersInscribedCircle(t *testing.T) {
	// A wide image defaults to a min(width,height) circle centered the way
	// the size calculation centers it.
	r, err := ResolveRegion(RegionSpec{Size: intp(50)}, 200, 100)
	if err != nil {
		t.Fatalf("ResolveRegion failed: %v", err)
	}

	if r.BeginX != 25 || r.EndX != 75 {
		t.Errorf("Expected X range [25, 75), got [%d, %d)", r.BeginX, r.EndX)
	}
	if r.BeginY != 25 || r.EndY != 75 {
		t.Errorf("Expected Y range [25, 75), got [%d, %d)", r.BeginY, r.EndY)
	}
}

func TestResolveRegionOnlyEnd(t *testing.T) {
	r, err := ResolveRegion(RegionSpec{EndX: intp(90), Size: intp(40)}, 100, 100)
	if err != nil {
		t.Fatalf("ResolveRegion failed: %v", err)
	}

	if r.BeginX != 50 || r.EndX != 90 || r.SizeX != 40 {
		t.Errorf("Expected X range [50, 90) size 40, got [%d, %d) size %d", r.BeginX, r.EndX, r.SizeX)
	}
}

func TestResolveRegionOutOfBounds(t *testing.T) {
	_, err := ResolveRegion(RegionSpec{BeginX: intp(50)}, 100, 100)

	var oob *RegionOutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("Expected RegionOutOfBoundsError, got %v", err)
	}
	if oob.Region.EndX != 150 {
		t.Errorf("Expected overflowing EndX 150 in the error, got %d", oob.Region.EndX)
	}
}

func TestResolveRegionNonPositiveSize(t *testing.T) {
	_, err := ResolveRegion(RegionSpec{Size: intp(0)}, 100, 100)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for zero size, got %v", err)
	}
}
