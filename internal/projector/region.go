package projector

import "fmt"

// RegionSpec is the user-provided description of where the sphere sits
// in the input image. Nil fields were not specified.
type RegionSpec struct {
	BeginX, BeginY *int
	EndX, EndY     *int
	Size           *int // both axes, overridden per axis below
	SizeX, SizeY   *int
}

// Region is a fully resolved sphere bounding box inside the input image.
// EndX/EndY are exclusive, and EndX-BeginX == SizeX, EndY-BeginY == SizeY.
type Region struct {
	BeginX, BeginY int
	EndX, EndY     int
	SizeX, SizeY   int
}

// ResolveRegion resolves any consistent combination of begin/end/size to a
// region, defaulting the size to the diameter of the largest circle that
// fits in a width x height image and centering when no position is given.
func ResolveRegion(spec RegionSpec, width, height int) (Region, error) {
	minIn := width
	if height < minIn {
		minIn = height
	}

	beginX, endX, sizeX, err := resolveAxis("X", spec.BeginX, spec.EndX, axisSize(spec.SizeX, spec.Size), minIn)
	if err != nil {
		return Region{}, err
	}
	beginY, endY, sizeY, err := resolveAxis("Y", spec.BeginY, spec.EndY, axisSize(spec.SizeY, spec.Size), minIn)
	if err != nil {
		return Region{}, err
	}

	r := Region{
		BeginX: beginX, BeginY: beginY,
		EndX: endX, EndY: endY,
		SizeX: sizeX, SizeY: sizeY,
	}

	if r.BeginX < 0 || r.BeginY < 0 || r.EndX > width || r.EndY > height {
		return Region{}, &RegionOutOfBoundsError{Width: width, Height: height, Region: r}
	}

	return r, nil
}

func axisSize(perAxis, both *int) *int {
	if perAxis != nil {
		return perAxis
	}
	return both
}

// resolveAxis resolves begin/end/size along one axis. minIn is the default
// size when none was given.
func resolveAxis(axis string, begin, end, size *int, minIn int) (int, int, int, error) {
	if begin != nil && end != nil {
		calc := *end - *begin
		if size != nil && calc != *size {
			return 0, 0, 0, &ValidationError{
				Message: fmt.Sprintf("%s begin and end specified does not match the size %d specified", axis, *size),
			}
		}
		size = &calc
	}
	if size == nil {
		size = &minIn
	}
	if *size <= 0 {
		return 0, 0, 0, &ValidationError{
			Message: fmt.Sprintf("%s size %d must be positive", axis, *size),
		}
	}

	switch {
	case begin != nil && end == nil:
		e := *begin + *size
		end = &e
	case begin == nil && end != nil:
		b := *end - *size
		begin = &b
	case begin == nil && end == nil:
		b := (minIn - *size) / 2
		e := b + *size
		begin, end = &b, &e
	}

	return *begin, *end, *size, nil
}
