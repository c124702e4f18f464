package projector

import "fmt"

// ValidationError reports an inconsistent region, size, or dimension
// specification.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InputNotFoundError reports a missing input image.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input image %q does not exist", e.Path)
}

// RegionOutOfBoundsError reports a sphere region that does not fit in the
// input image.
type RegionOutOfBoundsError struct {
	Path          string
	Width, Height int
	Region        Region
}

func (e *RegionOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"for input image %q with size %dx%d the region [%d, %d] - (%d, %d) won't fit; try a lower --in-size",
		e.Path, e.Width, e.Height,
		e.Region.BeginX, e.Region.BeginY, e.Region.EndX, e.Region.EndY)
}

// OutputConflictError reports an existing output file that may not be
// overwritten.
type OutputConflictError struct {
	Path string
}

func (e *OutputConflictError) Error() string {
	return fmt.Sprintf("output image %q exists, but neither --multi nor --force was specified", e.Path)
}

// ColorParseError reports an unsupported hidden color.
type ColorParseError struct {
	Name string
}

func (e *ColorParseError) Error() string {
	return fmt.Sprintf("hidden color %q is not supported", e.Name)
}

// ArgumentConflictError reports mutually exclusive command line arguments.
type ArgumentConflictError struct {
	Message string
}

func (e *ArgumentConflictError) Error() string {
	return e.Message
}
