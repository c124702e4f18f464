package projector

import (
	"fmt"
	"math"
)

// Scene holds the camera constants derived from the angular size of the
// sphere. It is immutable once resolved; the pixel loop only reads it.
//
// The sphere has radius one and is centered at (0, 0, CameraZ) in the
// camera coordinate system. For an orthographic camera (angular size 0)
// CameraZ is 0 and Slope is unused.
type Scene struct {
	AngularSize float64 // angular size in radians
	CameraZ     float64 // Z-coordinate of the sphere center
	MinVisibleZ float64 // smallest camera-space Z that is still rendered
	Slope       float64 // maximum slope to render (perspective only)
	Scale       float64 // lat/lon stretch factor
	NDCInset    float64 // NDC window inset when not stretching
	Perspective bool
}

// NewScene derives the camera constants. The maximum angle between the
// line of sight (Z-axis) and a rendered point on the sphere is where the
// line of sight is tangential to the sphere's surface; minAngleDeg hides
// pixels within that many degrees of the silhouette.
func NewScene(angularSizeDeg, minAngleDeg float64, stretch bool) (Scene, error) {
	if angularSizeDeg < 0 || angularSizeDeg >= 180 {
		return Scene{}, &ValidationError{
			Message: fmt.Sprintf("angular size %g must be at least 0 and less than 180", angularSizeDeg),
		}
	}
	if minAngleDeg < 0 {
		return Scene{}, &ValidationError{
			Message: fmt.Sprintf("min angle %g must not be negative", minAngleDeg),
		}
	}

	asRad := radians(angularSizeDeg)
	half := asRad / 2
	halfMargin := half + radians(minAngleDeg)

	maxXY := math.Cos(half)
	minZRel := math.Sin(half)
	minZRelMargin := math.Sin(halfMargin)

	s := Scene{
		AngularSize: asRad,
		Perspective: half != 0,
	}

	if s.Perspective {
		if halfMargin >= math.Pi/2 {
			return Scene{}, &ValidationError{
				Message: fmt.Sprintf(
					"angular size %g plus twice min angle %g must be less than 180 for a perspective camera",
					angularSizeDeg, minAngleDeg),
			}
		}
		s.CameraZ = -1 / minZRel
		minZ := s.CameraZ + minZRel
		s.MinVisibleZ = s.CameraZ + minZRelMargin
		s.Slope = -maxXY / minZ
	} else {
		s.MinVisibleZ = minZRelMargin
	}

	angleFraction := halfMargin / (math.Pi / 2)
	if stretch {
		if angleFraction >= 1 {
			return Scene{}, &ValidationError{
				Message: fmt.Sprintf(
					"angular size %g plus twice min angle %g leaves nothing to stretch",
					angularSizeDeg, minAngleDeg),
			}
		}
		s.Scale = 1 / (1 - angleFraction)
	} else {
		s.Scale = 1
		s.NDCInset = angleFraction / 2
	}

	return s, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
