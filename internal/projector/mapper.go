package projector

import "math"

// View orients the sphere shown in the input image: the lat/lon at its
// center and its clockwise roll, all in degrees.
type View struct {
	CenterLat float64
	CenterLon float64
	Rotate    float64
}

// Mapper computes, for each output pixel, the fractional input image
// coordinate its color comes from, or reports the pixel hidden when the
// corresponding sphere point is not visible to the camera.
type Mapper struct {
	scene          Scene
	width, height  float64
	centerLon      float64
	halfX, halfY   float64
	beginX, beginY float64
	insetScale     float64
	sinLat, cosLat float64
	sinRot, cosRot float64
	tilt, roll     bool
}

// NewMapper precomputes the per-run constants of the projection.
func NewMapper(scene Scene, region Region, width, height int, view View) *Mapper {
	cLat := radians(view.CenterLat)
	rot := radians(view.Rotate)
	m := &Mapper{
		scene:      scene,
		width:      float64(width),
		height:     float64(height),
		centerLon:  radians(view.CenterLon),
		halfX:      float64(region.SizeX) / 2,
		halfY:      float64(region.SizeY) / 2,
		beginX:     float64(region.BeginX),
		beginY:     float64(region.BeginY),
		insetScale: 1 - 2*scene.NDCInset,
		tilt:       cLat != 0,
		roll:       rot != 0,
	}
	m.sinLat, m.cosLat = math.Sin(cLat), math.Cos(cLat)
	m.sinRot, m.cosRot = math.Sin(rot), math.Cos(rot)
	return m
}

// Map projects the output pixel (outX, outY) back onto the input image.
func (m *Mapper) Map(outX, outY int) (inX, inY float64, visible bool) {
	// The 0.5 offsets sample the center of the pixel, which also keeps
	// the trigonometry away from the exact poles and antimeridian.
	lon := 2*math.Pi*((float64(outX)+0.5)/m.width-0.5)/m.scene.Scale - m.centerLon
	lat := -math.Pi * ((float64(outY)+0.5)/m.height - 0.5) / m.scene.Scale

	// Unit sphere point in world coordinates.
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	x := cosLat * sinLon
	y := sinLat
	z := cosLat * cosLon

	if m.tilt {
		// Rotate around the X-axis to bring the closest point to the
		// camera up along the closest meridian to that latitude.
		y, z = y*m.cosLat-z*m.sinLat, z*m.cosLat+y*m.sinLat
	}

	if m.roll {
		// Rotate around the Z-axis. The rotation is clockwise, so the
		// signs are flipped.
		x, y = x*m.cosRot+y*m.sinRot, y*m.cosRot-x*m.sinRot
	}

	// For orthographic CameraZ is 0. This finishes the conversion from
	// world coordinates to camera coordinates.
	z += m.scene.CameraZ

	if z < m.scene.MinVisibleZ {
		// Not on the visible portion of the sphere.
		return 0, 0, false
	}

	// Camera coordinates to NDC.
	var ndcX, ndcY float64
	if m.scene.Perspective {
		ndcX = -x / (m.scene.Slope * z)
		ndcY = -y / (m.scene.Slope * z)
	} else {
		ndcX = x
		ndcY = y
	}

	// Keep ndc strictly inside (-1, 1) so inX/inY stay inside the region.
	if ndcX >= 1.0 {
		ndcX = 0.9999999
	} else if ndcX <= -1.0 {
		ndcX = -0.9999999
	}
	if ndcY >= 1.0 {
		ndcY = 0.9999999
	} else if ndcY <= -1.0 {
		ndcY = -0.9999999
	}

	ndcX *= m.insetScale
	ndcY *= m.insetScale

	// NDC to pixel coordinates. ndcY is negated since the Y-axis points
	// the opposite direction in pixel coordinates.
	inX = m.beginX + m.halfX*(1+ndcX)
	inY = m.beginY + m.halfY*(1-ndcY)

	return inX, inY, true
}
