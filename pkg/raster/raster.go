package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Pixel depth constants
const (
	DepthRGB  = 3
	DepthRGBA = 4
)

// Raster holds decoded image data as an RGBA byte buffer. Depth records
// whether the image carries a meaningful alpha channel (4) or is opaque (3);
// the buffer itself is always 4 bytes per pixel.
type Raster struct {
	Pix    []byte
	Width  int
	Height int
	Depth  int
}

// New allocates a raster of the given size filled with the given color.
func New(width, height, depth int, fill [4]byte) *Raster {
	r := &Raster{
		Pix:    make([]byte, width*height*4),
		Width:  width,
		Height: height,
		Depth:  depth,
	}
	for i := 0; i < len(r.Pix); i += 4 {
		copy(r.Pix[i:i+4], fill[:])
	}
	return r
}

// At returns the pixel at (x, y).
func (r *Raster) At(x, y int) [4]byte {
	idx := (y*r.Width + x) * 4
	return [4]byte{r.Pix[idx], r.Pix[idx+1], r.Pix[idx+2], r.Pix[idx+3]}
}

// Set writes the pixel at (x, y). Opaque rasters keep full alpha.
func (r *Raster) Set(x, y int, c [4]byte) {
	if r.Depth == DepthRGB {
		c[3] = 255
	}
	idx := (y*r.Width + x) * 4
	copy(r.Pix[idx:idx+4], c[:])
}

// Decode reads and decodes the image at path.
func Decode(path string) (*Raster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// DecodeBytes detects the image format by magic bytes and decodes it.
func DecodeBytes(data []byte) (*Raster, error) {
	if len(data) >= 4 && bytes.Equal(data[:4], []byte{0x89, 0x50, 0x4E, 0x47}) {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return fromImage(img, DepthRGBA), nil
	} else if len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFF, 0xD8}) {
		img, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return fromImage(img, DepthRGB), nil
	}

	return nil, fmt.Errorf("unrecognized image format")
}

// fromImage converts a Go image to a Raster.
func fromImage(img image.Image, depth int) *Raster {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := (y*width + x) * 4
			buf[idx] = byte(r >> 8)
			buf[idx+1] = byte(g >> 8)
			buf[idx+2] = byte(b >> 8)
			buf[idx+3] = byte(a >> 8)
		}
	}

	return &Raster{
		Pix:    buf,
		Width:  width,
		Height: height,
		Depth:  depth,
	}
}

// ToImage converts the raster to an image.RGBA sharing no storage.
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	return img
}

// Encode writes the raster to path. The format is chosen by extension;
// PNG preserves alpha, JPEG is always opaque.
func Encode(path string, r *Raster) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode(file, r.ToImage())
	case ".jpg", ".jpeg":
		return jpeg.Encode(file, r.ToImage(), &jpeg.Options{Quality: 90})
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}

// EncodePNG encodes the raster as PNG bytes.
func EncodePNG(r *Raster) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.ToImage()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseColor resolves a color name to a pixel value. Any name beginning
// with "trans" (case-insensitive) selects a fully transparent pixel and
// reports transparent=true, which callers use to switch to an alpha
// canvas. Otherwise SVG 1.1 color names and #rrggbb hex are accepted.
func ParseColor(name string) (c [4]byte, transparent bool, err error) {
	lower := strings.ToLower(strings.TrimSpace(name))

	if strings.HasPrefix(lower, "trans") {
		return [4]byte{0, 0, 0, 0}, true, nil
	}

	if strings.HasPrefix(lower, "#") && len(lower) == 7 {
		v, err := strconv.ParseUint(lower[1:], 16, 32)
		if err != nil {
			return c, false, fmt.Errorf("invalid hex color %q", name)
		}
		return [4]byte{byte(v >> 16), byte(v >> 8), byte(v), 255}, false, nil
	}

	if rgba, ok := colornames.Map[lower]; ok {
		return [4]byte{rgba.R, rgba.G, rgba.B, rgba.A}, false, nil
	}

	return c, false, fmt.Errorf("unknown color %q", name)
}

// Crop returns a copy of the raster restricted to [x0, x1) x [y0, y1).
func Crop(r *Raster, x0, y0, x1, y1 int) *Raster {
	out := &Raster{
		Pix:    make([]byte, (x1-x0)*(y1-y0)*4),
		Width:  x1 - x0,
		Height: y1 - y0,
		Depth:  r.Depth,
	}
	for y := y0; y < y1; y++ {
		srcIdx := (y*r.Width + x0) * 4
		dstIdx := (y - y0) * out.Width * 4
		copy(out.Pix[dstIdx:dstIdx+out.Width*4], r.Pix[srcIdx:srcIdx+out.Width*4])
	}
	return out
}
