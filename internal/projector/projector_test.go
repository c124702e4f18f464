package projector

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/selliott512/image-utils/pkg/raster"
)

var white = [4]byte{255, 255, 255, 255}

// writeUniformInput writes a width x height single-color PNG and returns
// its path.
func writeUniformInput(t *testing.T, width, height int, c [4]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sphere.png")
	if err := raster.Encode(path, raster.New(width, height, raster.DepthRGB, c)); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return path
}

func TestOrthographicUniformWhite(t *testing.T) {
	// A uniform white sphere projects to white on every visible pixel
	// under both samplers.
	for _, bilinear := range []bool{false, true} {
		inPath := writeUniformInput(t, 100, 100, white)
		outPath := filepath.Join(filepath.Dir(inPath), "map.png")

		p := New(&Options{Bilinear: bilinear, Workers: 2}, nil)
		if err := p.ProcessImage(inPath, outPath); err != nil {
			t.Fatalf("ProcessImage(bilinear=%v) failed: %v", bilinear, err)
		}

		out, err := raster.Decode(outPath)
		if err != nil {
			t.Fatalf("Decode output failed: %v", err)
		}
		if out.Width != 200 || out.Height != 100 {
			t.Fatalf("Expected 200x100 output, got %dx%d", out.Width, out.Height)
		}

		background := [4]byte{0, 0, 0, 255}
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				got := out.At(x, y)
				if got != white && got != background {
					t.Fatalf("Pixel (%d, %d) is %v; want white or the black background", x, y, got)
				}
			}
		}

		// The equator row is visible and white on the whole front-facing
		// band (longitudes inside (-90, 90)).
		for x := 50; x <= 149; x++ {
			if got := out.At(x, 50); got != white {
				t.Errorf("Equator pixel (%d, 50) = %v, want white (bilinear=%v)", x, got, bilinear)
			}
		}
		// The antimeridian column stays hidden.
		if got := out.At(0, 50); got != background {
			t.Errorf("Hidden pixel (0, 50) = %v, want the background", got)
		}
	}
}

func TestHiddenPixelsKeepBackground(t *testing.T) {
	inPath := writeUniformInput(t, 100, 100, white)
	outPath := filepath.Join(filepath.Dir(inPath), "map.png")

	p := New(&Options{HiddenColor: "red", Workers: 2}, nil)
	if err := p.ProcessImage(inPath, outPath); err != nil {
		t.Fatalf("ProcessImage failed: %v", err)
	}

	out, err := raster.Decode(outPath)
	if err != nil {
		t.Fatalf("Decode output failed: %v", err)
	}
	if got := out.At(0, 50); got != [4]byte{255, 0, 0, 255} {
		t.Errorf("Hidden pixel should keep the red background exactly, got %v", got)
	}
}

func TestProjectOutputIs2To1(t *testing.T) {
	src := raster.New(64, 64, raster.DepthRGB, white)

	p := New(&Options{Height: intp(50)}, nil)
	out, err := p.Project(src)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if out.Width != 2*out.Height {
		t.Errorf("Output is %dx%d; want width == 2*height", out.Width, out.Height)
	}
}

func TestCropToVisibleHemisphere(t *testing.T) {
	// On a 200x100 orthographic map the visible longitudes span output
	// columns 50..149, and every row keeps a visible pixel near its
	// center, so the minimal crop is exactly 100x100.
	src := raster.New(100, 100, raster.DepthRGB, white)

	p := New(&Options{Crop: true, Workers: 3}, nil)
	out, err := p.Project(src)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if out.Width != 100 || out.Height != 100 {
		t.Errorf("Expected 100x100 cropped output, got %dx%d", out.Width, out.Height)
	}
}

func TestCropWithNoVisiblePixels(t *testing.T) {
	// A 90 degree min angle hides the entire hemisphere; cropping must
	// fail cleanly instead of producing a degenerate rectangle.
	src := raster.New(100, 100, raster.DepthRGB, white)

	p := New(&Options{MinAngle: 90, Crop: true}, nil)
	_, err := p.Project(src)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for an empty crop, got %v", err)
	}
}

func TestMultiPassKeepsExistingDimensions(t *testing.T) {
	inPath := writeUniformInput(t, 100, 100, white)
	outPath := filepath.Join(filepath.Dir(inPath), "map.png")

	p := New(&Options{Workers: 2}, nil)
	if err := p.ProcessImage(inPath, outPath); err != nil {
		t.Fatalf("First pass failed: %v", err)
	}

	// The second pass requests other dimensions; the existing file wins.
	second := New(&Options{Multi: true, Height: intp(25), CenterLon: 180, Workers: 2}, nil)
	if err := second.ProcessImage(inPath, outPath); err != nil {
		t.Fatalf("Second pass failed: %v", err)
	}

	out, err := raster.Decode(outPath)
	if err != nil {
		t.Fatalf("Decode output failed: %v", err)
	}
	if out.Width != 200 || out.Height != 100 {
		t.Errorf("Multi-pass output resized to %dx%d; want the original 200x100", out.Width, out.Height)
	}

	// Both hemispheres are now composited: the antimeridian column was
	// filled by the second, recentered pass.
	if got := out.At(0, 50); got != white {
		t.Errorf("Second pass should fill pixel (0, 50), got %v", got)
	}
}

func TestExistingOutputWithoutMultiOrForce(t *testing.T) {
	inPath := writeUniformInput(t, 100, 100, white)
	outPath := filepath.Join(filepath.Dir(inPath), "map.png")

	p := New(&Options{}, nil)
	if err := p.ProcessImage(inPath, outPath); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	err := p.ProcessImage(inPath, outPath)
	var conflict *OutputConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("Expected OutputConflictError, got %v", err)
	}
}

func TestMissingInput(t *testing.T) {
	p := New(&Options{}, nil)
	err := p.ProcessImage(filepath.Join(t.TempDir(), "missing.png"), "out.png")

	var notFound *InputNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected InputNotFoundError, got %v", err)
	}
}

func TestRunRejectsOutputWithMultipleImages(t *testing.T) {
	p := New(&Options{Output: "map.png"}, nil)
	err := p.Run([]string{"a.png", "b.png"})

	var conflict *ArgumentConflictError
	if !errors.As(err, &conflict) {
		t.Errorf("Expected ArgumentConflictError, got %v", err)
	}
}

func TestDefaultOutputName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"moon.png", "moon-er.png"},
		{"dir/moon.jpeg", "dir/moon-er.jpeg"},
		{"noext", "noext-er"},
	}

	for _, tc := range cases {
		if got := DefaultOutputName(tc.in); got != tc.want {
			t.Errorf("DefaultOutputName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
