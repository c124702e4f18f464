package projector

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/selliott512/image-utils/pkg/raster"
)

// Canvas is the output target of a projection run. It is either a fresh
// raster filled with the hidden color or, in multi-write mode, the
// existing output image reopened so several sphere images can be
// composited into one map.
type Canvas struct {
	*raster.Raster
	Background [4]byte
	Loaded     bool
}

// ResolveCanvasSize derives the output dimensions under the 2:1
// equirectangular constraint. Nil means the dimension was not requested.
func ResolveCanvasSize(width, height *int, regionSizeY int) (int, int, error) {
	switch {
	case width == nil && height == nil:
		return 2 * regionSizeY, regionSizeY, nil
	case width != nil && height != nil:
		if *width != 2**height {
			return 0, 0, &ValidationError{
				Message: "the width must be exactly twice the height; try specifying only one of --width or --height, or neither",
			}
		}
		return *width, *height, nil
	case width != nil:
		return *width, *width / 2, nil
	default:
		return 2 * *height, *height, nil
	}
}

// NewCanvas allocates a fresh canvas filled with the hidden color. The
// colors "trans" and "transparent" switch the canvas to an alpha mode
// with a fully transparent background.
func NewCanvas(width, height int, hiddenColor string) (*Canvas, error) {
	bg, transparent, err := raster.ParseColor(hiddenColor)
	if err != nil {
		return nil, &ColorParseError{Name: hiddenColor}
	}

	depth := raster.DepthRGB
	if transparent {
		depth = raster.DepthRGBA
	}

	return &Canvas{
		Raster:     raster.New(width, height, depth, bg),
		Background: bg,
	}, nil
}

// OpenTarget opens the output target at path. An existing file is
// reopened when multi is set (its dimensions win over the requested
// ones), recreated when force is set, and an error otherwise.
func OpenTarget(path string, width, height int, multi, force bool, hiddenColor string, logger *slog.Logger) (*Canvas, error) {
	info, err := os.Stat(path)
	exists := err == nil && !info.IsDir()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat output image %q: %w", path, err)
	}

	if exists {
		if multi {
			r, err := raster.Decode(path)
			if err != nil {
				return nil, fmt.Errorf("reopen output image %q: %w", path, err)
			}
			if r.Width != width || r.Height != height {
				logger.Warn("existing output image dimensions win over the requested ones",
					"path", path,
					"requested", fmt.Sprintf("%dx%d", width, height),
					"actual", fmt.Sprintf("%dx%d", r.Width, r.Height))
			}
			bg, _, err := raster.ParseColor(hiddenColor)
			if err != nil {
				return nil, &ColorParseError{Name: hiddenColor}
			}
			return &Canvas{Raster: r, Background: bg, Loaded: true}, nil
		}
		if !force {
			return nil, &OutputConflictError{Path: path}
		}
	}

	return NewCanvas(width, height, hiddenColor)
}
