package projector

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/selliott512/image-utils/pkg/raster"
)

// Options contains all projection parameters.
type Options struct {
	AngularSize float64 // degrees; 0 selects the orthographic camera
	MinAngle    float64 // degrees of margin at the sphere's silhouette
	CenterLat   float64 // degrees
	CenterLon   float64 // degrees
	Rotate      float64 // degrees, clockwise
	Stretch     bool
	Bilinear    bool
	Crop        bool
	Multi       bool
	Force       bool
	HiddenColor string
	Width       *int // nil means derive from the input region
	Height      *int
	Region      RegionSpec
	Output      string // explicit output path; empty derives "-er" names
	Workers     int    // 0 means one per CPU
}

// Projector converts sphere images to equirectangular maps.
type Projector struct {
	opts   *Options
	logger *slog.Logger
}

// New creates a projector. A nil logger discards all messages.
func New(opts *Options, logger *slog.Logger) *Projector {
	if opts.HiddenColor == "" {
		opts.HiddenColor = "black"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Projector{opts: opts, logger: logger}
}

// Run processes each input image in order. The first error aborts the
// whole batch.
func (p *Projector) Run(inputs []string) error {
	if len(inputs) > 1 && p.opts.Output != "" {
		return &ArgumentConflictError{
			Message: "the --output option can not be used with multiple images",
		}
	}

	for _, inPath := range inputs {
		outPath := p.opts.Output
		if outPath == "" {
			outPath = DefaultOutputName(inPath)
		}
		if err := p.ProcessImage(inPath, outPath); err != nil {
			return err
		}
	}
	return nil
}

// DefaultOutputName inserts "-er" before the input filename's extension.
func DefaultOutputName(inPath string) string {
	ext := filepath.Ext(inPath)
	return strings.TrimSuffix(inPath, ext) + "-er" + ext
}

// ProcessImage projects the sphere image at inPath onto the output
// target at outPath.
func (p *Projector) ProcessImage(inPath, outPath string) error {
	p.logger.Debug("processing image", "input", inPath, "output", outPath)

	scene, err := NewScene(p.opts.AngularSize, p.opts.MinAngle, p.opts.Stretch)
	if err != nil {
		return err
	}

	if info, err := os.Stat(inPath); err != nil || info.IsDir() {
		return &InputNotFoundError{Path: inPath}
	}

	src, err := raster.Decode(inPath)
	if err != nil {
		return fmt.Errorf("decode input image %q: %w", inPath, err)
	}

	region, err := ResolveRegion(p.opts.Region, src.Width, src.Height)
	if err != nil {
		var oob *RegionOutOfBoundsError
		if errors.As(err, &oob) {
			oob.Path = inPath
		}
		return err
	}
	p.logger.Debug("resolved input region",
		"input", inPath,
		"begin", fmt.Sprintf("[%d, %d]", region.BeginX, region.BeginY),
		"end", fmt.Sprintf("(%d, %d)", region.EndX, region.EndY),
		"size", fmt.Sprintf("%dx%d", region.SizeX, region.SizeY))

	width, height, err := ResolveCanvasSize(p.opts.Width, p.opts.Height, region.SizeY)
	if err != nil {
		return err
	}

	canvas, err := OpenTarget(outPath, width, height, p.opts.Multi, p.opts.Force, p.opts.HiddenColor, p.logger)
	if err != nil {
		return err
	}
	p.logger.Debug("output canvas", "output", outPath,
		"size", fmt.Sprintf("%dx%d", canvas.Width, canvas.Height),
		"reopened", canvas.Loaded)

	bounds := p.render(src, region, scene, canvas)

	out := canvas.Raster
	if p.opts.Crop {
		x0, y0, x1, y1, err := bounds.Rect()
		if err != nil {
			return err
		}
		p.logger.Debug("cropping output",
			"output", outPath,
			"begin", fmt.Sprintf("[%d, %d]", x0, y0),
			"end", fmt.Sprintf("(%d, %d)", x1, y1),
			"size", fmt.Sprintf("%dx%d", x1-x0, y1-y0))
		out = raster.Crop(out, x0, y0, x1, y1)
	}

	if err := raster.Encode(outPath, out); err != nil {
		return fmt.Errorf("write output image %q: %w", outPath, err)
	}
	return nil
}

// Project converts an in-memory sphere image to a fresh equirectangular
// map, for callers with no output file such as the HTTP server.
func (p *Projector) Project(src *raster.Raster) (*raster.Raster, error) {
	scene, err := NewScene(p.opts.AngularSize, p.opts.MinAngle, p.opts.Stretch)
	if err != nil {
		return nil, err
	}

	region, err := ResolveRegion(p.opts.Region, src.Width, src.Height)
	if err != nil {
		return nil, err
	}

	width, height, err := ResolveCanvasSize(p.opts.Width, p.opts.Height, region.SizeY)
	if err != nil {
		return nil, err
	}

	canvas, err := NewCanvas(width, height, p.opts.HiddenColor)
	if err != nil {
		return nil, err
	}

	bounds := p.render(src, region, scene, canvas)

	if p.opts.Crop {
		x0, y0, x1, y1, err := bounds.Rect()
		if err != nil {
			return nil, err
		}
		return raster.Crop(canvas.Raster, x0, y0, x1, y1), nil
	}
	return canvas.Raster, nil
}

// render runs the pixel loop. Rows are striped across workers; each
// worker reads the shared inputs, writes disjoint canvas rows, and
// tracks its own bounds, merged after the join.
func (p *Projector) render(src *raster.Raster, region Region, scene Scene, canvas *Canvas) Bounds {
	mapper := NewMapper(scene, region, canvas.Width, canvas.Height, View{
		CenterLat: p.opts.CenterLat,
		CenterLon: p.opts.CenterLon,
		Rotate:    p.opts.Rotate,
	})
	sampler := NewSampler(src, region, p.opts.Bilinear)

	workers := p.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > canvas.Height {
		workers = canvas.Height
	}

	parts := make([]Bounds, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			bounds := NewBounds()
			for outY := w; outY < canvas.Height; outY += workers {
				for outX := 0; outX < canvas.Width; outX++ {
					inX, inY, visible := mapper.Map(outX, outY)
					if !visible {
						// Hidden pixels keep the background color.
						continue
					}
					canvas.Set(outX, outY, sampler.Sample(inX, inY))
					bounds.Include(outX, outY)
				}
			}
			parts[w] = bounds
		}(w)
	}
	wg.Wait()

	total := NewBounds()
	for _, b := range parts {
		total.Union(b)
	}
	return total
}
