package tilecomposite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/scenekit/scene-porter/internal/geometry"
	"github.com/scenekit/scene-porter/internal/scene"
)

// DefaultMaxDimension is the canvas dimension ceiling. Larger canvases are
// rejected or silently truncated by typical rendering backends, so the
// compositor fails explicitly instead of allocating one.
const DefaultMaxDimension = 16384

// ErrSizeLimit is returned when bounds exceed the canvas dimension ceiling.
var ErrSizeLimit = errors.New("composite canvas exceeds dimension limit")

// ErrEncode is returned when canvas encoding produced no data.
var ErrEncode = errors.New("composite encoding produced no data")

// Result reports how many tiles made it onto the canvas, and the canvas
// dimensions in pixels.
type Result struct {
	Succeeded int
	Failed    int
	Width     int
	Height    int
}

// Logger is the logging abstraction used by the compositor.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Compositor produces one raster image covering all tiles of a scene,
// positioned exactly as in scene coordinate space.
type Compositor struct {
	loader ImageLoader
	logger Logger
	maxDim int
}

// NewCompositor creates a compositor. maxDim falls back to
// DefaultMaxDimension when non-positive.
func NewCompositor(loader ImageLoader, logger Logger, maxDim int) *Compositor {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	return &Compositor{loader: loader, logger: logger, maxDim: maxDim}
}

// ComputeBounds returns the tightest region covering every tile extent,
// degenerating to a 1-unit extent so a drawable canvas always exists.
func ComputeBounds(tiles []scene.TileDocument) geometry.Bounds {
	rects := make([]geometry.Rect, len(tiles))
	for i, t := range tiles {
		rects[i] = t.Rect()
	}
	return geometry.BoundsOf(rects)
}

// AllocateCanvas allocates the output canvas for bounds, or fails with
// ErrSizeLimit before allocating when either dimension exceeds the ceiling.
func (c *Compositor) AllocateCanvas(b geometry.Bounds) (*image.RGBA, error) {
	width := int(math.Ceil(b.Width()))
	height := int(math.Ceil(b.Height()))
	if width > c.maxDim || height > c.maxDim {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrSizeLimit, width, height, c.maxDim)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// DrawTiles loads and draws every tile into canvas in collection order.
// Sequential processing keeps draw order deterministic when tiles overlap
// and bounds concurrent network and decode load. One tile's failure never
// aborts the others.
func (c *Compositor) DrawTiles(ctx context.Context, tiles []scene.TileDocument, canvas *image.RGBA, b geometry.Bounds) Result {
	var result Result
	for i, tile := range tiles {
		src := ResolveSource(tile)
		if src == "" {
			result.Failed++
			if c.logger != nil {
				c.logger.Printf("tile %d (%s): no image source", i, tile.ID)
			}
			continue
		}
		img, err := c.loader.Load(ctx, src)
		if err != nil {
			result.Failed++
			if c.logger != nil {
				c.logger.Printf("tile %d (%s): %v", i, tile.ID, err)
			}
			continue
		}
		dst := image.Rect(
			int(math.Round(tile.X-b.MinX)),
			int(math.Round(tile.Y-b.MinY)),
			int(math.Round(tile.X-b.MinX+tile.Width)),
			int(math.Round(tile.Y-b.MinY+tile.Height)),
		)
		xdraw.ApproxBiLinear.Scale(canvas, dst, img, img.Bounds(), xdraw.Over, nil)
		result.Succeeded++
	}
	return result
}

// Encode renders the canvas to a PNG blob.
func (c *Compositor) Encode(canvas *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode composite: %w", err)
	}
	if buf.Len() == 0 {
		return nil, ErrEncode
	}
	return buf.Bytes(), nil
}

// Composite runs the whole pipeline for a tile collection: bounds, canvas,
// draw, encode.
func (c *Compositor) Composite(ctx context.Context, tiles []scene.TileDocument) ([]byte, Result, error) {
	bounds := ComputeBounds(tiles)
	canvas, err := c.AllocateCanvas(bounds)
	if err != nil {
		return nil, Result{}, err
	}
	result := c.DrawTiles(ctx, tiles, canvas, bounds)
	result.Width = canvas.Bounds().Dx()
	result.Height = canvas.Bounds().Dy()
	data, err := c.Encode(canvas)
	if err != nil {
		return nil, result, err
	}
	return data, result, nil
}
