package scene

import (
	"github.com/scenekit/scene-porter/internal/geometry"
)

// WallCollection is the embedded-collection name for wall documents.
const WallCollection = "walls"

// TileCollection is the embedded-collection name for tile documents.
const TileCollection = "tiles"

// WallDocument represents one wall segment embedded in a scene. All geometry
// fields are plain numeric/enum values; the host assigns ID on creation.
type WallDocument struct {
	ID        string     `json:"_id,omitempty"`
	C         [4]float64 `json:"c"`
	Move      int        `json:"move"`
	Sight     int        `json:"sight"`
	Sound     int        `json:"sound"`
	Light     int        `json:"light"`
	Door      int        `json:"door"`
	DoorState int        `json:"ds"`
	Direction int        `json:"dir"`
}

// TextureRef points at a resolvable image source.
type TextureRef struct {
	Src string `json:"src,omitempty"`
}

// TileInner carries the nested-document fields older scene data keeps its
// image source under.
type TileInner struct {
	Texture *TextureRef `json:"texture,omitempty"`
	Img     string      `json:"img,omitempty"`
}

// TileDocument represents one positioned, sized image tile embedded in a
// scene. The image source may live in any of four locations depending on the
// data-model version that authored the scene.
type TileDocument struct {
	ID       string      `json:"_id,omitempty"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Texture  *TextureRef `json:"texture,omitempty"`
	Img      string      `json:"img,omitempty"`
	Document *TileInner  `json:"document,omitempty"`
}

// Rect returns the tile's extent in scene coordinate space.
func (t TileDocument) Rect() geometry.Rect {
	return geometry.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// Scene represents one host-managed canvas/world unit.
type Scene struct {
	ID            string         `json:"_id"`
	Name          string         `json:"name"`
	Padding       float64        `json:"padding"`
	GridSize      int            `json:"grid"`
	BackgroundURL string         `json:"background"`
	Walls         []WallDocument `json:"walls"`
	Tiles         []TileDocument `json:"tiles"`
}
