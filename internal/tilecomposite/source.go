package tilecomposite

import "github.com/scenekit/scene-porter/internal/scene"

// sourceResolvers lists the known image-source locations across scene
// data-model versions, in priority order. The first non-empty result wins.
var sourceResolvers = []func(t scene.TileDocument) string{
	func(t scene.TileDocument) string {
		if t.Texture != nil {
			return t.Texture.Src
		}
		return ""
	},
	func(t scene.TileDocument) string {
		if t.Document != nil && t.Document.Texture != nil {
			return t.Document.Texture.Src
		}
		return ""
	},
	func(t scene.TileDocument) string {
		return t.Img
	},
	func(t scene.TileDocument) string {
		if t.Document != nil {
			return t.Document.Img
		}
		return ""
	},
}

// ResolveSource returns the tile's image source, or "" when no known
// location holds one.
func ResolveSource(t scene.TileDocument) string {
	for _, resolve := range sourceResolvers {
		if src := resolve(t); src != "" {
			return src
		}
	}
	return ""
}
