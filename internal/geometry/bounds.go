package geometry

import "math"

// BoundsOf computes the tightest bounds covering every rectangle in rects.
// An empty or fully collapsed set degenerates to a 1-unit extent anchored at
// the origin of whatever was seen, so callers always get a drawable region.
func BoundsOf(rects []Rect) Bounds {
	b := Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
	for _, r := range rects {
		b.MinX = math.Min(b.MinX, r.X)
		b.MinY = math.Min(b.MinY, r.Y)
		b.MaxX = math.Max(b.MaxX, r.MaxX())
		b.MaxY = math.Max(b.MaxY, r.MaxY())
	}
	if len(rects) == 0 {
		b = Bounds{}
	}
	return b.withMinimumExtent(1)
}

// withMinimumExtent forces each axis to span at least ext units.
func (b Bounds) withMinimumExtent(ext float64) Bounds {
	if b.Width() < ext {
		b.MaxX = b.MinX + ext
	}
	if b.Height() < ext {
		b.MaxY = b.MinY + ext
	}
	return b
}
