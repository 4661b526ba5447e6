package geo

import "math"

// feetPerDegree is the arc length of one degree on the spherical earth.
const feetPerDegree = EarthRadiusFeet * math.Pi / 180

// Projection maps geographic coordinates into a local planar frame in feet.
//
// It is an equirectangular projection anchored at an origin point: X grows
// east, Y grows north. Over roof-sized extents (tens of feet) the distortion
// is far below an inch, which keeps every tiling computation in one
// consistent unit instead of mixing degrees and feet.
type Projection struct {
	Origin Point `json:"origin"`

	cosLat float64
}

// NewProjection returns a projection anchored at origin.
func NewProjection(origin Point) Projection {
	return Projection{
		Origin: origin,
		cosLat: math.Cos(origin.Lat * math.Pi / 180),
	}
}

// LocalOf converts a geographic point to local planar feet.
func (pr Projection) LocalOf(p Point) Point2D {
	return Point2D{
		X: (p.Lng - pr.Origin.Lng) * pr.scale() * feetPerDegree,
		Y: (p.Lat - pr.Origin.Lat) * feetPerDegree,
	}
}

// GeoOf converts a local planar point back to geographic coordinates.
func (pr Projection) GeoOf(p Point2D) Point {
	return Point{
		Lat: pr.Origin.Lat + p.Y/feetPerDegree,
		Lng: pr.Origin.Lng + p.X/(pr.scale()*feetPerDegree),
	}
}

// LocalPolygon projects a geographic ring into the local frame.
func (pr Projection) LocalPolygon(pts []Point) Polygon {
	out := make(Polygon, len(pts))
	for i, p := range pts {
		out[i] = pr.LocalOf(p)
	}
	return out
}

// scale lazily recomputes the longitude compression factor so that a
// Projection deserialized from JSON (which only carries the origin) still
// projects correctly.
func (pr Projection) scale() float64 {
	if pr.cosLat != 0 {
		return pr.cosLat
	}
	return math.Cos(pr.Origin.Lat * math.Pi / 180)
}
