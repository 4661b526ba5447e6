package geo

import "math"

// Point2D is a coordinate in the local planar frame, in feet.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to q.
func (p Point2D) Distance(q Point2D) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point2D) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Polygon is a closed planar polygon as an ordered vertex sequence.
// The last vertex implicitly connects back to the first.
type Polygon []Point2D

// Area returns the unsigned area using the shoelace formula.
// Translation-invariant and independent of the starting vertex.
func (p Polygon) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p[i].X * p[j].Y
		area -= p[j].X * p[i].Y
	}
	return math.Abs(area / 2)
}

// BoundingBox returns the min and max corners of the polygon.
func (p Polygon) BoundingBox() (min, max Point2D) {
	if len(p) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
	}
	return min, max
}

// Contains reports whether pt lies inside the polygon using the even-odd
// ray-casting rule. Points exactly on an edge are boundary-ambiguous: they
// may test either way, but consistently for the same inputs.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := p[i], p[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Centroid returns the area-weighted centroid, falling back to the vertex
// average for degenerate polygons.
func (p Polygon) Centroid() Point2D {
	n := len(p)
	if n == 0 {
		return Point2D{}
	}
	signed := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		signed += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	signed /= 2
	if n < 3 || math.Abs(signed) < 1e-12 {
		var sum Point2D
		for _, v := range p {
			sum.X += v.X
			sum.Y += v.Y
		}
		return Point2D{X: sum.X / float64(n), Y: sum.Y / float64(n)}
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p[i].X*p[j].Y - p[j].X*p[i].Y
		cx += (p[i].X + p[j].X) * cross
		cy += (p[i].Y + p[j].Y) * cross
	}
	f := 1 / (6 * signed)
	return Point2D{X: cx * f, Y: cy * f}
}

// Perimeter returns the total edge length.
func (p Polygon) Perimeter() float64 {
	n := len(p)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		total += p[i].Distance(p[(i+1)%n])
	}
	return total
}

// MaxDistanceTo returns the maximum distance from any vertex to pt.
func (p Polygon) MaxDistanceTo(pt Point2D) float64 {
	maxDist := 0.0
	for _, v := range p {
		if d := v.Distance(pt); d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

// InteriorAngle returns the angle at curr formed by the edges to prev and
// next, in degrees in [0, 180].
func InteriorAngle(prev, curr, next Point2D) float64 {
	ax, ay := prev.X-curr.X, prev.Y-curr.Y
	bx, by := next.X-curr.X, next.Y-curr.Y
	la := math.Sqrt(ax*ax + ay*ay)
	lb := math.Sqrt(bx*bx + by*by)
	if la == 0 || lb == 0 {
		return 0
	}
	cos := (ax*bx + ay*by) / (la * lb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// EdgeBearing returns the direction from a to b as compass degrees in
// [0, 360), with +Y treated as north.
func EdgeBearing(a, b Point2D) float64 {
	deg := math.Atan2(b.X-a.X, b.Y-a.Y) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// LongestEdge returns the index of the vertex starting the longest edge.
// Returns -1 for polygons with fewer than 2 vertices.
func (p Polygon) LongestEdge() int {
	n := len(p)
	if n < 2 {
		return -1
	}
	best, bestLen := 0, -1.0
	for i := 0; i < n; i++ {
		l := p[i].Distance(p[(i+1)%n])
		if l > bestLen {
			best, bestLen = i, l
		}
	}
	return best
}
