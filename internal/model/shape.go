package model

// RoofShape classifies a roof boundary polygon. The layout planner selects
// its tiling strategy from this value.
type RoofShape int

const (
	ShapeUnknown       RoofShape = iota // Degenerate boundary (<3 vertices)
	ShapeRectangular                    // 4 vertices, all corners near 90 degrees
	ShapeQuadrilateral                  // 4 vertices, skewed corners
	ShapeTriangular                     // 3 vertices
	ShapeComplex                        // More than 4 vertices
)

func (s RoofShape) String() string {
	switch s {
	case ShapeRectangular:
		return "rectangular"
	case ShapeQuadrilateral:
		return "quadrilateral"
	case ShapeTriangular:
		return "triangular"
	case ShapeComplex:
		return "complex"
	default:
		return "unknown"
	}
}
