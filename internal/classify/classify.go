// Package classify derives a roof region's shape category and its
// complexity, suitability, and sun-exposure scores from its boundary.
package classify

import (
	"math"

	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// rightAngleTolerance is how far an interior angle may deviate from 90
// degrees before a 4-vertex boundary stops counting as rectangular.
const rightAngleTolerance = 15.0

// Result holds the derived classification of a boundary polygon.
type Result struct {
	Shape       model.RoofShape
	Complexity  float64
	Suitability float64
	SunExposure float64
}

// Classify derives the classification from a local-frame boundary polygon
// and the region's orientation. A degenerate boundary (fewer than 3
// vertices) yields ShapeUnknown with every score set to model.ScoreUnknown:
// an uncomputable score is reported as such rather than as a misleading
// neutral number.
func Classify(boundary geo.Polygon, areaSqFt, azimuthDeg, pitchDeg float64) Result {
	if len(boundary) < 3 {
		return Result{
			Shape:       model.ShapeUnknown,
			Complexity:  model.ScoreUnknown,
			Suitability: model.ScoreUnknown,
			SunExposure: model.ScoreUnknown,
		}
	}

	shape := shapeOf(boundary)
	complexity := complexityOf(shape, len(boundary))

	return Result{
		Shape:       shape,
		Complexity:  complexity,
		Suitability: suitabilityOf(areaSqFt, azimuthDeg, complexity),
		SunExposure: sunExposureOf(azimuthDeg, pitchDeg),
	}
}

// Apply recomputes the region's area and classification fields in place.
// Call it after any boundary change; obstacle edits do not require it.
func Apply(r *model.RoofRegion) {
	local := r.LocalBoundary()
	r.AreaSqFt = local.Area()
	res := Classify(local, r.AreaSqFt, r.AzimuthDeg, r.PitchDeg)
	r.Shape = res.Shape
	r.Complexity = res.Complexity
	r.Suitability = res.Suitability
	r.SunExposure = res.SunExposure
}

func shapeOf(boundary geo.Polygon) model.RoofShape {
	switch n := len(boundary); {
	case n == 3:
		return model.ShapeTriangular
	case n == 4:
		if allAnglesNearRight(boundary) {
			return model.ShapeRectangular
		}
		return model.ShapeQuadrilateral
	default:
		return model.ShapeComplex
	}
}

func allAnglesNearRight(boundary geo.Polygon) bool {
	n := len(boundary)
	for i := 0; i < n; i++ {
		prev := boundary[(i+n-1)%n]
		next := boundary[(i+1)%n]
		angle := geo.InteriorAngle(prev, boundary[i], next)
		if math.Abs(angle-90) > rightAngleTolerance {
			return false
		}
	}
	return true
}

func complexityOf(shape model.RoofShape, vertexCount int) float64 {
	c := 0.1 * float64(vertexCount)
	if shape == model.ShapeComplex {
		c += 0.3
	}
	return clamp01(c)
}

// suitabilityOf starts at 0.8 and penalizes small area, azimuth deviation
// from due south, and boundary complexity.
func suitabilityOf(areaSqFt, azimuthDeg, complexity float64) float64 {
	s := 0.8
	if areaSqFt < 200 {
		s -= 0.2
	}
	dev := math.Abs(azimuthDeg - 180)
	dev = math.Min(dev, 360-dev)
	s -= dev / 180 * 0.4
	s -= complexity * 0.2
	return clamp01(s)
}

// sunExposureOf combines azimuth and pitch quality. Both factors may go
// negative for extreme orientations and the product is intentionally left
// unclamped so that poor orientations keep their relative ordering;
// downstream efficiency clamps, exposure does not.
func sunExposureOf(azimuthDeg, pitchDeg float64) float64 {
	azFactor := 1 - math.Abs(azimuthDeg-180)/180
	pitchFactor := 1 - math.Abs(pitchDeg-35)/55
	return azFactor * pitchFactor
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
