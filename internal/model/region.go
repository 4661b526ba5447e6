// Package model defines the data model for rooftop solar layout planning:
// roof regions, obstacles, panel specifications, and layout results.
package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/helioslayout/helios/internal/geo"
)

// ScoreUnknown marks a classification score that could not be computed,
// e.g. for a degenerate boundary. It is deliberately outside [0,1] so that
// callers cannot mistake it for a valid score.
const ScoreUnknown = -1.0

// RoofRegion is a bounded roof surface described by a geographic boundary
// polygon plus its derived classification. The region exclusively owns its
// obstacle set; classification fields are recomputed whenever the boundary
// changes and must not be edited directly.
type RoofRegion struct {
	ID         string      `json:"id"`
	Boundary   []geo.Point `json:"boundary"`
	AreaSqFt   float64     `json:"area_sqft"`
	AzimuthDeg float64     `json:"azimuth_deg"` // Compass direction the surface faces, [0,360)
	PitchDeg   float64     `json:"pitch_deg"`   // Slope from horizontal

	// Derived by classify.Classify; ScoreUnknown when uncomputable.
	Shape       RoofShape `json:"shape"`
	Complexity  float64   `json:"complexity"`
	Suitability float64   `json:"suitability"`
	SunExposure float64   `json:"sun_exposure"`

	Obstacles []Obstacle `json:"obstacles"`
}

// NewRoofRegion creates a region from a boundary polygon with the given
// orientation. Area is measured in the local planar frame. Classification
// fields start at ScoreUnknown until classify.Classify runs.
func NewRoofRegion(boundary []geo.Point, azimuthDeg, pitchDeg float64) RoofRegion {
	r := RoofRegion{
		ID:          uuid.New().String()[:8],
		Boundary:    boundary,
		AzimuthDeg:  azimuthDeg,
		PitchDeg:    pitchDeg,
		Shape:       ShapeUnknown,
		Complexity:  ScoreUnknown,
		Suitability: ScoreUnknown,
		SunExposure: ScoreUnknown,
		Obstacles:   []Obstacle{},
	}
	r.AreaSqFt = r.LocalBoundary().Area()
	return r
}

// Projection returns the local planar projection for this region, anchored
// at the center of the boundary's geographic bounds. All planar work for a
// region must go through this single projection so panel positions,
// obstacle rectangles, and containment tests share one frame.
func (r RoofRegion) Projection() geo.Projection {
	return geo.NewProjection(geo.BoundsOf(r.Boundary).Center())
}

// LocalBoundary returns the boundary projected into the local planar frame.
func (r RoofRegion) LocalBoundary() geo.Polygon {
	return r.Projection().LocalPolygon(r.Boundary)
}

// Validate checks the caller contract: every boundary coordinate must be a
// finite number. A short boundary is not an error (it classifies as
// unknown), but non-finite input would silently corrupt all geometry.
func (r RoofRegion) Validate() error {
	for i, p := range r.Boundary {
		if !p.IsFinite() {
			return fmt.Errorf("boundary vertex %d has non-finite coordinates (%v, %v)", i, p.Lat, p.Lng)
		}
	}
	for i := 0; i < len(r.Boundary); i++ {
		j := (i + 1) % len(r.Boundary)
		if len(r.Boundary) > 1 && r.Boundary[i] == r.Boundary[j] && i != j {
			return fmt.Errorf("boundary vertices %d and %d coincide", i, j)
		}
	}
	return nil
}
