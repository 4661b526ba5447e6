package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/helioslayout/helios/internal/geo"
)

// ObstacleKind identifies the kind of rooftop obstruction.
type ObstacleKind string

const (
	ObstacleChimney  ObstacleKind = "chimney"
	ObstacleVent     ObstacleKind = "vent"
	ObstacleSkylight ObstacleKind = "skylight"
	ObstacleHVAC     ObstacleKind = "hvac"
	ObstacleOther    ObstacleKind = "other"
)

// Obstacle is a rectangular keep-out zone on the roof. Panels may not
// overlap the obstacle footprint grown by BufferMargin on every side.
type Obstacle struct {
	ID           string       `json:"id"`
	Kind         ObstacleKind `json:"kind"`
	Center       geo.Point    `json:"center"`
	WidthFt      float64      `json:"width_ft"`
	HeightFt     float64      `json:"height_ft"`
	BufferMargin float64      `json:"buffer_margin_ft"`
}

// NewObstacle creates an obstacle of the given kind and footprint.
func NewObstacle(kind ObstacleKind, center geo.Point, widthFt, heightFt, bufferFt float64) Obstacle {
	return Obstacle{
		ID:           uuid.New().String()[:8],
		Kind:         kind,
		Center:       center,
		WidthFt:      widthFt,
		HeightFt:     heightFt,
		BufferMargin: bufferFt,
	}
}

// Validate checks the caller contract for obstacle dimensions.
func (o Obstacle) Validate() error {
	if !o.Center.IsFinite() {
		return fmt.Errorf("obstacle %s center has non-finite coordinates", o.ID)
	}
	if o.WidthFt <= 0 || o.HeightFt <= 0 {
		return fmt.Errorf("obstacle %s dimensions must be positive, got %v x %v ft", o.ID, o.WidthFt, o.HeightFt)
	}
	if o.BufferMargin < 0 {
		return fmt.Errorf("obstacle %s buffer margin must not be negative, got %v ft", o.ID, o.BufferMargin)
	}
	return nil
}

// Rect is an axis-aligned rectangle in the local planar frame (feet),
// addressed by its minimum corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Overlaps reports whether two rectangles overlap. The comparison is
// half-open: rectangles that merely touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// EffectiveRect returns the obstacle's keep-out rectangle in the local
// frame: the footprint grown by the buffer margin on every side.
func (o Obstacle) EffectiveRect(proj geo.Projection) Rect {
	c := proj.LocalOf(o.Center)
	w := o.WidthFt + 2*o.BufferMargin
	h := o.HeightFt + 2*o.BufferMargin
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Conflicts reports whether a panel rectangle intrudes into the obstacle's
// buffered keep-out zone.
func (o Obstacle) Conflicts(panelRect Rect, proj geo.Projection) bool {
	return o.EffectiveRect(proj).Overlaps(panelRect)
}

// FilterConflicting returns the panels that conflict with no obstacle. A
// panel is dropped when it overlaps ANY obstacle's keep-out zone; panels
// are never clipped. The result is always non-nil so that an obstacle set
// that eliminates every candidate is observable as an empty layout rather
// than a missing one.
func FilterConflicting(panels []Panel, obstacles []Obstacle, proj geo.Projection) []Panel {
	kept := make([]Panel, 0, len(panels))
	rects := make([]Rect, len(obstacles))
	for i, o := range obstacles {
		rects[i] = o.EffectiveRect(proj)
	}
	for _, p := range panels {
		pr := p.Rect()
		conflict := false
		for _, r := range rects {
			if r.Overlaps(pr) {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, p)
		}
	}
	return kept
}
