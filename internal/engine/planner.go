// Package engine generates panel layouts for a roof region: a tiling
// strategy keyed on the region's shape enumerates candidate placements,
// obstacle filtering removes conflicting panels, and scoring derives
// per-panel efficiency and aggregate statistics.
package engine

import (
	"fmt"

	"github.com/helioslayout/helios/internal/model"
)

// Planner runs the layout generation pipeline. It holds only configuration;
// every Generate call is a pure function of its inputs, so regenerating
// with identical inputs yields an identical result, ordering included.
type Planner struct {
	Panel   model.PanelSpec
	Spacing model.SpacingSpec
}

// New creates a planner for the given panel and spacing configuration.
func New(panel model.PanelSpec, spacing model.SpacingSpec) *Planner {
	return &Planner{Panel: panel, Spacing: spacing}
}

// Generate produces a fresh layout for the region. The region, its
// obstacle set, and the specs are treated as read-only; the returned
// LayoutResult fully replaces any previous one. An empty panel list is a
// valid outcome (nothing fits, or obstacles exclude everything).
func (pl *Planner) Generate(region model.RoofRegion) (model.LayoutResult, error) {
	if err := pl.Panel.Validate(); err != nil {
		return model.LayoutResult{}, fmt.Errorf("invalid panel spec: %w", err)
	}
	if err := pl.Spacing.Validate(); err != nil {
		return model.LayoutResult{}, fmt.Errorf("invalid spacing spec: %w", err)
	}
	if err := region.Validate(); err != nil {
		return model.LayoutResult{}, fmt.Errorf("invalid region: %w", err)
	}
	for _, o := range region.Obstacles {
		if err := o.Validate(); err != nil {
			return model.LayoutResult{}, fmt.Errorf("invalid obstacle: %w", err)
		}
	}

	proj := region.Projection()
	boundary := proj.LocalPolygon(region.Boundary)

	candidates := strategyFor(region.Shape).tile(boundary, pl.Panel, pl.Spacing)
	for i := range candidates {
		candidates[i].AzimuthDeg = region.AzimuthDeg
		candidates[i].TiltDeg = region.PitchDeg
	}

	placed := model.FilterConflicting(candidates, region.Obstacles, proj)

	scorePanels(placed, boundary, region.SunExposure, pl.Panel)
	return aggregate(placed, pl.Panel, boundary.Area()), nil
}

// strategyFor selects the tiling strategy for a shape category. Every
// RoofShape value is covered: quadrilateral and unknown fall back to the
// rectangular grid, which degrades gracefully on degenerate boundaries.
func strategyFor(shape model.RoofShape) tiler {
	switch shape {
	case model.ShapeTriangular:
		return triangularTiler{}
	case model.ShapeComplex:
		return complexTiler{}
	case model.ShapeRectangular, model.ShapeQuadrilateral, model.ShapeUnknown:
		return rectangularTiler{}
	default:
		return rectangularTiler{}
	}
}
