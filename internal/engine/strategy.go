package engine

import (
	"fmt"
	"math"

	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// tiler enumerates candidate panel placements for one shape category.
// Candidates are whole panels only; a placement is accepted or rejected as
// a unit, never clipped. Implementations must be deterministic: the same
// boundary and specs always yield the same panels in the same order.
type tiler interface {
	tile(boundary geo.Polygon, spec model.PanelSpec, spacing model.SpacingSpec) []model.Panel
}

// snap absorbs projection round-trip jitter so that a span which is an
// exact multiple of the panel pitch does not lose its last row or column
// to floating point.
const snap = 1e-9

func panelID(row, col int) string {
	return fmt.Sprintf("panel_%d_%d", row, col)
}

func newPanel(row, col int, center geo.Point2D, spec model.PanelSpec) model.Panel {
	return model.Panel{
		ID:              panelID(row, col),
		Center:          center,
		Row:             row,
		Col:             col,
		WidthFt:         spec.WidthFt,
		HeightFt:        spec.HeightFt,
		RatedPowerWatts: spec.RatedPowerWatts,
	}
}

// rectangularTiler lays a uniform grid over the bounding box and keeps the
// cells whose center falls inside the boundary. It also serves as the
// fallback for quadrilateral and unknown shapes.
type rectangularTiler struct{}

func (rectangularTiler) tile(boundary geo.Polygon, spec model.PanelSpec, spacing model.SpacingSpec) []model.Panel {
	min, max := boundary.BoundingBox()
	usableW := max.X - min.X
	usableH := max.Y - min.Y
	cellW := spec.WidthFt + spacing.HorizontalGapFt
	cellH := spec.HeightFt + spacing.VerticalGapFt

	perRow := int(math.Floor(usableW/cellW + snap))
	perCol := int(math.Floor(usableH/cellH + snap))

	var panels []model.Panel
	for row := 0; row < perCol; row++ {
		for col := 0; col < perRow; col++ {
			center := geo.Point2D{
				X: min.X + (float64(col)+0.5)*cellW,
				Y: min.Y + (float64(row)+0.5)*cellH,
			}
			if boundary.Contains(center) {
				panels = append(panels, newPanel(row, col, center, spec))
			}
		}
	}
	return panels
}

// triangularTiler tiles rows parallel to the triangle's longest edge (the
// base), shrinking each row's panel budget linearly toward the apex and
// spreading the row's panels evenly across the cross-section width at that
// height.
type triangularTiler struct{}

func (triangularTiler) tile(boundary geo.Polygon, spec model.PanelSpec, spacing model.SpacingSpec) []model.Panel {
	if len(boundary) < 3 {
		return nil
	}
	baseIdx := boundary.LongestEdge()
	n := len(boundary)
	a := boundary[baseIdx]
	b := boundary[(baseIdx+1)%n]
	apex := boundary[(baseIdx+2)%n]

	baseLen := a.Distance(b)
	if baseLen == 0 {
		return nil
	}

	// Perpendicular height from the base line to the apex.
	ux := (b.X - a.X) / baseLen
	uy := (b.Y - a.Y) / baseLen
	apxX := apex.X - a.X
	apxY := apex.Y - a.Y
	height := math.Abs(apxX*uy - apxY*ux)
	if height == 0 {
		return nil
	}

	cellW := spec.WidthFt + spacing.HorizontalGapFt
	cellH := spec.HeightFt + spacing.VerticalGapFt
	numRows := int(math.Floor(height/cellH + snap))
	maxInBase := int(math.Floor(baseLen/cellW + snap))
	if numRows < 1 || maxInBase < 1 {
		return nil
	}

	var panels []model.Panel
	for row := 0; row < numRows; row++ {
		count := int(math.Floor(float64(maxInBase) * (1 - float64(row)/float64(numRows))))
		if count < 1 {
			continue
		}
		// Cross-section of the triangle at this row's height, obtained by
		// walking both non-base edges toward the apex.
		t := (float64(row) + 0.5) * cellH / height
		lx := a.X + t*(apex.X-a.X)
		ly := a.Y + t*(apex.Y-a.Y)
		rx := b.X + t*(apex.X-b.X)
		ry := b.Y + t*(apex.Y-b.Y)

		for col := 0; col < count; col++ {
			f := (float64(col) + 0.5) / float64(count)
			center := geo.Point2D{X: lx + f*(rx-lx), Y: ly + f*(ry-ly)}
			if boundary.Contains(center) {
				panels = append(panels, newPanel(row, col, center, spec))
			}
		}
	}
	return panels
}

// complexTiler scans a grid anchored half a fine-cell inside the bounding
// box (fine cell = half the smaller panel dimension), stepping by full
// panel pitch. Complex outlines tend to have concavities, so containment
// is stricter here: the center and all four corners must be inside.
type complexTiler struct{}

func (complexTiler) tile(boundary geo.Polygon, spec model.PanelSpec, spacing model.SpacingSpec) []model.Panel {
	min, max := boundary.BoundingBox()
	fine := math.Min(spec.WidthFt, spec.HeightFt) / 2
	cellW := spec.WidthFt + spacing.HorizontalGapFt
	cellH := spec.HeightFt + spacing.VerticalGapFt

	var panels []model.Panel
	for row := 0; ; row++ {
		cy := min.Y + fine + spec.HeightFt/2 + float64(row)*cellH
		if cy+spec.HeightFt/2 > max.Y+snap {
			break
		}
		for col := 0; ; col++ {
			cx := min.X + fine + spec.WidthFt/2 + float64(col)*cellW
			if cx+spec.WidthFt/2 > max.X+snap {
				break
			}
			center := geo.Point2D{X: cx, Y: cy}
			p := newPanel(row, col, center, spec)
			if !boundary.Contains(center) {
				continue
			}
			corners := p.Corners()
			allIn := true
			for _, c := range corners {
				if !boundary.Contains(c) {
					allIn = false
					break
				}
			}
			if allIn {
				panels = append(panels, p)
			}
		}
	}
	return panels
}
