package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/helioslayout/helios/internal/classify"
	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// segment is a line piece used to chain loose LINE entities into closed
// outlines.
type segment struct {
	start geo.Point2D
	end   geo.Point2D
}

// chainTolerance is the maximum endpoint gap, in feet, for two segments to
// be considered connected.
const chainTolerance = 0.05

// ImportDXF reads a roof survey drawing. Coordinates are interpreted as
// local feet and anchored at origin, which becomes the drawing's (0, 0) in
// geographic terms. The largest closed outline is the roof boundary; every
// other closed shape becomes an obstacle covering its bounding box.
func ImportDXF(path string, origin geo.Point, azimuthDeg, pitchDeg float64) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []geo.Polygon
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := make(geo.Polygon, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, geo.Point2D{X: v[0], Y: v[1]})
			}
			for _, b := range e.Bulges {
				if math.Abs(b) > 1e-9 {
					result.Warnings = append(result.Warnings,
						"LWPOLYLINE arc bulges are flattened to straight edges")
					break
				}
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleOutline(e, 32))

		case *entity.Line:
			segments = append(segments, segment{
				start: geo.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   geo.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Text, dimensions, and other annotation entities are ignored.
		}
	}

	outlines = append(outlines, chainSegments(segments)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "no closed shapes found in DXF file")
		return result
	}

	// Largest area first, so outlines[0] is the roof boundary.
	sort.Slice(outlines, func(i, j int) bool {
		return outlines[i].Area() > outlines[j].Area()
	})

	proj := geo.NewProjection(origin)
	boundary := make([]geo.Point, 0, len(outlines[0]))
	for _, p := range outlines[0] {
		boundary = append(boundary, proj.GeoOf(p))
	}

	region := model.NewRoofRegion(boundary, azimuthDeg, pitchDeg)
	classify.Apply(&region)

	for _, outline := range outlines[1:] {
		min, max := outline.BoundingBox()
		width := max.X - min.X
		height := max.Y - min.Y
		if width < 0.01 || height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipped degenerate shape (%.2f x %.2f ft)", width, height))
			continue
		}
		center := proj.GeoOf(geo.Point2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2})
		region.Obstacles = append(region.Obstacles,
			model.NewObstacle(model.ObstacleOther, center, width, height, defaultBufferFt))
	}

	result.Region = &region
	result.Obstacles = region.Obstacles
	return result
}

// circleOutline approximates a circle as a regular polygon.
func circleOutline(c *entity.Circle, segments int) geo.Polygon {
	outline := make(geo.Polygon, segments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		outline[i] = geo.Point2D{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return outline
}

// chainSegments connects loose segments end to end and returns the closed
// outlines they form. Open chains are dropped.
func chainSegments(segs []segment) []geo.Polygon {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []geo.Polygon

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := geo.Polygon{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		extended := true
		for extended {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if tail.Distance(seg.start) <= chainTolerance {
					chain = append(chain, seg.end)
					used[i] = true
					extended = true
					break
				}
				if tail.Distance(seg.end) <= chainTolerance {
					chain = append(chain, seg.start)
					used[i] = true
					extended = true
					break
				}
			}
		}

		if len(chain) >= 4 && chain[0].Distance(chain[len(chain)-1]) <= chainTolerance {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}
