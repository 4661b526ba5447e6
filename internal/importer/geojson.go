package importer

import (
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"

	"github.com/helioslayout/helios/internal/classify"
	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// Default orientation when the boundary feature carries none.
const (
	defaultAzimuthDeg = 180.0
	defaultPitchDeg   = 30.0
)

// ImportGeoJSON reads a roof region from a GeoJSON FeatureCollection.
// The first Polygon feature becomes the boundary; its "azimuth_deg" and
// "pitch_deg" properties set the orientation. Point features become
// obstacles using their "kind", "width_ft", "height_ft", and "buffer_ft"
// properties; any further Polygon features become obstacles covering their
// bounding box.
func ImportGeoJSON(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read GeoJSON file: %v", err))
		return result
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot parse GeoJSON: %v", err))
		return result
	}

	var boundaryFeature *geojson.Feature
	var extraPolygons []*geojson.Feature
	var pointFeatures []*geojson.Feature

	for _, f := range fc.Features {
		if f.Geometry == nil {
			result.Warnings = append(result.Warnings, "skipped feature without geometry")
			continue
		}
		switch {
		case f.Geometry.IsPolygon():
			if boundaryFeature == nil {
				boundaryFeature = f
			} else {
				extraPolygons = append(extraPolygons, f)
			}
		case f.Geometry.IsPoint():
			pointFeatures = append(pointFeatures, f)
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipped unsupported geometry type %q", f.Geometry.Type))
		}
	}

	if boundaryFeature == nil {
		result.Errors = append(result.Errors, "no Polygon feature found for the roof boundary")
		return result
	}

	boundary := ringToBoundary(boundaryFeature.Geometry.Polygon)
	if len(boundary) < 3 {
		result.Errors = append(result.Errors, "boundary polygon has fewer than 3 distinct vertices")
		return result
	}
	if len(boundaryFeature.Geometry.Polygon) > 1 {
		result.Warnings = append(result.Warnings, "boundary interior rings are ignored")
	}

	azimuth := floatProperty(boundaryFeature, "azimuth_deg", defaultAzimuthDeg, &result)
	pitch := floatProperty(boundaryFeature, "pitch_deg", defaultPitchDeg, &result)

	region := model.NewRoofRegion(boundary, azimuth, pitch)
	classify.Apply(&region)
	proj := region.Projection()

	for _, f := range pointFeatures {
		pt := f.Geometry.Point
		if len(pt) < 2 {
			result.Warnings = append(result.Warnings, "skipped Point feature with missing coordinates")
			continue
		}
		center := geo.Point{Lat: pt[1], Lng: pt[0]}
		width := floatProperty(f, "width_ft", 2.0, &result)
		height := floatProperty(f, "height_ft", 2.0, &result)
		buffer := floatProperty(f, "buffer_ft", defaultBufferFt, &result)
		region.Obstacles = append(region.Obstacles,
			model.NewObstacle(obstacleKind(f), center, width, height, buffer))
	}

	for _, f := range extraPolygons {
		ring := ringToBoundary(f.Geometry.Polygon)
		if len(ring) < 3 {
			result.Warnings = append(result.Warnings, "skipped degenerate obstacle polygon")
			continue
		}
		local := proj.LocalPolygon(ring)
		min, max := local.BoundingBox()
		center := proj.GeoOf(geo.Point2D{X: (min.X + max.X) / 2, Y: (min.Y + max.Y) / 2})
		buffer := floatProperty(f, "buffer_ft", defaultBufferFt, &result)
		region.Obstacles = append(region.Obstacles,
			model.NewObstacle(obstacleKind(f), center, max.X-min.X, max.Y-min.Y, buffer))
	}

	result.Region = &region
	result.Obstacles = region.Obstacles
	return result
}

// ringToBoundary extracts the outer ring as lat/lng points, dropping the
// GeoJSON closing vertex that duplicates the first.
func ringToBoundary(polygon [][][]float64) []geo.Point {
	if len(polygon) == 0 {
		return nil
	}
	ring := polygon[0]
	var pts []geo.Point
	for _, c := range ring {
		if len(c) < 2 {
			continue
		}
		pts = append(pts, geo.Point{Lat: c[1], Lng: c[0]})
	}
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func floatProperty(f *geojson.Feature, key string, fallback float64, result *ImportResult) float64 {
	v, err := f.PropertyFloat64(key)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("feature missing %q, using %v", key, fallback))
		return fallback
	}
	return v
}

// obstacleKind maps a feature's "kind" property onto the known obstacle
// kinds, defaulting to "other".
func obstacleKind(f *geojson.Feature) model.ObstacleKind {
	s, err := f.PropertyString("kind")
	if err != nil {
		return model.ObstacleOther
	}
	switch model.ObstacleKind(s) {
	case model.ObstacleChimney, model.ObstacleVent, model.ObstacleSkylight, model.ObstacleHVAC:
		return model.ObstacleKind(s)
	default:
		return model.ObstacleOther
	}
}
