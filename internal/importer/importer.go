// Package importer loads roof boundaries and obstacles from external
// formats: GeoJSON from the map/detection layer, DXF drawings from site
// surveys, and CSV obstacle lists.
package importer

import "github.com/helioslayout/helios/internal/model"

// ImportResult holds the results of an import operation. Errors are fatal
// for the import as a whole; warnings describe skipped or defaulted data.
type ImportResult struct {
	Region    *model.RoofRegion
	Obstacles []model.Obstacle
	Errors    []string
	Warnings  []string
}

// OK reports whether the import produced a usable region without fatal errors.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0
}

// defaultBufferFt is applied when an obstacle record carries no buffer.
const defaultBufferFt = 3.0
