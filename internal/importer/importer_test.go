package importer

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// ─── Delimiter Detection ───────────────────────────────────

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "kind,lat,lng,width,height\nchimney,40.0,-105.0,2,2\n", ','},
		{"semicolon", "kind;lat;lng;width;height\nchimney;40.0;-105.0;2;2\n", ';'},
		{"tab", "kind\tlat\tlng\twidth\theight\nchimney\t40.0\t-105.0\t2\t2\n", '\t'},
		{"pipe", "kind|lat|lng|width|height\nchimney|40.0|-105.0|2|2\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q delimiter, got %q", tt.want, got)
			}
		})
	}
}

// ─── Column Detection ──────────────────────────────────────

func TestDetectColumnsStandardHeaders(t *testing.T) {
	mapping, isHeader := detectColumns([]string{"kind", "lat", "lng", "width_ft", "height_ft", "buffer_ft"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Kind != 0 || mapping.Lat != 1 || mapping.Lng != 2 ||
		mapping.Width != 3 || mapping.Height != 4 || mapping.Buffer != 5 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumnsAliasesAndReorder(t *testing.T) {
	mapping, isHeader := detectColumns([]string{"Longitude", "Latitude", "Type", "W", "Depth", "Clearance"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Lng != 0 || mapping.Lat != 1 || mapping.Kind != 2 ||
		mapping.Width != 3 || mapping.Height != 4 || mapping.Buffer != 5 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumnsNoHeader(t *testing.T) {
	mapping, isHeader := detectColumns([]string{"chimney", "40.0", "-105.0", "2", "2", "3"})
	if isHeader {
		t.Error("expected no header detection for data row")
	}
	if mapping.Kind != 0 || mapping.Lat != 1 || mapping.Lng != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import ────────────────────────────────────────────

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestImportObstaclesCSVWithHeaders(t *testing.T) {
	path := writeTempFile(t, "obstacles.csv",
		"kind,lat,lng,width_ft,height_ft,buffer_ft\n"+
			"chimney,40.0001,-105.0001,2,2,3\n"+
			"vent,40.0002,-105.0002,1,1,1.5\n")

	result := ImportObstaclesCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(result.Obstacles))
	}
	first := result.Obstacles[0]
	if first.Kind != model.ObstacleChimney {
		t.Errorf("expected chimney, got %v", first.Kind)
	}
	if first.WidthFt != 2 || first.HeightFt != 2 || first.BufferMargin != 3 {
		t.Errorf("dimensions lost: %+v", first)
	}
	if result.Obstacles[1].BufferMargin != 1.5 {
		t.Errorf("expected buffer 1.5, got %f", result.Obstacles[1].BufferMargin)
	}
}

func TestImportObstaclesCSVPositional(t *testing.T) {
	path := writeTempFile(t, "obstacles.csv",
		"skylight,40.0,-105.0,4,3,2\n")

	result := ImportObstaclesCSV(path)
	if len(result.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d (errors: %v)", len(result.Obstacles), result.Errors)
	}
	if result.Obstacles[0].Kind != model.ObstacleSkylight {
		t.Errorf("expected skylight, got %v", result.Obstacles[0].Kind)
	}
}

func TestImportObstaclesCSVDefaultBuffer(t *testing.T) {
	path := writeTempFile(t, "obstacles.csv",
		"kind,lat,lng,width_ft,height_ft\nhvac,40.0,-105.0,3,3\n")

	result := ImportObstaclesCSV(path)
	if len(result.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d (errors: %v)", len(result.Obstacles), result.Errors)
	}
	if result.Obstacles[0].BufferMargin != defaultBufferFt {
		t.Errorf("expected default buffer %f, got %f", defaultBufferFt, result.Obstacles[0].BufferMargin)
	}
}

func TestImportObstaclesCSVUnknownKindWarns(t *testing.T) {
	path := writeTempFile(t, "obstacles.csv",
		"kind,lat,lng,width_ft,height_ft\nantenna,40.0,-105.0,1,1\n")

	result := ImportObstaclesCSV(path)
	if len(result.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d (errors: %v)", len(result.Obstacles), result.Errors)
	}
	if result.Obstacles[0].Kind != model.ObstacleOther {
		t.Errorf("expected fallback to other, got %v", result.Obstacles[0].Kind)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the unknown kind")
	}
}

func TestImportObstaclesCSVMixedValidAndInvalid(t *testing.T) {
	path := writeTempFile(t, "obstacles.csv",
		"kind,lat,lng,width_ft,height_ft\n"+
			"chimney,40.0,-105.0,2,2\n"+
			"vent,bad,-105.0,1,1\n"+
			"vent,40.0,-105.0,1,1\n")

	result := ImportObstaclesCSV(path)
	if len(result.Obstacles) != 2 {
		t.Errorf("expected 2 valid obstacles, got %d", len(result.Obstacles))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportObstaclesCSVMissingRequiredColumns(t *testing.T) {
	path := writeTempFile(t, "obstacles.csv",
		"kind,lat,width_ft\nchimney,40.0,2\n")

	result := ImportObstaclesCSV(path)
	if result.OK() {
		t.Fatal("expected error for missing lng and height columns")
	}
	if !strings.Contains(result.Errors[0], "required columns") {
		t.Errorf("unexpected error: %v", result.Errors)
	}
}

func TestImportObstaclesCSVMissingFile(t *testing.T) {
	result := ImportObstaclesCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if result.OK() {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportObstaclesCSVEmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "")
	result := ImportObstaclesCSV(path)
	if result.OK() {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import ──────────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "obstacles.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportObstaclesExcel(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"kind", "lat", "lng", "width_ft", "height_ft", "buffer_ft"},
		{"chimney", 40.0001, -105.0001, 2, 2, 3},
		{"vent", 40.0002, -105.0002, 1, 1, 1.5},
	})

	result := ImportObstaclesExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(result.Obstacles))
	}
	if result.Obstacles[0].Kind != model.ObstacleChimney {
		t.Errorf("expected chimney, got %v", result.Obstacles[0].Kind)
	}
}

func TestImportObstaclesExcelMissingFile(t *testing.T) {
	result := ImportObstaclesExcel("/nonexistent/file.xlsx")
	if result.OK() {
		t.Error("expected error for nonexistent file")
	}
}

// ─── GeoJSON Import ────────────────────────────────────────

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"azimuth_deg": 180, "pitch_deg": 30},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[
          [-105.0002, 40.0000],
          [-105.0000, 40.0000],
          [-105.0000, 40.0001],
          [-105.0002, 40.0001],
          [-105.0002, 40.0000]
        ]]
      }
    },
    {
      "type": "Feature",
      "properties": {"kind": "chimney", "width_ft": 2, "height_ft": 2, "buffer_ft": 3},
      "geometry": {"type": "Point", "coordinates": [-105.0001, 40.00005]}
    }
  ]
}`

func TestImportGeoJSON(t *testing.T) {
	path := writeTempFile(t, "roof.geojson", sampleGeoJSON)

	result := ImportGeoJSON(path)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Region == nil {
		t.Fatal("expected a region")
	}
	if len(result.Region.Boundary) != 4 {
		t.Errorf("expected 4 boundary vertices after dropping the closing one, got %d",
			len(result.Region.Boundary))
	}
	if result.Region.Shape != model.ShapeRectangular {
		t.Errorf("expected rectangular shape, got %v", result.Region.Shape)
	}
	if result.Region.AzimuthDeg != 180 || result.Region.PitchDeg != 30 {
		t.Errorf("orientation lost: az=%f pitch=%f", result.Region.AzimuthDeg, result.Region.PitchDeg)
	}
	if result.Region.AreaSqFt <= 0 {
		t.Errorf("expected positive area, got %f", result.Region.AreaSqFt)
	}
	if len(result.Region.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(result.Region.Obstacles))
	}
	obs := result.Region.Obstacles[0]
	if obs.Kind != model.ObstacleChimney || obs.WidthFt != 2 || obs.BufferMargin != 3 {
		t.Errorf("obstacle properties lost: %+v", obs)
	}
}

func TestImportGeoJSONDefaultsOrientation(t *testing.T) {
	data := strings.Replace(sampleGeoJSON,
		`"properties": {"azimuth_deg": 180, "pitch_deg": 30}`,
		`"properties": {}`, 1)
	path := writeTempFile(t, "roof.geojson", data)

	result := ImportGeoJSON(path)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Region.AzimuthDeg != defaultAzimuthDeg || result.Region.PitchDeg != defaultPitchDeg {
		t.Errorf("expected defaults, got az=%f pitch=%f", result.Region.AzimuthDeg, result.Region.PitchDeg)
	}
	if len(result.Warnings) < 2 {
		t.Errorf("expected warnings for defaulted orientation, got %v", result.Warnings)
	}
}

func TestImportGeoJSONObstaclePolygon(t *testing.T) {
	data := strings.Replace(sampleGeoJSON,
		`"geometry": {"type": "Point", "coordinates": [-105.0001, 40.00005]}`,
		`"geometry": {"type": "Polygon", "coordinates": [[
			[-105.00012, 40.00004],
			[-105.00008, 40.00004],
			[-105.00008, 40.00006],
			[-105.00012, 40.00006],
			[-105.00012, 40.00004]
		]]}`, 1)
	path := writeTempFile(t, "roof.geojson", data)

	result := ImportGeoJSON(path)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Region.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle from the second polygon, got %d", len(result.Region.Obstacles))
	}
	obs := result.Region.Obstacles[0]
	if obs.WidthFt <= 0 || obs.HeightFt <= 0 {
		t.Errorf("expected positive obstacle extent, got %f x %f", obs.WidthFt, obs.HeightFt)
	}
}

func TestImportGeoJSONNoPolygon(t *testing.T) {
	path := writeTempFile(t, "roof.geojson", `{"type": "FeatureCollection", "features": []}`)
	result := ImportGeoJSON(path)
	if result.OK() {
		t.Error("expected error when no boundary polygon is present")
	}
}

func TestImportGeoJSONBadFile(t *testing.T) {
	path := writeTempFile(t, "roof.geojson", "not json")
	result := ImportGeoJSON(path)
	if result.OK() {
		t.Error("expected error for malformed GeoJSON")
	}
}

// ─── DXF Helpers ───────────────────────────────────────────

func TestChainSegmentsClosesRectangle(t *testing.T) {
	segs := []segment{
		{start: geo.Point2D{X: 0, Y: 0}, end: geo.Point2D{X: 10, Y: 0}},
		{start: geo.Point2D{X: 10, Y: 8}, end: geo.Point2D{X: 10, Y: 0}},
		{start: geo.Point2D{X: 10, Y: 8}, end: geo.Point2D{X: 0, Y: 8}},
		{start: geo.Point2D{X: 0, Y: 8}, end: geo.Point2D{X: 0, Y: 0}},
	}
	outlines := chainSegments(segs)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 closed outline, got %d", len(outlines))
	}
	if got := outlines[0].Area(); math.Abs(got-80) > 1e-9 {
		t.Errorf("expected area 80, got %f", got)
	}
}

func TestChainSegmentsDropsOpenChain(t *testing.T) {
	segs := []segment{
		{start: geo.Point2D{X: 0, Y: 0}, end: geo.Point2D{X: 10, Y: 0}},
		{start: geo.Point2D{X: 10, Y: 0}, end: geo.Point2D{X: 10, Y: 8}},
	}
	if outlines := chainSegments(segs); len(outlines) != 0 {
		t.Errorf("expected no closed outlines, got %d", len(outlines))
	}
}

func TestImportDXFMissingFile(t *testing.T) {
	result := ImportDXF(filepath.Join(t.TempDir(), "nope.dxf"), geo.Point{Lat: 40, Lng: -105}, 180, 30)
	if result.OK() {
		t.Error("expected error for nonexistent DXF file")
	}
}
