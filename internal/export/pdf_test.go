package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/helioslayout/helios/internal/classify"
	"github.com/helioslayout/helios/internal/engine"
	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// buildTestProject returns a project with a generated layout on a 40 x 30 ft
// rectangular roof with one chimney.
func buildTestProject(t *testing.T) model.Project {
	t.Helper()

	origin := geo.Point{Lat: 40.0, Lng: -105.0}
	proj := geo.NewProjection(origin)
	boundary := []geo.Point{
		proj.GeoOf(geo.Point2D{X: -20, Y: -15}),
		proj.GeoOf(geo.Point2D{X: 20, Y: -15}),
		proj.GeoOf(geo.Point2D{X: 20, Y: 15}),
		proj.GeoOf(geo.Point2D{X: -20, Y: 15}),
	}
	region := model.NewRoofRegion(boundary, 180, 30)
	region.Obstacles = append(region.Obstacles,
		model.NewObstacle(model.ObstacleChimney, origin, 2, 2, 3))
	classify.Apply(&region)

	p := model.NewProject()
	p.Name = "Export Test House"
	p.Region = region

	result, err := engine.New(p.Panel, p.Spacing).Generate(p.Region)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	p.Result = &result
	return p
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	p := buildTestProject(t)

	if err := ExportPDF(path, p); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_NoResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	p := buildTestProject(t)
	p.Result = nil

	if err := ExportPDF(path, p); err == nil {
		t.Fatal("expected error for project without a layout")
	}
}

func TestExportPDF_DegenerateBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	p := buildTestProject(t)
	p.Region.Boundary = p.Region.Boundary[:2]

	if err := ExportPDF(path, p); err == nil {
		t.Fatal("expected error for degenerate boundary")
	}
}

func TestExportPDF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	p := buildTestProject(t)
	p.Result = &model.LayoutResult{Panels: []model.Panel{}}

	if err := ExportPDF(path, p); err != nil {
		t.Fatalf("an empty layout should still render a plan sheet: %v", err)
	}
}
