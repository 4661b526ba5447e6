package project

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/helioslayout/helios/internal/classify"
	"github.com/helioslayout/helios/internal/engine"
	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

func sampleProject(t *testing.T) model.Project {
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
	p.Name = "Round Trip House"
	p.Region = region
	return p
}

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.json")
	p := sampleProject(t)

	if err := Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != p.Name {
		t.Errorf("name lost in round trip: %q", loaded.Name)
	}
	if loaded.Region.Shape != p.Region.Shape {
		t.Errorf("shape lost in round trip: %v", loaded.Region.Shape)
	}
	if len(loaded.Region.Obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(loaded.Region.Obstacles))
	}
	if loaded.Region.Obstacles[0].Kind != model.ObstacleChimney {
		t.Errorf("obstacle kind lost: %v", loaded.Region.Obstacles[0].Kind)
	}
}

// A loaded project must regenerate an identical layout: same count, same
// positions, same ordering, same aggregates.
func TestProjectRoundTripRegeneratesIdenticalLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.json")
	p := sampleProject(t)

	pl := engine.New(p.Panel, p.Spacing)
	original, err := pl.Generate(p.Region)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	p.Result = &original

	if err := Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	regenerated, err := engine.New(loaded.Panel, loaded.Spacing).Generate(loaded.Region)
	if err != nil {
		t.Fatalf("Generate after load failed: %v", err)
	}

	if regenerated.TotalPanels != original.TotalPanels {
		t.Fatalf("panel count changed: %d vs %d", regenerated.TotalPanels, original.TotalPanels)
	}
	if !reflect.DeepEqual(regenerated.Panels, original.Panels) {
		t.Error("panel set changed after round trip")
	}
	if regenerated.TotalRatedPowerWatts != original.TotalRatedPowerWatts {
		t.Error("total power changed after round trip")
	}
	if regenerated.AverageEfficiency != original.AverageEfficiency {
		t.Error("average efficiency changed after round trip")
	}
	if regenerated.UtilizationRatio != original.UtilizationRatio {
		t.Error("utilization changed after round trip")
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing project file")
	}
}

func TestLoadProjectNormalizesNilObstacles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.json")
	p := model.NewProject()
	p.Region = model.NewRoofRegion(nil, 180, 30)
	p.Region.Obstacles = nil

	if err := Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Region.Obstacles == nil {
		t.Error("obstacle set should never be nil after load")
	}
}
