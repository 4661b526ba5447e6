package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

func scoreBoundary() geo.Polygon {
	return geo.Polygon{{X: -20, Y: -15}, {X: 20, Y: -15}, {X: 20, Y: 15}, {X: -20, Y: 15}}
}

func TestScorePanels_CenterBeatsEdge(t *testing.T) {
	spec := model.DefaultPanelSpec()
	panels := []model.Panel{
		{ID: "center", Center: geo.Point2D{X: 0, Y: 0}},
		{ID: "edge", Center: geo.Point2D{X: 18, Y: 13}},
	}

	scorePanels(panels, scoreBoundary(), 0.9, spec)

	assert.Greater(t, panels[0].EffectiveEfficiency, panels[1].EffectiveEfficiency,
		"panels nearer the centroid score higher")
}

func TestScorePanels_ExactValueAtCentroid(t *testing.T) {
	spec := model.DefaultPanelSpec()
	panels := []model.Panel{{Center: geo.Point2D{X: 0, Y: 0}}}

	scorePanels(panels, scoreBoundary(), 0.9, spec)

	// Position factor is exactly 1 at the centroid.
	assert.InDelta(t, spec.RatedEfficiency*0.9, panels[0].EffectiveEfficiency, 1e-9)
}

func TestScorePanels_FloorClamp(t *testing.T) {
	spec := model.DefaultPanelSpec()
	panels := []model.Panel{{Center: geo.Point2D{X: 0, Y: 0}}}

	// Negative exposure (extreme orientation) would drive efficiency
	// negative; the clamp floors it at 0.1.
	scorePanels(panels, scoreBoundary(), -0.5, spec)
	assert.Equal(t, 0.1, panels[0].EffectiveEfficiency)
}

func TestScorePanels_CeilingClamp(t *testing.T) {
	spec := model.PanelSpec{WidthFt: 5, HeightFt: 3, RatedPowerWatts: 400, RatedEfficiency: 1.0}
	panels := []model.Panel{{Center: geo.Point2D{X: 0, Y: 0}}}

	scorePanels(panels, scoreBoundary(), 1.5, spec)
	assert.Equal(t, 1.0, panels[0].EffectiveEfficiency)
}

func TestScorePanels_DegenerateBoundaryUsesUnitPositionFactor(t *testing.T) {
	spec := model.DefaultPanelSpec()
	panels := []model.Panel{{Center: geo.Point2D{X: 5, Y: 5}}}

	scorePanels(panels, geo.Polygon{{X: 1, Y: 1}}, 1.0, spec)
	assert.InDelta(t, spec.RatedEfficiency, panels[0].EffectiveEfficiency, 1e-9)
}

func TestAggregate(t *testing.T) {
	spec := model.DefaultPanelSpec()
	panels := []model.Panel{
		{RatedPowerWatts: 400, EffectiveEfficiency: 0.2},
		{RatedPowerWatts: 400, EffectiveEfficiency: 0.1},
	}

	result := aggregate(panels, spec, 1200)

	require.Equal(t, 2, result.TotalPanels)
	assert.Equal(t, 800.0, result.TotalRatedPowerWatts)
	assert.InDelta(t, 0.15, result.AverageEfficiency, 1e-9)
	assert.InDelta(t, 2*5.4*3.25/1200*100, result.UtilizationRatio, 1e-9)
}

func TestAggregate_EmptyAndZeroArea(t *testing.T) {
	spec := model.DefaultPanelSpec()

	empty := aggregate(nil, spec, 1200)
	assert.Equal(t, 0, empty.TotalPanels)
	assert.Equal(t, 0.0, empty.AverageEfficiency, "mean of no panels is 0, not NaN")

	zeroArea := aggregate([]model.Panel{{RatedPowerWatts: 400}}, spec, 0)
	assert.Equal(t, 0.0, zeroArea.UtilizationRatio, "zero-area region yields 0, not a division error")
}
