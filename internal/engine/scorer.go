package engine

import (
	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// Efficiency clamp bounds. The floor keeps a panel from scoring at or near
// zero when exposure is extreme; the ceiling caps the product at unity.
const (
	minEfficiency = 0.1
	maxEfficiency = 1.0
)

// scorePanels computes each panel's effective efficiency in place:
// rated efficiency x region sun exposure x position factor, where panels
// nearer the region centroid score marginally higher. The product is
// clamped to [0.1, 1.0].
func scorePanels(panels []model.Panel, boundary geo.Polygon, sunExposure float64, spec model.PanelSpec) {
	center := boundary.Centroid()
	maxRadius := boundary.MaxDistanceTo(center)

	for i := range panels {
		positionFactor := 1.0
		if maxRadius > 0 {
			positionFactor = 1 - (panels[i].Center.Distance(center)/maxRadius)*0.1
		}
		eff := spec.RatedEfficiency * sunExposure * positionFactor
		if eff < minEfficiency {
			eff = minEfficiency
		}
		if eff > maxEfficiency {
			eff = maxEfficiency
		}
		panels[i].EffectiveEfficiency = eff
	}
}

// aggregate derives the layout statistics from a scored panel set.
// Division-prone statistics return 0 instead of failing on empty layouts
// or zero-area regions.
func aggregate(panels []model.Panel, spec model.PanelSpec, regionArea float64) model.LayoutResult {
	result := model.LayoutResult{
		Panels:      panels,
		TotalPanels: len(panels),
	}

	var effSum float64
	for _, p := range panels {
		result.TotalRatedPowerWatts += p.RatedPowerWatts
		effSum += p.EffectiveEfficiency
	}
	if len(panels) > 0 {
		result.AverageEfficiency = effSum / float64(len(panels))
	}
	if regionArea > 0 {
		covered := float64(len(panels)) * spec.WidthFt * spec.HeightFt
		result.UtilizationRatio = covered / regionArea * 100
	}
	return result
}
