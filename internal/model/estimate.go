package model

// EnergyEstimate holds the results of an annual production calculation for
// a generated layout.
type EnergyEstimate struct {
	TotalRatedKW     float64 `json:"total_rated_kw"`    // Sum of panel ratings in kW
	PeakSunHours     float64 `json:"peak_sun_hours"`    // Average daily peak-sun hours used
	PerformanceRatio float64 `json:"performance_ratio"` // System losses factor (inverter, wiring, soiling)
	DailyKWh         float64 `json:"daily_kwh"`
	AnnualKWh        float64 `json:"annual_kwh"`
}

// defaultPeakSunHours is a continental-US average of daily peak-sun hours.
const defaultPeakSunHours = 4.5

// defaultPerformanceRatio covers inverter, wiring and soiling losses.
const defaultPerformanceRatio = 0.8

// EstimateEnergy computes an annual production estimate from a layout.
// The layout's average effective efficiency already encodes orientation and
// position quality relative to the rated module efficiency, so production
// is scaled by that ratio on top of the fixed performance ratio.
func EstimateEnergy(result LayoutResult, spec PanelSpec) EnergyEstimate {
	est := EnergyEstimate{
		TotalRatedKW:     result.TotalRatedPowerWatts / 1000,
		PeakSunHours:     defaultPeakSunHours,
		PerformanceRatio: defaultPerformanceRatio,
	}
	if result.TotalPanels == 0 || spec.RatedEfficiency <= 0 {
		return est
	}

	orientationFactor := result.AverageEfficiency / spec.RatedEfficiency
	if orientationFactor < 0 {
		orientationFactor = 0
	}
	if orientationFactor > 1 {
		orientationFactor = 1
	}

	est.DailyKWh = est.TotalRatedKW * est.PeakSunHours * est.PerformanceRatio * orientationFactor
	est.AnnualKWh = est.DailyKWh * 365
	return est
}
