package model

import (
	"fmt"

	"github.com/helioslayout/helios/internal/geo"
)

// PanelSpec is the configuration template for one panel model. It carries
// no per-instance state; every placed Panel copies its dimensions from the
// spec in force at generation time.
type PanelSpec struct {
	WidthFt         float64 `json:"width_ft"`
	HeightFt        float64 `json:"height_ft"`
	RatedPowerWatts float64 `json:"rated_power_watts"`
	RatedEfficiency float64 `json:"rated_efficiency"` // [0,1]
}

// DefaultPanelSpec returns a typical residential panel: 5.4 x 3.25 ft,
// 400 W, 21% module efficiency.
func DefaultPanelSpec() PanelSpec {
	return PanelSpec{
		WidthFt:         5.4,
		HeightFt:        3.25,
		RatedPowerWatts: 400,
		RatedEfficiency: 0.21,
	}
}

// Validate checks the caller contract for panel dimensions and rating.
func (s PanelSpec) Validate() error {
	if s.WidthFt <= 0 || s.HeightFt <= 0 {
		return fmt.Errorf("panel dimensions must be positive, got %v x %v ft", s.WidthFt, s.HeightFt)
	}
	if s.RatedPowerWatts <= 0 {
		return fmt.Errorf("panel rated power must be positive, got %v W", s.RatedPowerWatts)
	}
	if s.RatedEfficiency <= 0 || s.RatedEfficiency > 1 {
		return fmt.Errorf("panel rated efficiency must be in (0,1], got %v", s.RatedEfficiency)
	}
	return nil
}

// SpacingSpec is the gap configuration between adjacent panels.
type SpacingSpec struct {
	HorizontalGapFt float64 `json:"horizontal_gap_ft"`
	VerticalGapFt   float64 `json:"vertical_gap_ft"`
}

// DefaultSpacing returns the standard half-foot clearance on both axes.
func DefaultSpacing() SpacingSpec {
	return SpacingSpec{HorizontalGapFt: 0.5, VerticalGapFt: 0.5}
}

// Validate checks the caller contract for gap values.
func (s SpacingSpec) Validate() error {
	if s.HorizontalGapFt < 0 || s.VerticalGapFt < 0 {
		return fmt.Errorf("panel gaps must not be negative, got %v / %v ft", s.HorizontalGapFt, s.VerticalGapFt)
	}
	return nil
}

// Panel is one placed solar panel. Positions are in the owning region's
// local planar frame; use the region projection to recover lat/lng.
// Selected is a transient UI flag that the engine never recomputes.
type Panel struct {
	ID                  string      `json:"id"` // "panel_{row}_{col}", unique within one layout
	Center              geo.Point2D `json:"center"`
	Row                 int         `json:"row"`
	Col                 int         `json:"col"`
	WidthFt             float64     `json:"width_ft"`
	HeightFt            float64     `json:"height_ft"`
	RatedPowerWatts     float64     `json:"rated_power_watts"`
	AzimuthDeg          float64     `json:"azimuth_deg"`
	TiltDeg             float64     `json:"tilt_deg"`
	EffectiveEfficiency float64     `json:"effective_efficiency"` // [0.1, 1.0] after scoring
	Selected            bool        `json:"selected"`
}

// Rect returns the panel footprint as a min-corner rectangle.
func (p Panel) Rect() Rect {
	return Rect{
		X:      p.Center.X - p.WidthFt/2,
		Y:      p.Center.Y - p.HeightFt/2,
		Width:  p.WidthFt,
		Height: p.HeightFt,
	}
}

// Corners returns the four footprint corners in counterclockwise order
// starting from the minimum corner.
func (p Panel) Corners() [4]geo.Point2D {
	r := p.Rect()
	return [4]geo.Point2D{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// LayoutResult is the full output of one planning pass: the placed panels
// plus aggregate statistics. A regeneration always produces a fresh
// LayoutResult; results are never patched in place.
type LayoutResult struct {
	Panels               []Panel `json:"panels"`
	TotalPanels          int     `json:"total_panels"`
	TotalRatedPowerWatts float64 `json:"total_rated_power_watts"`
	AverageEfficiency    float64 `json:"average_efficiency"`
	UtilizationRatio     float64 `json:"utilization_ratio"` // percent of region area covered
}
