package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultPanelWidthFt    float64 `json:"default_panel_width_ft"`
	DefaultPanelHeightFt   float64 `json:"default_panel_height_ft"`
	DefaultPanelWatts      float64 `json:"default_panel_watts"`
	DefaultPanelEfficiency float64 `json:"default_panel_efficiency"`
	DefaultHorizontalGapFt float64 `json:"default_horizontal_gap_ft"`
	DefaultVerticalGapFt   float64 `json:"default_vertical_gap_ft"`
	DefaultBufferMarginFt  float64 `json:"default_buffer_margin_ft"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultPanelSpec and DefaultSpacing.
func DefaultAppConfig() AppConfig {
	spec := DefaultPanelSpec()
	spacing := DefaultSpacing()
	return AppConfig{
		DefaultPanelWidthFt:    spec.WidthFt,
		DefaultPanelHeightFt:   spec.HeightFt,
		DefaultPanelWatts:      spec.RatedPowerWatts,
		DefaultPanelEfficiency: spec.RatedEfficiency,
		DefaultHorizontalGapFt: spacing.HorizontalGapFt,
		DefaultVerticalGapFt:   spacing.VerticalGapFt,
		DefaultBufferMarginFt:  3.0,
		RecentProjects:         []string{},
	}
}

// PanelSpec returns the configured default panel spec.
func (c AppConfig) PanelSpec() PanelSpec {
	return PanelSpec{
		WidthFt:         c.DefaultPanelWidthFt,
		HeightFt:        c.DefaultPanelHeightFt,
		RatedPowerWatts: c.DefaultPanelWatts,
		RatedEfficiency: c.DefaultPanelEfficiency,
	}
}

// Spacing returns the configured default spacing spec.
func (c AppConfig) Spacing() SpacingSpec {
	return SpacingSpec{
		HorizontalGapFt: c.DefaultHorizontalGapFt,
		VerticalGapFt:   c.DefaultVerticalGapFt,
	}
}
