package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/helioslayout/helios/internal/model"
)

// ExportXLSX writes a panel schedule workbook: one row per placed panel on
// the first sheet, and region/layout statistics on a Summary sheet.
func ExportXLSX(path string, p model.Project) error {
	if p.Result == nil {
		return fmt.Errorf("project has no generated layout to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	panelSheet := "Panels"
	if err := f.SetSheetName(f.GetSheetName(0), panelSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Panel ID", "Row", "Col", "X (ft)", "Y (ft)", "Lat", "Lng",
		"Width (ft)", "Height (ft)", "Rated (W)", "Azimuth (deg)", "Tilt (deg)", "Efficiency"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(panelSheet, cell, h); err != nil {
			return err
		}
	}

	proj := p.Region.Projection()
	for i, panel := range p.Result.Panels {
		center := proj.GeoOf(panel.Center)
		values := []interface{}{
			panel.ID, panel.Row, panel.Col,
			panel.Center.X, panel.Center.Y,
			center.Lat, center.Lng,
			panel.WidthFt, panel.HeightFt,
			panel.RatedPowerWatts, panel.AzimuthDeg, panel.TiltDeg,
			panel.EffectiveEfficiency,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(panelSheet, cell, v); err != nil {
				return err
			}
		}
	}

	summary := "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	est := model.EstimateEnergy(*p.Result, p.Panel)
	rows := [][]interface{}{
		{"Project", p.Name},
		{"Roof Shape", p.Region.Shape.String()},
		{"Roof Area (sq ft)", p.Region.AreaSqFt},
		{"Azimuth (deg)", p.Region.AzimuthDeg},
		{"Pitch (deg)", p.Region.PitchDeg},
		{"Obstacles", len(p.Region.Obstacles)},
		{"Panels Placed", p.Result.TotalPanels},
		{"Total Rated Power (kW)", p.Result.TotalRatedPowerWatts / 1000},
		{"Average Efficiency", p.Result.AverageEfficiency},
		{"Utilization (%)", p.Result.UtilizationRatio},
		{"Daily Production (kWh)", est.DailyKWh},
		{"Annual Production (kWh)", est.AnnualKWh},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(summary, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
