// Package export renders generated layouts to installer-facing documents:
// PDF plan sheets, QR-coded panel labels, and Excel panel schedules.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 14.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a plan sheet for the project: the roof outline with
// obstacles and placed panels drawn to scale, followed by a summary page
// with layout statistics and the annual production estimate.
func ExportPDF(path string, p model.Project) error {
	if p.Result == nil {
		return fmt.Errorf("project has no generated layout to export")
	}
	boundary := p.Region.LocalBoundary()
	if len(boundary) < 3 {
		return fmt.Errorf("roof boundary is degenerate, nothing to draw")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, p, boundary)

	pdf.AddPage()
	renderSummaryPage(pdf, p)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the roof, keep-out zones, and panels on the current
// page. The local frame has north up; PDF y grows downward, so y is flipped
// around the boundary's bounding box.
func renderPlanPage(pdf *fpdf.Fpdf, p model.Project, boundary geo.Polygon) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s - Roof Layout Plan", p.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Shape: %s | Area: %.0f sq ft | Azimuth: %.0f deg | Pitch: %.0f deg | Panels: %d | Utilization: %.1f%%",
		p.Region.Shape, p.Region.AreaSqFt, p.Region.AzimuthDeg, p.Region.PitchDeg,
		p.Result.TotalPanels, p.Result.UtilizationRatio)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	min, max := boundary.BoundingBox()
	roofW := max.X - min.X
	roofH := max.Y - min.Y
	if roofW <= 0 || roofH <= 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/roofW, drawHeight/roofH)

	canvasW := roofW * scale
	canvasH := roofH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// toPage maps a local-frame point to page coordinates, flipping y so
	// north stays up.
	toPage := func(pt geo.Point2D) (float64, float64) {
		return offsetX + (pt.X-min.X)*scale, offsetY + (max.Y-pt.Y)*scale
	}

	// Roof surface
	pagePoints := make([]fpdf.PointType, len(boundary))
	for i, pt := range boundary {
		x, y := toPage(pt)
		pagePoints[i] = fpdf.PointType{X: x, Y: y}
	}
	pdf.SetFillColor(224, 224, 224)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Polygon(pagePoints, "FD")

	proj := p.Region.Projection()

	// Panels
	pdf.SetFillColor(33, 66, 120)
	pdf.SetDrawColor(20, 20, 20)
	pdf.SetLineWidth(0.2)
	for _, panel := range p.Result.Panels {
		r := panel.Rect()
		px, py := toPage(geo.Point2D{X: r.X, Y: r.Y + r.Height})
		pdf.Rect(px, py, r.Width*scale, r.Height*scale, "FD")

		pw := r.Width * scale
		ph := r.Height * scale
		if pw > 12 && ph > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(255, 255, 255)
			labelW := pdf.GetStringWidth(panel.ID)
			if labelW < pw-1 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
				pdf.CellFormat(labelW, 4, panel.ID, "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)

	// Obstacle keep-out zones on top, so intrusions are visible.
	for _, obs := range p.Region.Obstacles {
		zone := obs.EffectiveRect(proj)
		zx, zy := toPage(geo.Point2D{X: zone.X, Y: zone.Y + zone.Height})
		zw := zone.Width * scale
		zh := zone.Height * scale

		pdf.SetFillColor(255, 205, 205)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(zx, zy, zw, zh, "FD")
		drawHatchPattern(pdf, zx, zy, zw, zh)

		if zw > 14 && zh > 6 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(180, 0, 0)
			label := string(obs.Kind)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(zx+(zw-labelW)/2, zy+zh/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)

	drawDimensionAnnotations(pdf, roofW, roofH, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, p, offsetY+canvasH+5)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark
// keep-out zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h
	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds extent labels outside the roof drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, roofW, roofH, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.1f ft", roofW)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.1f ft", roofH)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders the panel spec line under the drawing.
func drawLegend(pdf *fpdf.Fpdf, p model.Project, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Panel spec:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	line := fmt.Sprintf("%.2f x %.2f ft, %.0f W, %.0f%% module efficiency, gaps %.2f / %.2f ft",
		p.Panel.WidthFt, p.Panel.HeightFt, p.Panel.RatedPowerWatts,
		p.Panel.RatedEfficiency*100, p.Spacing.HorizontalGapFt, p.Spacing.VerticalGapFt)
	pdf.SetXY(marginLeft+24, startY)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-24, 4, line, "", 0, "L", false, 0, "")
}

// renderSummaryPage draws the statistics and production estimate page.
func renderSummaryPage(pdf *fpdf.Fpdf, p model.Project) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Roof Region", "", 0, "L", false, 0, "")
	y += 9

	regionItems := []struct {
		label string
		value string
	}{
		{"Shape", p.Region.Shape.String()},
		{"Area", fmt.Sprintf("%.0f sq ft", p.Region.AreaSqFt)},
		{"Azimuth", fmt.Sprintf("%.0f deg", p.Region.AzimuthDeg)},
		{"Pitch", fmt.Sprintf("%.0f deg", p.Region.PitchDeg)},
		{"Suitability", scoreString(p.Region.Suitability)},
		{"Sun Exposure", scoreString(p.Region.SunExposure)},
		{"Obstacles", fmt.Sprintf("%d", len(p.Region.Obstacles))},
	}
	y = renderItemList(pdf, regionItems, y)
	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Layout", "", 0, "L", false, 0, "")
	y += 9

	layoutItems := []struct {
		label string
		value string
	}{
		{"Panels Placed", fmt.Sprintf("%d", p.Result.TotalPanels)},
		{"Total Rated Power", fmt.Sprintf("%.1f kW", p.Result.TotalRatedPowerWatts/1000)},
		{"Average Efficiency", fmt.Sprintf("%.1f%%", p.Result.AverageEfficiency*100)},
		{"Roof Utilization", fmt.Sprintf("%.1f%%", p.Result.UtilizationRatio)},
	}
	y = renderItemList(pdf, layoutItems, y)
	y += 5

	est := model.EstimateEnergy(*p.Result, p.Panel)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Production Estimate", "", 0, "L", false, 0, "")
	y += 9

	estimateItems := []struct {
		label string
		value string
	}{
		{"Peak Sun Hours", fmt.Sprintf("%.1f h/day", est.PeakSunHours)},
		{"Performance Ratio", fmt.Sprintf("%.0f%%", est.PerformanceRatio*100)},
		{"Daily Production", fmt.Sprintf("%.1f kWh", est.DailyKWh)},
		{"Annual Production", fmt.Sprintf("%.0f kWh", est.AnnualKWh)},
	}
	renderItemList(pdf, estimateItems, y)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Helios - Roof Layout Engine", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func renderItemList(pdf *fpdf.Fpdf, items []struct {
	label string
	value string
}, y float64) float64 {
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

// scoreString formats a classification score, showing uncomputable scores
// as a dash instead of a misleading number.
func scoreString(score float64) string {
	if score == model.ScoreUnknown {
		return "-"
	}
	return fmt.Sprintf("%.2f", score)
}

// labelFontSize returns an appropriate font size based on the rectangle
// dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
