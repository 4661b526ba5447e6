package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/helioslayout/helios/internal/model"
)

// LabelInfo holds the data encoded into each panel label's QR code. The
// position is in the region's local frame so installers can cross-check
// against the plan sheet.
type LabelInfo struct {
	PanelID    string  `json:"panel_id"`
	Project    string  `json:"project"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	XFt        float64 `json:"x_ft"`
	YFt        float64 `json:"y_ft"`
	WidthFt    float64 `json:"width_ft"`
	HeightFt   float64 `json:"height_ft"`
	AzimuthDeg float64 `json:"azimuth_deg"`
	TiltDeg    float64 `json:"tilt_deg"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns,
// 10 rows per page on US Letter).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded labels, one per placed panel.
// Each label carries the panel ID, grid position, and mounting orientation,
// with the full record encoded as JSON in the QR code.
func ExportLabels(path string, p model.Project) error {
	if p.Result == nil || len(p.Result.Panels) == 0 {
		return fmt.Errorf("no placed panels to generate labels for")
	}

	labels := CollectLabelInfos(p)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PanelID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", info.PanelID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, info.PanelID, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.2f x %.2f ft", info.WidthFt, info.HeightFt)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("Row %d Col %d @ (%.1f, %.1f) ft", info.Row, info.Col, info.XFt, info.YFt)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	orient := fmt.Sprintf("Az %.0f / Tilt %.0f deg", info.AzimuthDeg, info.TiltDeg)
	pdf.CellFormat(textW, 3, orient, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label records from a project, for testing or
// alternative export formats.
func CollectLabelInfos(p model.Project) []LabelInfo {
	if p.Result == nil {
		return nil
	}
	labels := make([]LabelInfo, 0, len(p.Result.Panels))
	for _, panel := range p.Result.Panels {
		labels = append(labels, LabelInfo{
			PanelID:    panel.ID,
			Project:    p.Name,
			Row:        panel.Row,
			Col:        panel.Col,
			XFt:        panel.Center.X,
			YFt:        panel.Center.Y,
			WidthFt:    panel.WidthFt,
			HeightFt:   panel.HeightFt,
			AzimuthDeg: panel.AzimuthDeg,
			TiltDeg:    panel.TiltDeg,
		})
	}
	return labels
}
