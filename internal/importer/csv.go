package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/model"
)

// columnMapping maps semantic column roles to their indices in the data.
type columnMapping struct {
	Kind   int
	Lat    int
	Lng    int
	Width  int
	Height int
	Buffer int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"kind":   {"kind", "type", "obstacle", "category"},
	"lat":    {"lat", "latitude", "y"},
	"lng":    {"lng", "lon", "long", "longitude", "x"},
	"width":  {"width", "width_ft", "w"},
	"height": {"height", "height_ft", "h", "depth", "length"},
	"buffer": {"buffer", "buffer_ft", "margin", "clearance", "setback"},
}

// detectDelimiter determines the most likely CSV delimiter by trying comma,
// semicolon, tab, and pipe. The delimiter producing the most consistent
// multi-column split wins.
func detectDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// detectColumns matches a header row against known aliases. Returns a
// positional mapping and false when no header was recognized.
func detectColumns(row []string) (columnMapping, bool) {
	mapping := columnMapping{Kind: -1, Lat: -1, Lng: -1, Width: -1, Height: -1, Buffer: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "kind":
					if mapping.Kind == -1 {
						mapping.Kind = i
					}
				case "lat":
					if mapping.Lat == -1 {
						mapping.Lat = i
					}
				case "lng":
					if mapping.Lng == -1 {
						mapping.Lng = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				case "buffer":
					if mapping.Buffer == -1 {
						mapping.Buffer = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional fallback: kind, lat, lng, width, height, buffer.
		return columnMapping{Kind: 0, Lat: 1, Lng: 2, Width: 3, Height: 4, Buffer: 5}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseObstacleRow extracts one obstacle from a row. Returns the obstacle,
// an error message, and a warning message; the error message is empty on
// success.
func parseObstacleRow(row []string, mapping columnMapping, rowLabel string) (model.Obstacle, string, string) {
	lat, err := strconv.ParseFloat(getCell(row, mapping.Lat), 64)
	if err != nil {
		return model.Obstacle{}, fmt.Sprintf("%s: invalid latitude %q", rowLabel, getCell(row, mapping.Lat)), ""
	}
	lng, err := strconv.ParseFloat(getCell(row, mapping.Lng), 64)
	if err != nil {
		return model.Obstacle{}, fmt.Sprintf("%s: invalid longitude %q", rowLabel, getCell(row, mapping.Lng)), ""
	}
	width, err := strconv.ParseFloat(getCell(row, mapping.Width), 64)
	if err != nil || width <= 0 {
		return model.Obstacle{}, fmt.Sprintf("%s: invalid width %q", rowLabel, getCell(row, mapping.Width)), ""
	}
	height, err := strconv.ParseFloat(getCell(row, mapping.Height), 64)
	if err != nil || height <= 0 {
		return model.Obstacle{}, fmt.Sprintf("%s: invalid height %q", rowLabel, getCell(row, mapping.Height)), ""
	}

	buffer := defaultBufferFt
	var warning string
	if s := getCell(row, mapping.Buffer); s != "" {
		b, err := strconv.ParseFloat(s, 64)
		if err != nil || b < 0 {
			warning = fmt.Sprintf("%s: invalid buffer %q, using %.1f ft", rowLabel, s, defaultBufferFt)
		} else {
			buffer = b
		}
	}

	kind := model.ObstacleOther
	if s := getCell(row, mapping.Kind); s != "" {
		switch k := model.ObstacleKind(strings.ToLower(s)); k {
		case model.ObstacleChimney, model.ObstacleVent, model.ObstacleSkylight, model.ObstacleHVAC:
			kind = k
		default:
			warning = fmt.Sprintf("%s: unknown obstacle kind %q, using %q", rowLabel, s, model.ObstacleOther)
		}
	}

	return model.NewObstacle(kind, geo.Point{Lat: lat, Lng: lng}, width, height, buffer), "", warning
}

// ImportObstaclesCSV reads an obstacle list from a CSV file. The delimiter
// is auto-detected and columns are matched by header aliases, falling back
// to positional order (kind, lat, lng, width, height, buffer).
func ImportObstaclesCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read CSV: %v", err))
		return result
	}
	return obstaclesFromRows(records, "line")
}

// ImportObstaclesExcel reads an obstacle list from the first sheet of an
// Excel workbook, using the same column mapping as the CSV import.
func ImportObstaclesExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read Excel data: %v", err))
		return result
	}
	return obstaclesFromRows(rows, "row")
}

// obstaclesFromRows is the shared parsing logic for CSV and Excel data.
func obstaclesFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "no data rows found")
		return result
	}

	mapping, hasHeader := detectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		missing := []string{}
		if mapping.Lat == -1 {
			missing = append(missing, "lat")
		}
		if mapping.Lng == -1 {
			missing = append(missing, "lng")
		}
		if mapping.Width == -1 {
			missing = append(missing, "width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		obs, errMsg, warning := parseObstacleRow(rows[i], mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Obstacles = append(result.Obstacles, obs)
	}

	return result
}
