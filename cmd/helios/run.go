package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/helioslayout/helios/internal/classify"
	"github.com/helioslayout/helios/internal/engine"
	"github.com/helioslayout/helios/internal/export"
	"github.com/helioslayout/helios/internal/geo"
	"github.com/helioslayout/helios/internal/importer"
	"github.com/helioslayout/helios/internal/model"
	"github.com/helioslayout/helios/internal/project"
)

type planOptions struct {
	panelName  string
	pdfPath    string
	labelsPath string
	xlsxPath   string
}

type importOptions struct {
	outPath    string
	originLat  float64
	originLng  float64
	azimuthDeg float64
	pitchDeg   float64
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runPlan(path string, opts planOptions) error {
	log := newLogger()
	defer log.Sync()

	p, err := project.Load(path)
	if err != nil {
		return err
	}

	if opts.panelName != "" {
		cat, err := project.LoadCatalog(project.DefaultCatalogPath())
		if err != nil {
			return fmt.Errorf("failed to load panel catalog: %w", err)
		}
		pm := cat.FindByName(opts.panelName)
		if pm == nil {
			pm = cat.FindByID(opts.panelName)
		}
		if pm == nil {
			return fmt.Errorf("panel model %q not in catalog (have: %s)",
				opts.panelName, strings.Join(cat.Names(), ", "))
		}
		p.Panel = pm.ToSpec()
		log.Info("using catalog panel", zap.String("name", pm.Name),
			zap.Float64("watts", pm.PowerWatts))
	}

	classify.Apply(&p.Region)
	log.Info("roof classified",
		zap.String("shape", p.Region.Shape.String()),
		zap.Float64("area_sqft", p.Region.AreaSqFt),
		zap.Float64("suitability", p.Region.Suitability))

	result, err := engine.New(p.Panel, p.Spacing).Generate(p.Region)
	if err != nil {
		return err
	}
	p.Result = &result

	if err := project.Save(path, p); err != nil {
		return err
	}
	rememberProject(path)

	log.Info("layout generated",
		zap.Int("panels", result.TotalPanels),
		zap.Float64("rated_kw", result.TotalRatedPowerWatts/1000),
		zap.Float64("utilization_pct", result.UtilizationRatio))

	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, p); err != nil {
			return err
		}
		log.Info("plan sheet written", zap.String("path", opts.pdfPath))
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, p); err != nil {
			return err
		}
		log.Info("panel labels written", zap.String("path", opts.labelsPath))
	}
	if opts.xlsxPath != "" {
		if err := export.ExportXLSX(opts.xlsxPath, p); err != nil {
			return err
		}
		log.Info("panel schedule written", zap.String("path", opts.xlsxPath))
	}
	return nil
}

func runInspect(path string) error {
	p, err := project.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("Project:     %s\n", p.Name)
	fmt.Printf("Shape:       %s\n", p.Region.Shape)
	fmt.Printf("Area:        %.0f sq ft\n", p.Region.AreaSqFt)
	fmt.Printf("Azimuth:     %.0f deg\n", p.Region.AzimuthDeg)
	fmt.Printf("Pitch:       %.0f deg\n", p.Region.PitchDeg)
	fmt.Printf("Complexity:  %s\n", formatScore(p.Region.Complexity))
	fmt.Printf("Suitability: %s\n", formatScore(p.Region.Suitability))
	fmt.Printf("Exposure:    %s\n", formatScore(p.Region.SunExposure))
	fmt.Printf("Obstacles:   %d\n", len(p.Region.Obstacles))

	if p.Result == nil {
		fmt.Println("\nNo layout generated yet. Run 'helios plan' first.")
		return nil
	}

	est := model.EstimateEnergy(*p.Result, p.Panel)
	fmt.Printf("\nPanels:      %d\n", p.Result.TotalPanels)
	fmt.Printf("Rated power: %.1f kW\n", p.Result.TotalRatedPowerWatts/1000)
	fmt.Printf("Avg eff:     %.1f%%\n", p.Result.AverageEfficiency*100)
	fmt.Printf("Utilization: %.1f%%\n", p.Result.UtilizationRatio)
	fmt.Printf("Est. annual: %.0f kWh\n", est.AnnualKWh)
	return nil
}

func runImport(path string, opts importOptions) error {
	log := newLogger()
	defer log.Sync()

	var result importer.ImportResult
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		result = importer.ImportGeoJSON(path)
	case ".dxf":
		if opts.originLat == 0 && opts.originLng == 0 {
			return fmt.Errorf("DXF import needs --origin-lat and --origin-lng to place the drawing")
		}
		origin := geo.Point{Lat: opts.originLat, Lng: opts.originLng}
		result = importer.ImportDXF(path, origin, opts.azimuthDeg, opts.pitchDeg)
	case ".csv":
		result = importer.ImportObstaclesCSV(path)
	case ".xlsx":
		result = importer.ImportObstaclesExcel(path)
	default:
		return fmt.Errorf("unsupported import format %q", ext)
	}

	for _, w := range result.Warnings {
		log.Warn(w)
	}
	if !result.OK() {
		return fmt.Errorf("import failed: %s", strings.Join(result.Errors, "; "))
	}

	outPath := opts.outPath
	if outPath == "" {
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	}

	if result.Region != nil {
		cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
		if err != nil {
			return err
		}
		p := model.NewProject()
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		p.Region = *result.Region
		p.Panel = cfg.PanelSpec()
		p.Spacing = cfg.Spacing()

		if err := project.Save(outPath, p); err != nil {
			return err
		}
		rememberProject(outPath)
		log.Info("project created",
			zap.String("path", outPath),
			zap.String("shape", p.Region.Shape.String()),
			zap.Int("obstacles", len(p.Region.Obstacles)))
		return nil
	}

	// Obstacle-only imports merge into an existing project.
	p, err := project.Load(outPath)
	if err != nil {
		return fmt.Errorf("obstacle import needs an existing project (use --out): %w", err)
	}
	p.Region.Obstacles = append(p.Region.Obstacles, result.Obstacles...)
	if err := project.Save(outPath, p); err != nil {
		return err
	}
	log.Info("obstacles merged",
		zap.String("path", outPath),
		zap.Int("added", len(result.Obstacles)),
		zap.Int("total", len(p.Region.Obstacles)))
	return nil
}

func runCatalogList() error {
	cat, err := project.LoadCatalog(project.DefaultCatalogPath())
	if err != nil {
		return err
	}
	for _, pm := range cat.Panels {
		fmt.Printf("%-10s %-20s %-12s %.2f x %.2f ft  %4.0f W  %.1f%%\n",
			pm.ID, pm.Name, pm.Manufacturer, pm.WidthFt, pm.HeightFt,
			pm.PowerWatts, pm.Efficiency*100)
	}
	return nil
}

func runCatalogImport(path string) error {
	log := newLogger()
	defer log.Sync()

	cat, err := project.LoadCatalog(project.DefaultCatalogPath())
	if err != nil {
		return err
	}
	before := len(cat.Panels)
	merged, err := project.ImportCatalog(path, cat)
	if err != nil {
		return err
	}
	if err := project.SaveCatalog(project.DefaultCatalogPath(), merged); err != nil {
		return err
	}
	log.Info("catalog merged",
		zap.Int("added", len(merged.Panels)-before),
		zap.Int("total", len(merged.Panels)))
	return nil
}

func runBackup(path string) error {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}
	cat, err := project.LoadCatalog(project.DefaultCatalogPath())
	if err != nil {
		return err
	}
	return project.ExportAllData(path, cfg, cat)
}

func runRestore(path string) error {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
		return err
	}
	return project.SaveCatalog(project.DefaultCatalogPath(), backup.Catalog)
}

// rememberProject records the path in the recent-projects list, most recent
// first. Config errors are ignored here so a broken config never blocks
// planning.
func rememberProject(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return
	}
	recent := []string{abs}
	for _, r := range cfg.RecentProjects {
		if r != abs && len(recent) < 10 {
			recent = append(recent, r)
		}
	}
	cfg.RecentProjects = recent
	_ = project.SaveAppConfig(project.DefaultConfigPath(), cfg)
}

func formatScore(score float64) string {
	if score == model.ScoreUnknown {
		return "unknown"
	}
	return fmt.Sprintf("%.2f", score)
}
