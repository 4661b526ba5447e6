package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/helioslayout/helios/internal/model"
)

// DefaultCatalogPath returns the default file path for the panel catalog.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the panel catalog to the specified JSON file.
func SaveCatalog(path string, cat model.Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalog reads the panel catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := model.DefaultCatalog()
			if saveErr := SaveCatalog(path, cat); saveErr != nil {
				return cat, saveErr
			}
			return cat, nil
		}
		return model.Catalog{}, err
	}
	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return model.Catalog{}, err
	}
	return cat, nil
}

// ImportCatalog imports a catalog from a user-specified JSON file, merging
// it with the existing catalog. Duplicate IDs are skipped.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Catalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Panels))
	for _, p := range existing.Panels {
		ids[p.ID] = true
	}
	for _, p := range imported.Panels {
		if !ids[p.ID] {
			existing.Panels = append(existing.Panels, p)
			ids[p.ID] = true
		}
	}
	return existing, nil
}
