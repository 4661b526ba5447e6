// Package project persists planner state as flat JSON documents: projects,
// the panel catalog, application config, and full-data backups. Every
// document round-trips losslessly, so a loaded project regenerates an
// identical layout.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/helioslayout/helios/internal/model"
)

// Save writes the project to the specified JSON file, creating parent
// directories if they do not exist.
func Save(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the specified JSON file.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Region.Obstacles == nil {
		p.Region.Obstacles = []model.Obstacle{}
	}
	return p, nil
}
