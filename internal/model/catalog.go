package model

import "github.com/google/uuid"

// PanelModel is a reusable panel definition in the catalog: a named
// PanelSpec plus manufacturer metadata.
type PanelModel struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer"`
	WidthFt      float64 `json:"width_ft"`
	HeightFt     float64 `json:"height_ft"`
	PowerWatts   float64 `json:"power_watts"`
	Efficiency   float64 `json:"efficiency"`
}

// NewPanelModel creates a PanelModel with a generated ID.
func NewPanelModel(name, manufacturer string, widthFt, heightFt, watts, efficiency float64) PanelModel {
	return PanelModel{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Manufacturer: manufacturer,
		WidthFt:      widthFt,
		HeightFt:     heightFt,
		PowerWatts:   watts,
		Efficiency:   efficiency,
	}
}

// ToSpec converts a catalog entry into the PanelSpec used by the planner.
func (pm PanelModel) ToSpec() PanelSpec {
	return PanelSpec{
		WidthFt:         pm.WidthFt,
		HeightFt:        pm.HeightFt,
		RatedPowerWatts: pm.PowerWatts,
		RatedEfficiency: pm.Efficiency,
	}
}

// Catalog holds the user's saved panel models.
type Catalog struct {
	Panels []PanelModel `json:"panels"`
}

// DefaultCatalog returns a catalog populated with common panel models.
func DefaultCatalog() Catalog {
	return Catalog{
		Panels: []PanelModel{
			NewPanelModel("Residential 400W", "Generic", 5.4, 3.25, 400, 0.21),
			NewPanelModel("Residential 350W", "Generic", 5.1, 3.1, 350, 0.19),
			NewPanelModel("Compact 300W", "Generic", 4.4, 3.0, 300, 0.18),
			NewPanelModel("Commercial 550W", "Generic", 7.4, 3.7, 550, 0.215),
		},
	}
}

// FindByID returns a pointer to the panel model with the given ID, or nil.
func (c *Catalog) FindByID(id string) *PanelModel {
	for i := range c.Panels {
		if c.Panels[i].ID == id {
			return &c.Panels[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first panel model with the given name, or nil.
func (c *Catalog) FindByName(name string) *PanelModel {
	for i := range c.Panels {
		if c.Panels[i].Name == name {
			return &c.Panels[i]
		}
	}
	return nil
}

// Names returns the catalog entry names for UI dropdowns.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Panels))
	for i, p := range c.Panels {
		names[i] = p.Name
	}
	return names
}
