package model

// Project ties everything together for save/load: the roof region (which
// owns its obstacles), the specs in force, and the last generated layout.
// The document is plain JSON and round-trips losslessly: regenerating from
// a loaded project yields an identical layout.
type Project struct {
	Name    string        `json:"name"`
	Region  RoofRegion    `json:"region"`
	Panel   PanelSpec     `json:"panel_spec"`
	Spacing SpacingSpec   `json:"spacing"`
	Result  *LayoutResult `json:"result,omitempty"`
}

// NewProject returns an empty project with default specs.
func NewProject() Project {
	return Project{
		Name:    "Untitled",
		Panel:   DefaultPanelSpec(),
		Spacing: DefaultSpacing(),
	}
}
