// Helios — rooftop solar layout planner.
//
// Build:
//   go build -o helios ./cmd/helios
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "helios",
		Short: "Plan rooftop solar panel layouts from roof geometry",
	}

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(restoreCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func planCmd() *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan [project.json]",
		Short: "Generate a panel layout for a project and save it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPlan(args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.panelName, "panel", "", "catalog panel model to use instead of the project's spec")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "also write a PDF plan sheet to this path")
	cmd.Flags().StringVar(&opts.labelsPath, "labels", "", "also write QR panel labels to this path")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "also write an Excel panel schedule to this path")
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [project.json]",
		Short: "Show a project's roof classification and layout statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func importCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import [roof.geojson|survey.dxf|obstacles.csv|obstacles.xlsx]",
		Short: "Import roof geometry or obstacle lists into a project",
		Long: `Import roof data based on the file extension:
  .geojson / .json  roof boundary and obstacles from a FeatureCollection
  .dxf              roof outline from a site survey drawing (local feet)
  .csv / .xlsx      obstacle list merged into an existing project`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runImport(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "project file to write (defaults to the input name with .json)")
	cmd.Flags().Float64Var(&opts.originLat, "origin-lat", 0, "latitude of the DXF drawing origin")
	cmd.Flags().Float64Var(&opts.originLng, "origin-lng", 0, "longitude of the DXF drawing origin")
	cmd.Flags().Float64Var(&opts.azimuthDeg, "azimuth", 180, "roof azimuth in degrees for DXF imports")
	cmd.Flags().Float64Var(&opts.pitchDeg, "pitch", 30, "roof pitch in degrees for DXF imports")
	return cmd
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the panel model catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the panel models in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCatalogList()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import [catalog.json]",
		Short: "Merge panel models from a catalog file, skipping duplicates",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCatalogImport(args[0])
		},
	})
	return cmd
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [backup.json]",
		Short: "Export application config and panel catalog to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runBackup(args[0])
		},
	}
}

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [backup.json]",
		Short: "Restore application config and panel catalog from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRestore(args[0])
		},
	}
}
